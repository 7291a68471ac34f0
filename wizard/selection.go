package wizard

import (
	"strings"

	"github.com/barbearia-urbana/barberbot/domain"
)

// DateLayout is the calendar date format used across the booking flow.
const DateLayout = "2006-01-02"

// Selection is the in-progress booking of one chat. It is a plain value:
// every change goes through Reduce, which returns a new Selection and never
// mutates the old one. The referenced Service is immutable catalog data, so
// sharing the pointer across copies is safe.
type Selection struct {
	Service *domain.Service
	Date    string
	Time    string
	Client  domain.ClientDetails
}

// NewSelection returns the empty selection for a fresh session. The date
// defaults to today; everything else starts unset.
func NewSelection(today string) Selection {
	return Selection{Date: today}
}

// Step is the wizard position derived from which fields are filled. It is
// never stored: the user may revisit and change any earlier step at any
// time without losing later ones, and the step simply follows.
type Step int

const (
	// StepSelectingService: no service chosen yet.
	StepSelectingService Step = iota
	// StepSelectingTime: service chosen; date always carries a default, so
	// the next gap to fill is the time.
	StepSelectingTime
	// StepEnteringDetails: service, date and time set; name or phone missing.
	StepEnteringDetails
	// StepReadyToSubmit: every required field is non-empty.
	StepReadyToSubmit
)

// Step derives the current wizard position from field presence.
func (s Selection) Step() Step {
	switch {
	case s.Service == nil:
		return StepSelectingService
	case s.Time == "":
		return StepSelectingTime
	case strings.TrimSpace(s.Client.Name) == "" || strings.TrimSpace(s.Client.Phone) == "":
		return StepEnteringDetails
	default:
		return StepReadyToSubmit
	}
}

// Validate reports the required fields still missing. A nil result means
// the selection is submittable.
func (s Selection) Validate() *ValidationError {
	var missing []string
	if s.Service == nil {
		missing = append(missing, "serviço")
	}
	if s.Date == "" {
		missing = append(missing, "data")
	}
	if s.Time == "" {
		missing = append(missing, "horário")
	}
	if strings.TrimSpace(s.Client.Name) == "" {
		missing = append(missing, "nome")
	}
	if strings.TrimSpace(s.Client.Phone) == "" {
		missing = append(missing, "telefone")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
