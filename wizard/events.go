package wizard

import (
	"strings"

	"github.com/barbearia-urbana/barberbot/domain"
)

// Event is a typed wizard transition. Reduce applies one event to a
// Selection and returns the next Selection; the mapping is pure so every
// transition is testable without a running bot.
type Event interface {
	isEvent()
}

// ServiceSelected picks (or re-picks) a catalog service. Earlier choices of
// date and time are kept; jumping back never clears later steps.
type ServiceSelected struct {
	Service domain.Service
}

// DateSelected changes the booking date. The caller is responsible for
// re-resolving availability afterwards; the reducer only records the field.
type DateSelected struct {
	Date string
}

// TimeSelected picks a slot. The full slot travels in the event so the
// reducer itself can refuse unavailable ones.
type TimeSelected struct {
	Slot domain.TimeSlot
}

// NameEntered, PhoneEntered and EmailEntered record client details as the
// user types them. Validation happens only at submission.
type NameEntered struct{ Name string }
type PhoneEntered struct{ Phone string }
type EmailEntered struct{ Email string }

// SlotsReplaced reconciles the selection with a freshly resolved slot list:
// a previously chosen time that is no longer present and available is
// cleared, so a stale choice can never reach submission.
type SlotsReplaced struct {
	Slots []domain.TimeSlot
}

// SubmissionSucceeded clears service, time and client fields after a
// successful booking. The date is retained so the user can book another
// slot on the same day.
type SubmissionSucceeded struct{}

// SelectionCleared resets everything except the date (user cancelled).
type SelectionCleared struct{}

func (ServiceSelected) isEvent()     {}
func (DateSelected) isEvent()        {}
func (TimeSelected) isEvent()        {}
func (NameEntered) isEvent()         {}
func (PhoneEntered) isEvent()        {}
func (EmailEntered) isEvent()        {}
func (SlotsReplaced) isEvent()       {}
func (SubmissionSucceeded) isEvent() {}
func (SelectionCleared) isEvent()    {}

// Reduce applies one event to a selection. Unknown events leave the
// selection untouched.
func Reduce(s Selection, ev Event) Selection {
	switch e := ev.(type) {
	case ServiceSelected:
		svc := e.Service
		s.Service = &svc

	case DateSelected:
		s.Date = e.Date

	case TimeSelected:
		if !e.Slot.Available {
			return s
		}
		s.Time = e.Slot.Time

	case NameEntered:
		s.Client.Name = strings.TrimSpace(e.Name)

	case PhoneEntered:
		s.Client.Phone = strings.TrimSpace(e.Phone)

	case EmailEntered:
		s.Client.Email = strings.TrimSpace(e.Email)

	case SlotsReplaced:
		if s.Time != "" && !slotOffered(e.Slots, s.Time) {
			s.Time = ""
		}

	case SubmissionSucceeded, SelectionCleared:
		s.Service = nil
		s.Time = ""
		s.Client = domain.ClientDetails{}
	}
	return s
}

func slotOffered(slots []domain.TimeSlot, t string) bool {
	for _, slot := range slots {
		if slot.Time == t && slot.Available {
			return true
		}
	}
	return false
}
