package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubmitInFlight rejects a submit while another one is in flight.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrSlotUnavailable rejects selecting a time that is not offered or
	// not available on the current slot list.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrPastDate rejects selecting a date before the current day.
	ErrPastDate = errors.New("date is in the past")
)

// ValidationError reports the required fields still missing from a
// selection. It blocks submission before any network call happens.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos obrigatórios ausentes: %s", strings.Join(e.Missing, ", "))
}

// FetchError wraps a failed read from the backend (catalog, availability,
// appointment listing). Non-fatal: the affected collection stays empty.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmissionError wraps a network or server failure during appointment
// creation. The selection is kept so the user can retry without re-entering
// anything.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("appointment submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
