package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/bookingapi"
	"github.com/barbearia-urbana/barberbot/domain"
)

// Session drives the booking wizard for one chat: it owns the Selection,
// the slot list resolved for the selected date, and the submission state.
// All mutation goes through the reducer under the session mutex, so a
// Telegram handler and a background availability refresh can never
// interleave mid-transition.
type Session struct {
	mu         sync.Mutex
	sel        Selection
	slots      []domain.TimeSlot
	gen        uint64
	submitting bool
	idemKey    string

	backend Backend
	metrics Metrics
	log     *zap.SugaredLogger
	today   func() string
}

// SessionConfig configures a new Session.
type SessionConfig struct {
	Backend Backend
	Metrics Metrics
	Log     *zap.SugaredLogger
	// Today returns the current calendar day as yyyy-mm-dd. Defaults to the
	// local clock; tests pin it.
	Today func() string
}

// NewSession creates a session whose date defaults to today.
func NewSession(cfg SessionConfig) *Session {
	today := cfg.Today
	if today == nil {
		today = func() string { return time.Now().Format(DateLayout) }
	}
	return &Session{
		sel:     NewSelection(today()),
		backend: cfg.Backend,
		metrics: cfg.Metrics,
		log:     cfg.Log,
		today:   today,
	}
}

// Selection returns a snapshot of the current selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Slots returns the slot list resolved for the currently selected date.
func (s *Session) Slots() []domain.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Submitting reports whether a submission is currently in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SelectService records the chosen service. Date and time already chosen
// are kept.
func (s *Session) SelectService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Reduce(s.sel, ServiceSelected{Service: svc})
}

// SetName records the client name.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Reduce(s.sel, NameEntered{Name: name})
}

// SetPhone records the client phone.
func (s *Session) SetPhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Reduce(s.sel, PhoneEntered{Phone: phone})
}

// SetEmail records the optional client e-mail.
func (s *Session) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Reduce(s.sel, EmailEntered{Email: email})
}

// Clear resets the selection back to the empty state, keeping the date.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Reduce(s.sel, SelectionCleared{})
	s.idemKey = ""
}

// SelectTime picks a slot from the current list. Slots that are not offered
// or not available are rejected here, at the state level, not just hidden
// by the keyboard.
func (s *Session) SelectTime(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slotOffered(s.slots, t) {
		return ErrSlotUnavailable
	}
	s.sel = Reduce(s.sel, TimeSelected{Slot: domain.TimeSlot{Time: t, Available: true}})
	return nil
}

// ResolveResult describes the outcome of one availability resolution.
type ResolveResult struct {
	// Slots is the list now held by the session (empty on fetch failure).
	Slots []domain.TimeSlot
	// Stale is true when the response arrived after a newer resolution was
	// issued and was therefore discarded without touching anything.
	Stale bool
	// TimeCleared is true when the replacement dropped a previously chosen
	// time that is no longer offered; the caller should tell the user.
	TimeCleared bool
}

// SelectDate changes the booking date and re-resolves availability for it.
// Past dates are rejected; the keyboards never offer them, but the state
// machine does not rely on that.
func (s *Session) SelectDate(ctx context.Context, date string) (ResolveResult, error) {
	s.mu.Lock()
	if _, err := time.Parse(DateLayout, date); err != nil {
		s.mu.Unlock()
		return ResolveResult{}, err
	}
	if date < s.today() {
		s.mu.Unlock()
		return ResolveResult{}, ErrPastDate
	}
	s.sel = Reduce(s.sel, DateSelected{Date: date})
	s.mu.Unlock()

	return s.ResolveAvailability(ctx)
}

// ResolveAvailability fetches the slot list for the currently selected date
// and replaces the held list wholesale. Each call captures a generation
// number; a response that comes back after a newer call was issued is
// discarded, so a slow fetch for an old date can never overwrite the
// current date's slots.
func (s *Session) ResolveAvailability(ctx context.Context) (ResolveResult, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	date := s.sel.Date
	s.mu.Unlock()

	slots, err := s.backend.AvailableSlots(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debugw("discarding stale availability response", "date", date, "generation", gen)
		if s.metrics != nil {
			s.metrics.StaleSlotsDiscarded()
		}
		return ResolveResult{Stale: true}, nil
	}

	if err != nil {
		// Treated as "no times offered": the list empties out and the user
		// sees an empty keyboard, never a broken view.
		s.log.Warnw("availability fetch failed, treating as no slots", "date", date, "error", err)
		slots = nil
	}

	hadTime := s.sel.Time != ""
	s.sel = Reduce(s.sel, SlotsReplaced{Slots: slots})
	s.slots = slots

	res := ResolveResult{
		Slots:       slots,
		TimeCleared: hadTime && s.sel.Time == "",
	}
	if err != nil {
		return res, &FetchError{Resource: "available-slots", Err: err}
	}
	return res, nil
}

// Submit validates the selection and sends it to the backend. The
// validation failure path never reaches the network. While one submission
// is in flight any further Submit is rejected, which keeps a double-tap
// from creating two appointments. On success the selection is cleared
// (except the date) and availability is re-resolved, since a slot was just
// consumed. On failure the selection is left exactly as it was so the user
// can retry without re-entering anything.
func (s *Session) Submit(ctx context.Context) (*Confirmation, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if verr := s.sel.Validate(); verr != nil {
		s.mu.Unlock()
		return nil, verr
	}
	// The idempotency key is minted once per selection and reused across
	// retries, so a backend that dedupes on it cannot double-book a
	// reconnection retry. It rotates only after a success.
	if s.idemKey == "" {
		s.idemKey = uuid.NewString()
	}
	s.submitting = true
	sel := s.sel
	key := s.idemKey
	s.mu.Unlock()

	req := bookingapi.CreateAppointmentRequest{
		ServiceID:      sel.Service.ID,
		ClientName:     sel.Client.Name,
		ClientPhone:    sel.Client.Phone,
		ClientEmail:    sel.Client.Email,
		Date:           sel.Date,
		Time:           sel.Time,
		IdempotencyKey: key,
	}
	appointment, err := s.backend.CreateAppointment(ctx, req)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.mu.Unlock()
		s.log.Warnw("appointment creation failed", "date", sel.Date, "time", sel.Time, "error", err)
		return nil, &SubmissionError{Err: err}
	}

	conf := &Confirmation{Appointment: *appointment, Service: sel.Service}
	s.sel = Reduce(s.sel, SubmissionSucceeded{})
	s.idemKey = ""
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.BookingCreated()
	}
	s.log.Infow("appointment created",
		"appointment_id", appointment.ID, "date", appointment.Date, "time", appointment.Time)

	// The booked slot is gone now; refresh the list for the retained date.
	if _, rerr := s.ResolveAvailability(ctx); rerr != nil {
		s.log.Warnw("post-submission availability refresh failed", "error", rerr)
	}

	return conf, nil
}
