package wizard

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
)

// AdminView is the read-only staff view over the backend's appointment
// list. The backend takes no filter parameters, so filtering to the current
// day happens locally, by plain date-string equality.
type AdminView struct {
	client AppointmentLister
	log    *zap.SugaredLogger
}

// NewAdminView creates the staff appointment view.
func NewAdminView(client AppointmentLister, log *zap.SugaredLogger) *AdminView {
	return &AdminView{client: client, log: log}
}

// TodayAppointments fetches the full list and keeps only the entries whose
// date equals today, sorted by time. A fetch failure is logged and returned
// as a FetchError with an empty list; it never crashes the session.
func (v *AdminView) TodayAppointments(ctx context.Context, today string) ([]domain.Appointment, error) {
	all, err := v.client.Appointments(ctx)
	if err != nil {
		v.log.Warnw("failed to fetch appointments for admin view", "error", err)
		return nil, &FetchError{Resource: "appointments", Err: err}
	}

	var out []domain.Appointment
	for _, a := range all {
		if a.Date == today {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}
