package wizard

import (
	"context"

	"github.com/barbearia-urbana/barberbot/bookingapi"
	"github.com/barbearia-urbana/barberbot/domain"
)

// Backend is the slice of the booking API a session needs.
type Backend interface {
	AvailableSlots(ctx context.Context, date string) ([]domain.TimeSlot, error)
	CreateAppointment(ctx context.Context, req bookingapi.CreateAppointmentRequest) (*domain.Appointment, error)
}

// CatalogClient fetches the service catalog.
type CatalogClient interface {
	Services(ctx context.Context) ([]domain.Service, error)
}

// AppointmentLister fetches the full appointment list for the admin view.
type AppointmentLister interface {
	Appointments(ctx context.Context) ([]domain.Appointment, error)
}

// Metrics receives wizard-level counters. A nil Metrics disables them.
type Metrics interface {
	BookingCreated()
	StaleSlotsDiscarded()
}
