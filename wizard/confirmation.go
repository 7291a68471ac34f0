package wizard

import (
	"strings"

	"github.com/barbearia-urbana/barberbot/domain"
)

// Confirmation merges the appointment record returned by the backend with
// the locally held service it referenced, ready for display.
type Confirmation struct {
	Appointment domain.Appointment
	// Service may be nil if the catalog entry disappeared between selection
	// and confirmation; display falls back to a zero price.
	Service *domain.Service
}

// Code derives the short confirmation identifier from the appointment id.
func (c Confirmation) Code() string {
	id := c.Appointment.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// Price returns the service price, or zero when the service reference is
// missing.
func (c Confirmation) Price() float64 {
	if c.Service == nil {
		return 0
	}
	return c.Service.Price
}
