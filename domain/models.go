package domain

import "time"

// Appointment statuses assigned by the booking backend. The backend is the
// sole authority on status; the bot only displays it.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Service is one entry of the shop's catalog. Immutable once fetched.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// TimeSlot is a discrete bookable time on a given date.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ClientDetails holds the personal details entered during booking.
// Validated only at submission time.
type ClientDetails struct {
	Name  string
	Phone string
	Email string
}

// Appointment is a booking record owned by the backend. The bot holds it
// only as a read-through cache.
type Appointment struct {
	ID          string    `json:"id"`
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
