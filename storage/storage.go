package storage

import "time"

// Record is one appointment created through this bot, kept locally so a
// chat can list its own bookings without a per-client backend endpoint.
type Record struct {
	ChatID        int64
	AppointmentID string
	ServiceName   string
	Date          string
	Time          string
	ClientName    string
	Status        string
	Price         float64
	CreatedAt     time.Time
}

// Store is the local appointment log.
type Store interface {
	// SaveAppointment inserts or replaces a record, keyed by appointment id.
	SaveAppointment(rec Record) error

	// ListByChat returns the records created from one chat, newest first.
	ListByChat(chatID int64) ([]Record, error)

	// Close releases the underlying database.
	Close() error
}
