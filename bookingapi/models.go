package bookingapi

// CreateAppointmentRequest is the creation payload for POST /api/appointments.
// IdempotencyKey travels as a header, not in the body.
type CreateAppointmentRequest struct {
	ServiceID      string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	Date           string
	Time           string
	IdempotencyKey string
}

type createAppointmentBody struct {
	ServiceID   string `json:"service_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

func (r CreateAppointmentRequest) body() createAppointmentBody {
	return createAppointmentBody{
		ServiceID:   r.ServiceID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Date:        r.Date,
		Time:        r.Time,
	}
}
