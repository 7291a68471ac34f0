package bookingapi

import "errors"

// ErrUnexpectedStatus marks a non-2xx response from the backend.
var ErrUnexpectedStatus = errors.New("unexpected status code")
