package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/barbearia-urbana/barberbot/domain"
)

// Recorder observes the outcome of backend requests. Implemented by the
// metrics package; a nil Recorder disables observation.
type Recorder interface {
	ObserveRequest(endpoint string, err error, elapsed time.Duration)
}

// Client talks to the shop's booking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.SugaredLogger
	rec        Recorder
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Recorder       Recorder
}

// NewClient creates a booking backend client. The rate limiter keeps a
// misbehaving chat (or the digest worker) from hammering the backend.
func NewClient(opts Options, log *zap.SugaredLogger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := opts.RateLimitRPS
	if rps <= 0 {
		rps = 10
	}
	burst := opts.RateLimitBurst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
		rec:     opts.Recorder,
	}
}

// doRequest handles the common logic for calls to the backend: rate
// limiting, request construction, status checking and JSON decoding.
func (c *Client) doRequest(ctx context.Context, method, path string, header http.Header, body, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait (%s %s): %w", method, path, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body (%s %s): %w", method, path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request (%s %s): %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request context error (%s %s): %w", method, path, ctxErr)
		}
		return fmt.Errorf("failed to execute request (%s %s): %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			ErrUnexpectedStatus, method, path, resp.StatusCode, string(snippet))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response (%s %s): %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) observe(endpoint string, err error, started time.Time) {
	if c.rec != nil {
		c.rec.ObserveRequest(endpoint, err, time.Since(started))
	}
}

// Services fetches the service catalog.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	started := time.Now()
	var services []domain.Service
	err := c.doRequest(ctx, http.MethodGet, "/api/services", nil, nil, &services)
	c.observe("services", err, started)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	return services, nil
}

// AvailableSlots fetches the slot list for exactly one date (yyyy-mm-dd).
func (c *Client) AvailableSlots(ctx context.Context, date string) ([]domain.TimeSlot, error) {
	started := time.Now()
	var slots []domain.TimeSlot
	path := "/api/available-slots/" + url.PathEscape(date)
	err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &slots)
	c.observe("available_slots", err, started)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for %s: %w", date, err)
	}
	return slots, nil
}

// Appointments fetches the full appointment list. The backend offers no
// filtering parameters; callers filter locally.
func (c *Client) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	started := time.Now()
	var appointments []domain.Appointment
	err := c.doRequest(ctx, http.MethodGet, "/api/appointments", nil, nil, &appointments)
	c.observe("appointments", err, started)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	for i := range appointments {
		normalizeStatus(&appointments[i])
	}
	return appointments, nil
}

// CreateAppointment submits a new appointment. The idempotency key, when
// set, lets the backend dedupe retries of the same submission.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	started := time.Now()
	header := http.Header{}
	if req.IdempotencyKey != "" {
		header.Set("X-Idempotency-Key", req.IdempotencyKey)
	}

	var appointment domain.Appointment
	err := c.doRequest(ctx, http.MethodPost, "/api/appointments", header, req.body(), &appointment)
	c.observe("create_appointment", err, started)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	normalizeStatus(&appointment)
	return &appointment, nil
}

// normalizeStatus applies the display default: anything the backend did not
// mark confirmed is treated as pending.
func normalizeStatus(a *domain.Appointment) {
	if a.Status == "" {
		a.Status = domain.StatusPending
	}
}
