package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL}, zap.NewNop().Sugar())
	return client, srv
}

func TestServices(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/services", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Service{
			{ID: "svc-1", Name: "Corte de Cabelo", Price: 30, DurationMinutes: 45},
		})
	}))

	services, err := client.Services(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Corte de Cabelo", services[0].Name)
	assert.Equal(t, 30.0, services[0].Price)
}

func TestAvailableSlots(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/available-slots/2026-08-31", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.TimeSlot{
			{Time: "09:00", Available: true},
			{Time: "10:00", Available: false},
		})
	}))

	slots, err := client.AvailableSlots(context.Background(), "2026-08-31")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
}

func TestAppointmentsNormalizesStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Appointment{
			{ID: "a1", Status: domain.StatusConfirmed},
			{ID: "a2", Status: ""},
		})
	}))

	appointments, err := client.Appointments(context.Background())
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, domain.StatusConfirmed, appointments[0].Status)
	assert.Equal(t, domain.StatusPending, appointments[1].Status, "empty status defaults to pending")
}

func TestCreateAppointment(t *testing.T) {
	var gotKey string
	var gotBody map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/appointments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		gotKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(domain.Appointment{
			ID:     "appt-1",
			Status: domain.StatusConfirmed,
		})
	}))

	appointment, err := client.CreateAppointment(context.Background(), CreateAppointmentRequest{
		ServiceID:      "svc-1",
		ClientName:     "João Silva",
		ClientPhone:    "11999990000",
		ClientEmail:    "joao@example.com",
		Date:           "2026-08-31",
		Time:           "10:00",
		IdempotencyKey: "key-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appointment.ID)

	assert.Equal(t, "key-123", gotKey, "the idempotency key travels as a header")
	assert.Equal(t, "svc-1", gotBody["service_id"])
	assert.Equal(t, "João Silva", gotBody["client_name"])
	assert.Equal(t, "2026-08-31", gotBody["date"])
	assert.Equal(t, "10:00", gotBody["time"])
	assert.NotContains(t, gotBody, "idempotency_key", "the key never leaks into the body")
}

func TestCreateAppointmentWithoutKeyOmitsHeader(t *testing.T) {
	var hasKey bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Idempotency-Key"]
		json.NewEncoder(w).Encode(domain.Appointment{ID: "appt-1"})
	}))

	_, err := client.CreateAppointment(context.Background(), CreateAppointmentRequest{ServiceID: "svc-1"})
	require.NoError(t, err)
	assert.False(t, hasKey)
}

func TestUnexpectedStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "slot taken"}`, http.StatusConflict)
	}))

	_, err := client.AvailableSlots(context.Background(), "2026-08-31")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "slot taken")
}

func TestRequestContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Services(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
