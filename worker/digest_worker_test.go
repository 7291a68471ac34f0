package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
	"github.com/barbearia-urbana/barberbot/wizard"
)

type fakeLister struct {
	mu           sync.Mutex
	appointments []domain.Appointment
	err          error
}

func (f *fakeLister) Appointments(context.Context) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appointments, f.err
}

func (f *fakeLister) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeSender struct {
	mu    sync.Mutex
	sends []int64
}

func (f *fakeSender) SendDigest(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, chatID)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

func newTestWorker(sender *fakeSender, lister *fakeLister) *DigestWorker {
	view := wizard.NewAdminView(lister, zap.NewNop().Sugar())
	return NewDigestWorker(view, sender, []int64{111, 222}, 8, zap.NewNop().Sugar())
}

func TestDigestNotSentBeforeConfiguredHour(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender, &fakeLister{})

	w.maybeSend(time.Date(2026, 8, 30, 7, 59, 0, 0, time.UTC))
	assert.Zero(t, sender.count())
}

func TestDigestSentOncePerDay(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender, &fakeLister{})

	morning := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	w.maybeSend(morning)
	require.Equal(t, 2, sender.count(), "one message per admin chat")

	w.maybeSend(morning.Add(time.Minute))
	w.maybeSend(morning.Add(5 * time.Hour))
	assert.Equal(t, 2, sender.count(), "no resend within the same day")

	w.maybeSend(morning.AddDate(0, 0, 1))
	assert.Equal(t, 4, sender.count(), "the next day fires again")
}

func TestDigestRetriesAfterFetchFailure(t *testing.T) {
	sender := &fakeSender{}
	lister := &fakeLister{}
	lister.setErr(errors.New("backend down"))
	w := newTestWorker(sender, lister)

	morning := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	w.maybeSend(morning)
	require.Zero(t, sender.count(), "nothing goes out when the fetch fails")

	lister.setErr(nil)
	w.maybeSend(morning.Add(time.Minute))
	assert.Equal(t, 2, sender.count(), "the next tick retries the digest")

	w.maybeSend(morning.Add(2 * time.Minute))
	assert.Equal(t, 2, sender.count(), "still once per day after the retry")
}

func TestDigestText(t *testing.T) {
	text := digestText(nil, "2026-08-30")
	assert.Contains(t, text, "Nenhum agendamento")

	text = digestText([]domain.Appointment{
		{Time: "09:30", ServiceName: "Corte de Cabelo", ClientName: "João"},
		{Time: "14:00", ServiceName: "Barba", ClientName: "Maria"},
	}, "2026-08-30")
	assert.Contains(t, text, "30/08/2026")
	assert.Contains(t, text, "09:30")
	assert.Contains(t, text, "Total: 2")
}
