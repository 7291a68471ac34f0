package worker

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
	"github.com/barbearia-urbana/barberbot/wizard"
)

const tickInterval = time.Minute

// Sender delivers a digest message to a staff chat.
type Sender interface {
	SendDigest(chatID int64, text string) error
}

// DigestWorker sends the staff chats a summary of the day's appointments
// once per day at the configured hour.
type DigestWorker struct {
	view   *wizard.AdminView
	sender Sender
	admins []int64
	hour   int
	log    *zap.SugaredLogger

	stopCh   chan struct{}
	wg       sync.WaitGroup
	lastSent string
}

// NewDigestWorker creates a stopped worker.
func NewDigestWorker(view *wizard.AdminView, sender Sender, admins []int64, hour int, log *zap.SugaredLogger) *DigestWorker {
	return &DigestWorker{
		view:   view,
		sender: sender,
		admins: admins,
		hour:   hour,
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// Start launches the background loop.
func (w *DigestWorker) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Infow("digest worker started", "hour", w.hour, "admins", len(w.admins))
}

// Stop shuts the loop down and waits for it to finish.
func (w *DigestWorker) Stop() {
	close(w.stopCh)
	w.wg.Wait()
}

func (w *DigestWorker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.maybeSend(time.Now())
		}
	}
}

// maybeSend fires at most once per calendar day, on the first tick at or
// after the configured hour. The sent marker is recorded only after the
// appointment list is fetched, so a failed fetch retries on the next tick
// instead of forfeiting the day.
func (w *DigestWorker) maybeSend(now time.Time) {
	today := now.Format(wizard.DateLayout)
	if now.Hour() < w.hour || w.lastSent == today {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	appointments, err := w.view.TodayAppointments(ctx, today)
	if err != nil {
		w.log.Warnw("failed to build daily digest, will retry on the next tick", "date", today, "error", err)
		return
	}
	w.lastSent = today

	text := digestText(appointments, today)
	for _, chatID := range w.admins {
		if err := w.sender.SendDigest(chatID, text); err != nil {
			w.log.Warnw("failed to deliver daily digest", "chat_id", chatID, "error", err)
		}
	}
	w.log.Infow("daily digest sent", "date", today, "appointments", len(appointments))
}

func digestText(appointments []domain.Appointment, today string) string {
	display := today
	if t, err := time.Parse(wizard.DateLayout, today); err == nil {
		display = t.Format("02/01/2006")
	}

	if len(appointments) == 0 {
		return fmt.Sprintf("📋 Nenhum agendamento para hoje (%s).", display)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Resumo do dia — %s</b>\n\n", display)
	for _, a := range appointments {
		fmt.Fprintf(&sb, "🕐 <b>%s</b> — %s (%s)\n",
			a.Time, html.EscapeString(a.ServiceName), html.EscapeString(a.ClientName))
	}
	fmt.Fprintf(&sb, "\nTotal: %d agendamentos", len(appointments))
	return sb.String()
}
