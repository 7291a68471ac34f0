package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/barbearia-urbana/barberbot/storage"
	"github.com/barbearia-urbana/barberbot/wizard"
)

// requestTimeout bounds every backend call made on behalf of one update.
const requestTimeout = 10 * time.Second

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.session(chatID)

	if msg.IsCommand() {
		b.handleCommand(chatID, s, msg.Command())
		return
	}
	b.handleTextInput(chatID, s, msg.Text)
}

func (b *Bot) handleCommand(chatID int64, s *chatSession, command string) {
	switch command {
	case "start":
		s.input = inputNone
		b.sendHTML(chatID, textWelcome(b.business), nil)

	case "help":
		b.sendHTML(chatID, textHelp(b.isAdmin(chatID)), nil)

	case "book":
		s.input = inputNone
		markup := serviceKeyboard(b.catalog.Services())
		b.sendHTML(chatID, textChooseService(), &markup)

	case "servicos":
		b.sendHTML(chatID, textServices(b.catalog.Services()), nil)

	case "contato":
		b.sendHTML(chatID, textContact(b.business), nil)

	case "meusagendamentos":
		records, err := b.store.ListByChat(chatID)
		if err != nil {
			b.log.Warnw("failed to list local appointments", "chat_id", chatID, "error", err)
			b.sendHTML(chatID, "Não consegui consultar seus agendamentos agora. Tente de novo em instantes.", nil)
			return
		}
		b.sendHTML(chatID, textMyBookings(records), nil)

	case "hoje":
		if !b.isAdmin(chatID) {
			b.sendHTML(chatID, textUnknownCommand(), nil)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			today := time.Now().Format(wizard.DateLayout)
			appointments, err := b.adminView.TodayAppointments(ctx, today)
			if err != nil {
				b.sendHTML(chatID, "Não consegui carregar a agenda de hoje. Tente de novo em instantes.", nil)
				return
			}
			b.sendHTML(chatID, textAdminToday(appointments, today), nil)
		}()

	case "cancel":
		s.wiz.Clear()
		s.input = inputNone
		b.sendHTML(chatID, textCancelled(), nil)

	case "pular":
		if s.input == inputEmail {
			s.input = inputNone
			b.showSummary(chatID, s)
			return
		}
		b.sendHTML(chatID, textUnknownCommand(), nil)

	default:
		b.sendHTML(chatID, textUnknownCommand(), nil)
	}
}

// handleTextInput routes a free-text message into the client detail the
// wizard is currently waiting for.
func (b *Bot) handleTextInput(chatID int64, s *chatSession, text string) {
	text = strings.TrimSpace(text)

	switch s.input {
	case inputName:
		if text == "" {
			b.sendHTML(chatID, textAskName(), nil)
			return
		}
		s.wiz.SetName(text)
		s.input = inputPhone
		b.sendHTML(chatID, textAskPhone(), nil)

	case inputPhone:
		if text == "" {
			b.sendHTML(chatID, textAskPhone(), nil)
			return
		}
		s.wiz.SetPhone(text)
		s.input = inputEmail
		b.sendHTML(chatID, textAskEmail(), nil)

	case inputEmail:
		s.wiz.SetEmail(text)
		s.input = inputNone
		b.showSummary(chatID, s)

	default:
		b.sendHTML(chatID, "Toque em /book para agendar um horário, ou /help para ver os comandos.", nil)
	}
}

// showSummary presents the selection for final review, or resumes the data
// entry if something required is still missing.
func (b *Bot) showSummary(chatID int64, s *chatSession) {
	sel := s.wiz.Selection()
	if sel.Step() != wizard.StepReadyToSubmit {
		if verr := sel.Validate(); verr != nil {
			b.sendHTML(chatID, textMissingFields(verr.Missing), nil)
		}
		return
	}
	markup := confirmKeyboard()
	b.sendHTML(chatID, textSummary(sel), &markup)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallbackQuery(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	s := b.session(chatID)
	data := query.Data

	switch {
	case data == "action:none":
		b.answerCallbackQuery(query.ID, "")

	case data == "slot:na":
		b.answerCallbackQuery(query.ID, "Esse horário não está disponível.")

	case strings.HasPrefix(data, "svc:"):
		b.handleServiceChosen(query, s, strings.TrimPrefix(data, "svc:"))

	case strings.HasPrefix(data, "date:"):
		b.handleDateChosen(query, s, strings.TrimPrefix(data, "date:"))

	case strings.HasPrefix(data, "time:"):
		b.handleTimeChosen(query, s, strings.TrimPrefix(data, "time:"))

	case data == "confirm":
		b.handleConfirm(query, s)

	case data == "back:svc":
		b.answerCallbackQuery(query.ID, "")
		markup := serviceKeyboard(b.catalog.Services())
		b.editHTML(chatID, messageID, textChooseService(), &markup)

	case data == "back:date":
		b.answerCallbackQuery(query.ID, "")
		sel := s.wiz.Selection()
		markup := dateKeyboard(time.Now())
		b.editHTML(chatID, messageID, textChooseDate(sel.Service), &markup)

	case data == "back:time":
		b.answerCallbackQuery(query.ID, "")
		sel := s.wiz.Selection()
		slots := s.wiz.Slots()
		markup := timeKeyboard(slots)
		b.editHTML(chatID, messageID, textChooseTime(sel.Date, len(slots) > 0), &markup)

	case data == "cancel":
		b.answerCallbackQuery(query.ID, "")
		s.wiz.Clear()
		s.input = inputNone
		b.editHTML(chatID, messageID, textCancelled(), nil)

	default:
		b.log.Warnw("unknown callback data", "chat_id", chatID, "data", data)
		b.answerCallbackQuery(query.ID, "")
	}
}

func (b *Bot) handleServiceChosen(query *tgbotapi.CallbackQuery, s *chatSession, serviceID string) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	svc, ok := b.catalog.ServiceByID(serviceID)
	if !ok {
		b.answerCallbackQuery(query.ID, "Esse serviço não está mais disponível.")
		markup := serviceKeyboard(b.catalog.Services())
		b.editHTML(chatID, messageID, textChooseService(), &markup)
		return
	}

	b.answerCallbackQuery(query.ID, "")
	s.wiz.SelectService(svc)
	markup := dateKeyboard(time.Now())
	b.editHTML(chatID, messageID, textChooseDate(&svc), &markup)
}

func (b *Bot) handleDateChosen(query *tgbotapi.CallbackQuery, s *chatSession, date string) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	b.answerCallbackQuery(query.ID, "")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		res, err := s.wiz.SelectDate(ctx, date)
		if errors.Is(err, wizard.ErrPastDate) {
			b.sendHTML(chatID, "Essa data já passou. Escolha uma data a partir de hoje.", nil)
			return
		}
		if res.Stale {
			// A newer date pick already repainted the keyboard.
			return
		}
		// A fetch failure comes back as an empty list and is rendered as
		// "no times available" rather than an error screen.
		markup := timeKeyboard(res.Slots)
		b.editHTML(chatID, messageID, textChooseTime(date, len(res.Slots) > 0), &markup)
		if res.TimeCleared {
			b.sendHTML(chatID, textTimeCleared(), nil)
		}
	}()
}

func (b *Bot) handleTimeChosen(query *tgbotapi.CallbackQuery, s *chatSession, t string) {
	chatID := query.Message.Chat.ID

	if err := s.wiz.SelectTime(t); err != nil {
		b.answerCallbackQuery(query.ID, "Esse horário não está mais disponível.")
		return
	}
	b.answerCallbackQuery(query.ID, "")

	sel := s.wiz.Selection()
	switch {
	case strings.TrimSpace(sel.Client.Name) == "":
		s.input = inputName
		b.sendHTML(chatID, textAskName(), nil)
	case strings.TrimSpace(sel.Client.Phone) == "":
		s.input = inputPhone
		b.sendHTML(chatID, textAskPhone(), nil)
	default:
		// Revisit after the details were already entered: straight to review.
		b.showSummary(chatID, s)
	}
}

func (b *Bot) handleConfirm(query *tgbotapi.CallbackQuery, s *chatSession) {
	chatID := query.Message.Chat.ID

	// Callback queries go stale fast; answer before the backend round trip
	// and report the outcome through chat messages only.
	b.answerCallbackQuery(query.ID, "Confirmando...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		conf, err := s.wiz.Submit(ctx)
		if err != nil {
			if text, ok := submitErrorText(err); ok {
				b.sendHTML(chatID, text, nil)
			}
			return
		}
		b.sendHTML(chatID, textConfirmation(conf), nil)

		rec := storage.Record{
			ChatID:        chatID,
			AppointmentID: conf.Appointment.ID,
			ServiceName:   conf.Appointment.ServiceName,
			Date:          conf.Appointment.Date,
			Time:          conf.Appointment.Time,
			ClientName:    conf.Appointment.ClientName,
			Status:        conf.Appointment.Status,
			Price:         conf.Price(),
			CreatedAt:     time.Now(),
		}
		if err := b.store.SaveAppointment(rec); err != nil {
			b.log.Warnw("failed to record appointment locally",
				"chat_id", chatID, "appointment_id", rec.AppointmentID, "error", err)
		}
	}()
}

// submitErrorText maps a submission failure to the chat message to send.
// A false second return means stay silent: the tap that is already in
// flight will report the outcome.
func submitErrorText(err error) (string, bool) {
	var verr *wizard.ValidationError
	switch {
	case errors.Is(err, wizard.ErrSubmitInFlight):
		return "", false
	case errors.As(err, &verr):
		return textMissingFields(verr.Missing), true
	default:
		return textSubmitFailed(), true
	}
}
