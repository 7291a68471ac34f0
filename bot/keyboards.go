package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/barbearia-urbana/barberbot/domain"
	"github.com/barbearia-urbana/barberbot/wizard"
)

// dateKeyboardDays is how many days ahead the date keyboard offers.
const dateKeyboardDays = 14

var weekdayShort = map[time.Weekday]string{
	time.Sunday:    "Dom",
	time.Monday:    "Seg",
	time.Tuesday:   "Ter",
	time.Wednesday: "Qua",
	time.Thursday:  "Qui",
	time.Friday:    "Sex",
	time.Saturday:  "Sáb",
}

// serviceKeyboard lists the catalog, one service per row.
func serviceKeyboard(services []domain.Service) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if len(services) == 0 {
		button := tgbotapi.NewInlineKeyboardButtonData("Nenhum serviço disponível", "action:none")
		rows = append(rows, []tgbotapi.InlineKeyboardButton{button})
	}
	for _, svc := range services {
		label := fmt.Sprintf("%s — %s", svc.Name, domain.FormatPrice(svc.Price))
		button := tgbotapi.NewInlineKeyboardButtonData(label, "svc:"+svc.ID)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{button})
	}

	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", "cancel")
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancel})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// dateKeyboard offers today plus the next days, two per row. Past dates are
// never rendered, which is how the "no past dates" invariant is enforced at
// selection time.
func dateKeyboard(now time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i := 0; i < dateKeyboardDays; i++ {
		date := now.AddDate(0, 0, i)
		display := fmt.Sprintf("%s %s", date.Format("02/01"), weekdayShort[date.Weekday()])
		if i == 0 {
			display = "Hoje " + date.Format("02/01")
		}
		button := tgbotapi.NewInlineKeyboardButtonData(display, "date:"+date.Format(wizard.DateLayout))

		if len(rows) == 0 || len(rows[len(rows)-1]) == 2 {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{button})
		} else {
			rows[len(rows)-1] = append(rows[len(rows)-1], button)
		}
	}

	back := tgbotapi.NewInlineKeyboardButtonData("⬅️ Voltar (serviços)", "back:svc")
	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", "cancel")
	rows = append(rows, []tgbotapi.InlineKeyboardButton{back})
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancel})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// timeKeyboard renders the resolved slot list, three per row. Unavailable
// slots stay visible but inert; the session rejects them again anyway.
func timeKeyboard(slots []domain.TimeSlot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, slot := range slots {
		var button tgbotapi.InlineKeyboardButton
		if slot.Available {
			button = tgbotapi.NewInlineKeyboardButtonData(slot.Time, "time:"+slot.Time)
		} else {
			button = tgbotapi.NewInlineKeyboardButtonData("✖ "+slot.Time, "slot:na")
		}
		row = append(row, button)
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(slots) == 0 {
		button := tgbotapi.NewInlineKeyboardButtonData("Nenhum horário disponível", "action:none")
		rows = append(rows, []tgbotapi.InlineKeyboardButton{button})
	}

	back := tgbotapi.NewInlineKeyboardButtonData("⬅️ Voltar (datas)", "back:date")
	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", "cancel")
	rows = append(rows, []tgbotapi.InlineKeyboardButton{back})
	rows = append(rows, []tgbotapi.InlineKeyboardButton{cancel})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// confirmKeyboard closes the wizard: confirm, go back, or drop everything.
func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	confirm := tgbotapi.NewInlineKeyboardButtonData("✅ Confirmar agendamento", "confirm")
	back := tgbotapi.NewInlineKeyboardButtonData("⬅️ Alterar horário", "back:time")
	cancel := tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", "cancel")
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{confirm},
		[]tgbotapi.InlineKeyboardButton{back},
		[]tgbotapi.InlineKeyboardButton{cancel},
	)
}
