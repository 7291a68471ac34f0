package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-urbana/barberbot/config"
	"github.com/barbearia-urbana/barberbot/domain"
	"github.com/barbearia-urbana/barberbot/storage"
	"github.com/barbearia-urbana/barberbot/wizard"
)

// displayDate renders an internal yyyy-mm-dd date as dd/mm/yyyy.
func displayDate(date string) string {
	t, err := time.Parse(wizard.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

func textWelcome(business config.BusinessConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💈 Bem-vindo à <b>%s</b>!\n\n", htmlEscape(business.Name))
	sb.WriteString("Aqui você agenda seu horário em poucos toques:\n")
	sb.WriteString("escolha o serviço, a data e o horário, informe seus dados e pronto.\n\n")
	sb.WriteString("Toque em /book para começar, ou /help para ver todos os comandos.")
	return sb.String()
}

func textHelp(isAdmin bool) string {
	var sb strings.Builder
	sb.WriteString("<b>Comandos</b>\n\n")
	sb.WriteString("/book — agendar um horário\n")
	sb.WriteString("/servicos — ver os serviços e preços\n")
	sb.WriteString("/meusagendamentos — seus agendamentos feitos por aqui\n")
	sb.WriteString("/contato — endereço, telefone e horário de funcionamento\n")
	sb.WriteString("/cancel — descartar o agendamento em andamento\n")
	if isAdmin {
		sb.WriteString("/hoje — agenda de hoje (equipe)\n")
	}
	return sb.String()
}

func textServices(services []domain.Service) string {
	if len(services) == 0 {
		return "Nenhum serviço disponível no momento. Tente novamente mais tarde."
	}

	var sb strings.Builder
	sb.WriteString("<b>Nossos serviços</b>\n\n")
	for _, svc := range services {
		fmt.Fprintf(&sb, "✂️ <b>%s</b> — %s (%d min)\n",
			htmlEscape(svc.Name), domain.FormatPrice(svc.Price), svc.DurationMinutes)
		if svc.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", htmlEscape(svc.Description))
		}
	}
	sb.WriteString("\nToque em /book para agendar.")
	return sb.String()
}

func textContact(business config.BusinessConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n\n", htmlEscape(business.Name))
	if business.Address != "" {
		fmt.Fprintf(&sb, "📍 %s\n", htmlEscape(business.Address))
	}
	if business.Phone != "" {
		fmt.Fprintf(&sb, "📞 %s\n", htmlEscape(business.Phone))
	}
	if business.WhatsApp != "" {
		fmt.Fprintf(&sb, "💬 WhatsApp: %s\n", htmlEscape(business.WhatsApp))
	}
	if business.Hours != "" {
		fmt.Fprintf(&sb, "🕐 %s\n", htmlEscape(business.Hours))
	}
	return sb.String()
}

func textChooseService() string {
	return "Qual serviço você quer agendar?"
}

func textChooseDate(svc *domain.Service) string {
	if svc == nil {
		return "Para qual dia?"
	}
	return fmt.Sprintf("<b>%s</b> — %s\n\nPara qual dia?",
		htmlEscape(svc.Name), domain.FormatPrice(svc.Price))
}

func textChooseTime(date string, hasSlots bool) string {
	if !hasSlots {
		return fmt.Sprintf("Nenhum horário disponível em %s. Escolha outra data.", displayDate(date))
	}
	return fmt.Sprintf("Horários para <b>%s</b>:", displayDate(date))
}

func textAskName() string {
	return "Qual é o seu nome?"
}

func textAskPhone() string {
	return "Qual é o seu telefone? (com DDD)"
}

func textAskEmail() string {
	return "Qual é o seu e-mail? Envie /pular se não quiser informar."
}

// textSummary renders the selection for final review.
func textSummary(sel wizard.Selection) string {
	var sb strings.Builder
	sb.WriteString("<b>Confira seu agendamento</b>\n\n")
	if sel.Service != nil {
		fmt.Fprintf(&sb, "✂️ Serviço: <b>%s</b>\n", htmlEscape(sel.Service.Name))
		fmt.Fprintf(&sb, "💰 Valor: %s\n", domain.FormatPrice(sel.Service.Price))
	}
	fmt.Fprintf(&sb, "📅 Data: %s\n", displayDate(sel.Date))
	fmt.Fprintf(&sb, "🕐 Horário: %s\n", sel.Time)
	fmt.Fprintf(&sb, "👤 Nome: %s\n", htmlEscape(sel.Client.Name))
	fmt.Fprintf(&sb, "📞 Telefone: %s\n", htmlEscape(sel.Client.Phone))
	if sel.Client.Email != "" {
		fmt.Fprintf(&sb, "✉️ E-mail: %s\n", htmlEscape(sel.Client.Email))
	}
	return sb.String()
}

func textConfirmation(conf *wizard.Confirmation) string {
	a := conf.Appointment
	var sb strings.Builder
	sb.WriteString("✅ <b>Agendamento confirmado!</b>\n\n")
	fmt.Fprintf(&sb, "Código: <code>%s</code>\n", conf.Code())
	fmt.Fprintf(&sb, "✂️ %s\n", htmlEscape(a.ServiceName))
	fmt.Fprintf(&sb, "📅 %s às %s\n", displayDate(a.Date), a.Time)
	fmt.Fprintf(&sb, "💰 %s\n\n", domain.FormatPrice(conf.Price()))
	sb.WriteString("Te esperamos! Se precisar remarcar, fale com a gente pelo /contato.")
	return sb.String()
}

func statusBadge(status string) string {
	if status == domain.StatusConfirmed {
		return "✅ Confirmado"
	}
	return "🕒 Pendente"
}

func textAdminToday(appointments []domain.Appointment, today string) string {
	if len(appointments) == 0 {
		return fmt.Sprintf("Nenhum agendamento para hoje (%s).", displayDate(today))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Agenda de hoje — %s</b>\n\n", displayDate(today))
	for _, a := range appointments {
		fmt.Fprintf(&sb, "🕐 <b>%s</b> — %s\n", a.Time, htmlEscape(a.ServiceName))
		fmt.Fprintf(&sb, "   👤 %s", htmlEscape(a.ClientName))
		if a.ClientPhone != "" {
			fmt.Fprintf(&sb, " · 📞 %s", htmlEscape(a.ClientPhone))
		}
		fmt.Fprintf(&sb, "\n   %s\n", statusBadge(a.Status))
	}
	fmt.Fprintf(&sb, "\nTotal: %d", len(appointments))
	return sb.String()
}

func textMyBookings(records []storage.Record) string {
	if len(records) == 0 {
		return "Você ainda não tem agendamentos por aqui. Toque em /book para marcar o primeiro."
	}

	var sb strings.Builder
	sb.WriteString("<b>Seus agendamentos</b>\n\n")
	for _, rec := range records {
		code := rec.AppointmentID
		if len(code) > 8 {
			code = code[len(code)-8:]
		}
		fmt.Fprintf(&sb, "✂️ <b>%s</b>\n", htmlEscape(rec.ServiceName))
		fmt.Fprintf(&sb, "📅 %s às %s · %s\n", displayDate(rec.Date), rec.Time, domain.FormatPrice(rec.Price))
		fmt.Fprintf(&sb, "   %s · código <code>%s</code>\n", statusBadge(rec.Status), strings.ToUpper(code))
	}
	return sb.String()
}

func textCancelled() string {
	return "Agendamento descartado. Quando quiser, é só tocar em /book de novo."
}

func textTimeCleared() string {
	return "O horário que você tinha escolhido não está mais disponível. Escolha outro, por favor."
}

func textSubmitFailed() string {
	return "Não consegui confirmar seu agendamento agora. Nada foi perdido — toque em ✅ Confirmar para tentar de novo."
}

func textMissingFields(missing []string) string {
	return fmt.Sprintf("Ainda falta informar: %s.", strings.Join(missing, ", "))
}

func textUnknownCommand() string {
	return "Não conheci esse comando. Toque em /help para ver o que eu sei fazer."
}
