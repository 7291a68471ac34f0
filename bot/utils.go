package bot

import (
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// answerCallbackQuery acknowledges a callback so the client stops spinning.
func (b *Bot) answerCallbackQuery(queryID, text string) {
	callback := tgbotapi.NewCallback(queryID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.log.Warnw("failed to answer callback query", "query_id", queryID, "error", err)
	}
}

// sendHTML sends an HTML-formatted message, falling back to plain text if
// Telegram rejects the markup.
func (b *Bot) sendHTML(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warnw("failed to send HTML message, retrying as plain text", "chat_id", chatID, "error", err)
		msg.ParseMode = ""
		if _, err := b.api.Send(msg); err != nil {
			b.log.Warnw("failed to send message", "chat_id", chatID, "error", err)
		}
	}
}

// editHTML edits a previously sent message in place.
func (b *Bot) editHTML(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = markup
	if _, err := b.api.Send(edit); err != nil {
		b.log.Warnw("failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}
