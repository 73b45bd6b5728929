package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// maxMessageLength чуть меньше лимита Telegram (4096) для запаса.
const maxMessageLength = 4000

// sendLongMessage отправляет ответ, при необходимости разбивая его на части.
func (h *Handler) sendLongMessage(chatID int64, replyTo int, text, parseMode string) {
	for _, part := range splitMessage(text, maxMessageLength) {
		h.sendFormatted(chatID, replyTo, part, parseMode)
	}
}

// splitMessage разбивает текст на части не длиннее limit. Сначала текст
// делится по абзацам, чтобы не рвать их на середине; абзац длиннее лимита
// нарезается на куски фиксированного размера.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	current := ""

	for _, paragraph := range splitParagraphs(text) {
		if len(current)+len(paragraph)+2 > limit {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
			if len(paragraph) > limit {
				for i := 0; i < len(paragraph); i += limit {
					end := i + limit
					if end > len(paragraph) {
						end = len(paragraph)
					}
					parts = append(parts, paragraph[i:end])
				}
				continue
			}
			current = paragraph + "\n\n"
			continue
		}
		current += paragraph + "\n\n"
	}

	if current != "" {
		parts = append(parts, current)
	}

	return parts
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '\n' && text[i+1] == '\n' {
			paragraphs = append(paragraphs, text[start:i])
			start = i + 2
			i++
		}
	}
	paragraphs = append(paragraphs, text[start:])
	return paragraphs
}

// sendFormatted отправляет сообщение с форматированием, а при ошибке
// форматирования повторяет отправку один раз без него.
func (h *Handler) sendFormatted(chatID int64, replyTo int, text, parseMode string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.ParseMode = parseMode

	if _, err := h.bot.Send(msg); err != nil {
		logrus.Errorf("Ошибка при отправке сообщения с форматированием: %v", err)
		h.sendPlain(chatID, replyTo, text)
	}
}

func (h *Handler) sendPlain(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo

	if _, err := h.bot.Send(msg); err != nil {
		logrus.Errorf("Ошибка при отправке сообщения: %v", err)
	}
}
