package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// detectMention решает, обращено ли текстовое сообщение к боту, и возвращает
// текст без упоминания. Порядок проверок: структурные упоминания из entities,
// затем простой текстовый поиск, затем ответ на сообщение бота.
func detectMention(message *tgbotapi.Message, botUsername string, botID int64) (bool, string) {
	text := message.Text
	token := "@" + botUsername

	for _, entity := range message.Entities {
		if entity.Type != "mention" {
			continue
		}
		mention := entityText(text, entity.Offset, entity.Length)
		if strings.EqualFold(mention, token) {
			return true, stripMention(text, mention)
		}
	}

	if strings.Contains(text, token) {
		return true, stripMention(text, token)
	}

	if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil &&
		message.ReplyToMessage.From.ID == botID {
		return true, strings.TrimSpace(text)
	}

	return false, ""
}

// stripMention убирает все вхождения токена упоминания и пробелы по краям.
// Пробелы вокруг убранного токена внутри строки сохраняются.
func stripMention(text, mention string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, mention, ""))
}

func entityText(text string, offset, length int) string {
	runes := []rune(text)
	if offset < 0 || offset+length > len(runes) {
		return ""
	}
	return string(runes[offset : offset+length])
}
