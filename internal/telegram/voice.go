package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"groqbot/internal/modelinfo"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// processVoiceMessage проверяет, обращено ли голосовое сообщение к боту,
// скачивает аудио и возвращает транскрипцию. Второе значение false означает,
// что обработку нужно прекратить.
func (h *Handler) processVoiceMessage(ctx context.Context, message *tgbotapi.Message) (string, bool) {
	chatID := message.Chat.ID

	if !h.voiceAddressedToBot(message) {
		logrus.Debugf("Бот не упомянут в голосовом сообщении чата %d, игнорирую", chatID)
		return "", false
	}

	if message.Voice.Duration > modelinfo.MaxVoiceDuration {
		h.sendPlain(chatID, message.MessageID, fmt.Sprintf(
			"⚠️ Ваше голосовое сообщение слишком длинное (более %d секунд). "+
				"Пожалуйста, отправьте более короткое сообщение.",
			modelinfo.MaxVoiceDuration,
		))
		return "", false
	}

	audioData, err := h.downloadVoice(message.Voice.FileID)
	if err != nil {
		logrus.Errorf("Ошибка при загрузке голосового сообщения: %v", err)
		h.sendPlain(chatID, message.MessageID, "Не удалось загрузить голосовое сообщение.")
		return "", false
	}

	statusMsg, statusErr := h.bot.Send(tgbotapi.NewMessage(chatID, "🔄 Обрабатываю голосовое сообщение..."))
	if statusErr != nil {
		logrus.Errorf("Ошибка при отправке статусного сообщения: %v", statusErr)
	}

	transcript, err := h.groqClient.Transcribe(ctx, audioData)
	if err != nil || transcript == "" {
		logrus.Errorf("Ошибка при обработке голосового сообщения в чате %d: %v", chatID, err)
		if statusErr == nil {
			h.editMessage(chatID, statusMsg.MessageID,
				"❌ Не удалось обработать голосовое сообщение. Пожалуйста, попробуйте еще раз или отправьте текстовое сообщение.")
		}
		return "", false
	}

	if statusErr == nil {
		h.editMessage(chatID, statusMsg.MessageID,
			fmt.Sprintf("🔤 Текст голосового сообщения:\n\n%s", transcript))
	}

	logrus.Infof("Транскрипция голосового сообщения в чате %d: %s", chatID, transcript)
	return transcript, true
}

// voiceAddressedToBot проверяет упоминание бота в подписи к голосовому
// сообщению или ответ на сообщение бота.
func (h *Handler) voiceAddressedToBot(message *tgbotapi.Message) bool {
	token := "@" + h.bot.Self.UserName

	if message.Caption != "" && strings.Contains(message.Caption, token) {
		return true
	}

	if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil &&
		message.ReplyToMessage.From.ID == h.bot.Self.ID {
		return true
	}

	return false
}

func (h *Handler) downloadVoice(fileID string) ([]byte, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить URL файла: %w", err)
	}

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить файл: %w", err)
	}
	defer resp.Body.Close()

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать аудио данные: %w", err)
	}

	return audioData, nil
}

func (h *Handler) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := h.bot.Send(edit); err != nil {
		logrus.Errorf("Ошибка при редактировании сообщения: %v", err)
	}
}
