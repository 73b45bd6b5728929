package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"groqbot/internal/chatstore"
	"groqbot/internal/chatstore/models"
	"groqbot/internal/groq"

	"github.com/sirupsen/logrus"
)

// Service собирает запрос к модели из системного промпта, истории чата и
// нового сообщения пользователя, а после успешного ответа дописывает оба
// хода в историю.
type Service struct {
	store *chatstore.Service
	groq  *groq.Client
}

func NewService(store *chatstore.Service, groqClient *groq.Client) *Service {
	return &Service{
		store: store,
		groq:  groqClient,
	}
}

// Respond выполняет один обмен с моделью. Возвращает очищенный от
// служебных тегов текст ответа. В историю записывается исходный ответ
// модели, а не очищенный.
func (s *Service) Respond(ctx context.Context, settings *models.ChatSettings, chatID int64, displayName, text string) (string, error) {
	history, err := s.store.GetMessageHistory(ctx, chatID, chatstore.MaxHistory)
	if err != nil {
		return "", err
	}

	userContent := fmt.Sprintf("%s: %s", displayName, text)

	messages := make([]models.HistoryItem, 0, len(history)+2)
	messages = append(messages, models.HistoryItem{
		Role:    models.RoleSystem,
		Content: settings.SystemPrompt,
	})
	messages = append(messages, history...)
	messages = append(messages, models.HistoryItem{
		Role:    models.RoleUser,
		Content: userContent,
	})

	logrus.WithFields(logrus.Fields{
		"chat_id":     chatID,
		"model":       settings.Model,
		"temperature": settings.Temperature,
		"max_tokens":  settings.MaxTokens,
		"history_len": len(history),
	}).Info("Отправка запроса к API Groq")

	reply, err := s.groq.CreateCompletion(ctx, groq.CompletionRequest{
		Model:       settings.Model,
		Messages:    messages,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if err := s.store.AddMessage(ctx, chatID, models.RoleUser, userContent); err != nil {
		logrus.Errorf("Ошибка при сохранении сообщения пользователя в чате %d: %v", chatID, err)
	}
	if err := s.store.AddMessage(ctx, chatID, models.RoleAssistant, reply); err != nil {
		logrus.Errorf("Ошибка при сохранении ответа модели в чате %d: %v", chatID, err)
	}

	return StripThinkTags(reply), nil
}

var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinkTags удаляет из ответа модели блоки <think>...</think> вместе
// с тегами. Внутренние рассуждения модели не должны попадать в чат.
func StripThinkTags(text string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(text, ""))
}
