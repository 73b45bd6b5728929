package groq

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"groqbot/internal/chatstore/models"
	"groqbot/internal/modelinfo"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const baseURL = "https://api.groq.com/openai/v1"

// Client работает с Groq API через OpenAI-совместимый протокол.
type Client struct {
	client *openai.Client
}

func NewClient(apiKey string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(cfg),
	}
}

type CompletionRequest struct {
	Model       string
	Messages    []models.HistoryItem
	Temperature float64
	MaxTokens   int
}

// CreateCompletion выполняет один синхронный запрос к модели и возвращает
// текст ответа. Повторных попыток нет, ошибка возвращается вызывающему.
func (c *Client) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, item := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    item.Role,
			Content: item.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		logrus.Errorf("Ошибка при запросе к API Groq: %v", err)
		return "", err
	}

	logrus.Infof("Ответ от Groq получен за %.2f секунд", time.Since(start).Seconds())

	if len(resp.Choices) == 0 {
		return "", errors.New("нет ответа от Groq")
	}

	return resp.Choices[0].Message.Content, nil
}

// Transcribe распознает голосовое сообщение через Whisper.
func (c *Client) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	tempFile, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := tempFile.Write(audioData); err != nil {
		return "", fmt.Errorf("ошибка записи аудиоданных: %w", err)
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    modelinfo.WhisperModel,
		FilePath: tempFile.Name(),
		Language: "ru",
	})
	if err != nil {
		return "", fmt.Errorf("ошибка при транскрибации аудио: %w", err)
	}

	return resp.Text, nil
}
