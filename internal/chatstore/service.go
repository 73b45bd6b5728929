package chatstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"groqbot/internal/chatstore/models"

	"github.com/sirupsen/logrus"
)

// MaxHistory ограничивает количество сообщений истории в запросе к модели.
const MaxHistory = 50

// RetentionDays задает возраст сообщений, после которого они удаляются.
const RetentionDays = 30

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetChatSettings(ctx context.Context, chatID int64) (*models.ChatSettings, error) {
	logrus.Debugf("Получение настроек чата %d", chatID)
	return s.repo.GetChatSettings(ctx, chatID)
}

func (s *Service) SaveChatSettings(ctx context.Context, chatID int64, settings *models.ChatSettings) error {
	logrus.Debugf("Сохранение настроек чата %d", chatID)
	return s.repo.SaveChatSettings(ctx, chatID, settings)
}

func (s *Service) GetMessageHistory(ctx context.Context, chatID int64, limit int) ([]models.HistoryItem, error) {
	logrus.Debugf("Получение истории сообщений чата %d", chatID)
	return s.repo.GetMessageHistory(ctx, chatID, limit)
}

func (s *Service) AddMessage(ctx context.Context, chatID int64, role, content string) error {
	logrus.Debugf("Добавление сообщения с ролью %s в историю чата %d", role, chatID)
	return s.repo.AddMessage(ctx, chatID, role, content)
}

func (s *Service) ClearHistory(ctx context.Context, chatID int64) error {
	logrus.Debugf("Очистка истории чата %d", chatID)
	return s.repo.ClearHistory(ctx, chatID)
}

func (s *Service) CountMessages(ctx context.Context, chatID int64) (int, error) {
	return s.repo.CountMessages(ctx, chatID)
}

// StartRetentionSweeper запускает ежедневную очистку старых сообщений.
func (s *Service) StartRetentionSweeper() {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			deleted, err := s.repo.PruneOlderThan(context.Background(), RetentionDays)
			if err != nil {
				logrus.Errorf("Ошибка при очистке старых сообщений: %v", err)
				continue
			}
			logrus.Infof("Очищено %d старых сообщений из базы данных", deleted)
		}
	}()
}

// StartStatusLogger запускает ежечасное логирование состояния бота.
func (s *Service) StartStatusLogger() {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			s.logStatus(context.Background())
		}
	}()
}

func (s *Service) logStatus(ctx context.Context) {
	snapshot, err := s.repo.StatusSnapshot(ctx)
	if err != nil {
		logrus.Errorf("Ошибка при получении статуса бота: %v", err)
		return
	}

	chatModels := make([]string, 0, len(snapshot.ChatModels))
	for _, cm := range snapshot.ChatModels {
		chatModels = append(chatModels, fmt.Sprintf("Чат %d: %s", cm.ChatID, cm.Model))
	}

	logrus.WithFields(logrus.Fields{
		"total_chats":    snapshot.TotalChats,
		"total_messages": snapshot.TotalMessages,
	}).Infof("Статус бота: настройки чатов: %s", strings.Join(chatModels, ", "))
}
