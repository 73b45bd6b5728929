package chatstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groqbot/internal/chatstore/models"
	"groqbot/internal/modelinfo"

	"github.com/jmoiron/sqlx"
)

const DefaultSystemPrompt = `Ты - полезный и дружелюбный ассистент в групповом чате Telegram.
Твоя задача - помогать участникам чата, отвечать на их вопросы и поддерживать беседу.
Старайся давать краткие, но информативные ответы.
Помни, что тебя упоминают по имени, поэтому в ответах не надо обращаться к конкретному пользователю.
Отвечай на русском языке, если не просят иное.
Не используй эмодзи слишком часто.
`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetChatSettings возвращает настройки чата. Для нового чата настройки по
// умолчанию сохраняются в базу и возвращаются.
func (r *Repository) GetChatSettings(ctx context.Context, chatID int64) (*models.ChatSettings, error) {
	query := `
		SELECT chat_id, model, temperature, max_tokens, active, system_prompt, updated_at
		FROM chat_settings
		WHERE chat_id = ?
	`

	var settings models.ChatSettings
	err := r.db.GetContext(ctx, &settings, query, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := &models.ChatSettings{
				ChatID:       chatID,
				Model:        modelinfo.DefaultModel,
				Temperature:  0.7,
				MaxTokens:    3000,
				Active:       true,
				SystemPrompt: DefaultSystemPrompt,
			}
			if err := r.SaveChatSettings(ctx, chatID, defaults); err != nil {
				return nil, err
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("не удалось получить настройки чата %d: %w", chatID, err)
	}

	return &settings, nil
}

func (r *Repository) SaveChatSettings(ctx context.Context, chatID int64, settings *models.ChatSettings) error {
	query := `
		INSERT OR REPLACE INTO chat_settings
		(chat_id, model, temperature, max_tokens, active, system_prompt, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		chatID,
		settings.Model,
		settings.Temperature,
		settings.MaxTokens,
		settings.Active,
		settings.SystemPrompt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить настройки чата %d: %w", chatID, err)
	}

	return nil
}

func (r *Repository) GetMessageHistory(ctx context.Context, chatID int64, limit int) ([]models.HistoryItem, error) {
	query := `
		SELECT role, content
		FROM message_history
		WHERE chat_id = ?
		ORDER BY created_at ASC
		LIMIT ?
	`

	history := []models.HistoryItem{}
	err := r.db.SelectContext(ctx, &history, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить историю сообщений чата %d: %w", chatID, err)
	}

	return history, nil
}

func (r *Repository) AddMessage(ctx context.Context, chatID int64, role, content string) error {
	query := `
		INSERT INTO message_history (chat_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, chatID, role, content, time.Now())
	if err != nil {
		return fmt.Errorf("не удалось добавить сообщение в историю чата %d: %w", chatID, err)
	}

	return nil
}

func (r *Repository) ClearHistory(ctx context.Context, chatID int64) error {
	query := `DELETE FROM message_history WHERE chat_id = ?`

	_, err := r.db.ExecContext(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("не удалось очистить историю чата %d: %w", chatID, err)
	}

	return nil
}

// PruneOlderThan удаляет сообщения всех чатов старше указанного количества
// дней. Граница исключающая: сообщения ровно на границе сохраняются.
func (r *Repository) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	return r.pruneBefore(ctx, time.Now().AddDate(0, 0, -days))
}

func (r *Repository) pruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM message_history WHERE created_at < ?`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить старые сообщения: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *Repository) CountMessages(ctx context.Context, chatID int64) (int, error) {
	query := `SELECT COUNT(*) FROM message_history WHERE chat_id = ?`

	var count int
	err := r.db.GetContext(ctx, &count, query, chatID)
	if err != nil {
		return 0, fmt.Errorf("не удалось посчитать сообщения чата %d: %w", chatID, err)
	}

	return count, nil
}

func (r *Repository) StatusSnapshot(ctx context.Context) (*models.StatusSnapshot, error) {
	var snapshot models.StatusSnapshot

	err := r.db.GetContext(ctx, &snapshot.TotalChats, `SELECT COUNT(DISTINCT chat_id) FROM chat_settings`)
	if err != nil {
		return nil, fmt.Errorf("не удалось посчитать чаты: %w", err)
	}

	err = r.db.GetContext(ctx, &snapshot.TotalMessages, `SELECT COUNT(*) FROM message_history`)
	if err != nil {
		return nil, fmt.Errorf("не удалось посчитать сообщения: %w", err)
	}

	err = r.db.SelectContext(ctx, &snapshot.ChatModels, `SELECT chat_id, model FROM chat_settings`)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить модели чатов: %w", err)
	}

	return &snapshot, nil
}
