package chatstore

import (
	"context"
	"testing"
	"time"

	"groqbot/internal/chatstore/models"
	"groqbot/internal/modelinfo"
	"groqbot/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	database, err := db.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	// У :memory: каждая связь пула видит свою базу, поэтому пул
	// ограничивается одним соединением.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	return NewRepository(database)
}

func TestGetChatSettingsCreatesDefaults(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	settings, err := repo.GetChatSettings(ctx, 100)
	require.NoError(t, err)

	assert.Equal(t, modelinfo.DefaultModel, settings.Model)
	assert.Equal(t, 0.7, settings.Temperature)
	assert.Equal(t, 3000, settings.MaxTokens)
	assert.True(t, settings.Active)
	assert.Equal(t, DefaultSystemPrompt, settings.SystemPrompt)

	// Повторное чтение возвращает те же значения из базы.
	again, err := repo.GetChatSettings(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, settings.Model, again.Model)
	assert.Equal(t, settings.Temperature, again.Temperature)
	assert.Equal(t, settings.MaxTokens, again.MaxTokens)
	assert.Equal(t, settings.Active, again.Active)
	assert.Equal(t, settings.SystemPrompt, again.SystemPrompt)
}

func TestSaveChatSettingsRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	saved := &models.ChatSettings{
		ChatID:       200,
		Model:        "llama3-8b-8192",
		Temperature:  0.2,
		MaxTokens:    1500,
		Active:       false,
		SystemPrompt: "Отвечай только по делу.",
	}
	require.NoError(t, repo.SaveChatSettings(ctx, 200, saved))

	got, err := repo.GetChatSettings(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, saved.Model, got.Model)
	assert.Equal(t, saved.Temperature, got.Temperature)
	assert.Equal(t, saved.MaxTokens, got.MaxTokens)
	assert.Equal(t, saved.Active, got.Active)
	assert.Equal(t, saved.SystemPrompt, got.SystemPrompt)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSaveChatSettingsIsUpsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.GetChatSettings(ctx, 300)
	require.NoError(t, err)

	first.Temperature = 0.9
	require.NoError(t, repo.SaveChatSettings(ctx, 300, first))
	require.NoError(t, repo.SaveChatSettings(ctx, 300, first))

	var count int
	require.NoError(t, repo.db.Get(&count, `SELECT COUNT(*) FROM chat_settings WHERE chat_id = ?`, 300))
	assert.Equal(t, 1, count)

	got, err := repo.GetChatSettings(ctx, 300)
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Temperature)
}

func TestMessageHistoryOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Вставляем записи с перепутанными временными метками напрямую,
	// чтобы проверить сортировку по created_at, а не по id.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	insert := `INSERT INTO message_history (chat_id, role, content, created_at) VALUES (?, ?, ?, ?)`

	_, err := repo.db.Exec(insert, 400, models.RoleAssistant, "второе", base.Add(time.Minute))
	require.NoError(t, err)
	_, err = repo.db.Exec(insert, 400, models.RoleUser, "первое", base)
	require.NoError(t, err)
	_, err = repo.db.Exec(insert, 400, models.RoleUser, "третье", base.Add(2*time.Minute))
	require.NoError(t, err)

	history, err := repo.GetMessageHistory(ctx, 400, 50)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "первое", history[0].Content)
	assert.Equal(t, "второе", history[1].Content)
	assert.Equal(t, "третье", history[2].Content)
}

func TestMessageHistoryLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddMessage(ctx, 500, models.RoleUser, "сообщение"))
	}

	history, err := repo.GetMessageHistory(ctx, 500, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	history, err = repo.GetMessageHistory(ctx, 500, 50)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestMessageHistoryEmpty(t *testing.T) {
	repo := newTestRepository(t)

	history, err := repo.GetMessageHistory(context.Background(), 999, 50)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestClearHistory(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, 600, models.RoleUser, "вопрос"))
	require.NoError(t, repo.AddMessage(ctx, 600, models.RoleAssistant, "ответ"))
	require.NoError(t, repo.AddMessage(ctx, 601, models.RoleUser, "чужое сообщение"))

	require.NoError(t, repo.ClearHistory(ctx, 600))

	history, err := repo.GetMessageHistory(ctx, 600, 50)
	require.NoError(t, err)
	assert.Empty(t, history)

	other, err := repo.GetMessageHistory(ctx, 601, 50)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestPruneBoundaryIsExclusive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cutoff := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	insert := `INSERT INTO message_history (chat_id, role, content, created_at) VALUES (?, ?, ?, ?)`

	_, err := repo.db.Exec(insert, 700, models.RoleUser, "старое", cutoff.Add(-time.Second))
	require.NoError(t, err)
	_, err = repo.db.Exec(insert, 700, models.RoleUser, "ровно на границе", cutoff)
	require.NoError(t, err)
	_, err = repo.db.Exec(insert, 701, models.RoleUser, "новое", cutoff.Add(time.Hour))
	require.NoError(t, err)

	deleted, err := repo.pruneBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	history, err := repo.GetMessageHistory(ctx, 700, 50)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "ровно на границе", history[0].Content)
}

func TestPruneDoesNotTouchSettings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetChatSettings(ctx, 800)
	require.NoError(t, err)

	_, err = repo.PruneOlderThan(ctx, 30)
	require.NoError(t, err)

	var count int
	require.NoError(t, repo.db.Get(&count, `SELECT COUNT(*) FROM chat_settings`))
	assert.Equal(t, 1, count)
}

func TestStatusSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.GetChatSettings(ctx, 900)
	require.NoError(t, err)
	_, err = repo.GetChatSettings(ctx, 901)
	require.NoError(t, err)
	require.NoError(t, repo.AddMessage(ctx, 900, models.RoleUser, "привет"))

	snapshot, err := repo.StatusSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalChats)
	assert.Equal(t, 1, snapshot.TotalMessages)
	assert.Len(t, snapshot.ChatModels, 2)
}

func TestCountMessages(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.CountMessages(ctx, 950)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.AddMessage(ctx, 950, models.RoleUser, "раз"))
	require.NoError(t, repo.AddMessage(ctx, 950, models.RoleAssistant, "два"))

	count, err = repo.CountMessages(ctx, 950)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
