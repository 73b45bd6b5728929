package models

import (
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatSettings struct {
	ChatID       int64     `db:"chat_id" json:"chat_id"`
	Model        string    `db:"model" json:"model"`
	Temperature  float64   `db:"temperature" json:"temperature"`
	MaxTokens    int       `db:"max_tokens" json:"max_tokens"`
	Active       bool      `db:"active" json:"active"`
	SystemPrompt string    `db:"system_prompt" json:"system_prompt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type HistoryEntry struct {
	ID        int64     `db:"id" json:"id"`
	ChatID    int64     `db:"chat_id" json:"chat_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type HistoryItem struct {
	Role    string `db:"role" json:"role"`
	Content string `db:"content" json:"content"`
}

type ChatModel struct {
	ChatID int64  `db:"chat_id" json:"chat_id"`
	Model  string `db:"model" json:"model"`
}

type StatusSnapshot struct {
	TotalChats    int         `json:"total_chats"`
	TotalMessages int         `json:"total_messages"`
	ChatModels    []ChatModel `json:"chat_models"`
}
