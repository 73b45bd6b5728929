package db

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_settings (
    chat_id       INTEGER PRIMARY KEY,
    model         TEXT,
    temperature   REAL,
    max_tokens    INTEGER,
    active        INTEGER,
    system_prompt TEXT,
    updated_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS message_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id    INTEGER,
    role       TEXT,
    content    TEXT,
    created_at TIMESTAMP,
    FOREIGN KEY (chat_id) REFERENCES chat_settings (chat_id)
);
`

// NewSQLiteDB открывает файл базы данных и создает таблицы, если их еще нет.
func NewSQLiteDB(dbFile string) (*sqlx.DB, error) {
	database, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, err
	}

	if err := database.Ping(); err != nil {
		return nil, err
	}

	if _, err := database.Exec(schema); err != nil {
		return nil, err
	}

	logrus.Infof("База данных SQLite открыта: %s", dbFile)
	return database, nil
}
