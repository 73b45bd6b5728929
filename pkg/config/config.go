package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	GroqAPIKey    string
	TelegramToken string
	DBFile        string
	LogLevel      string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Не найден файл .env")
	}

	cfg := &Config{
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
		DBFile:        getEnv("DB_FILE", "bot_data.db"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GroqAPIKey == "" || cfg.TelegramToken == "" {
		logrus.Fatal("Необходимо указать GROQ_API_KEY и TELEGRAM_TOKEN в файле .env")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
