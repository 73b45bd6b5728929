package main

import (
	"os"
	"os/signal"
	"syscall"

	"groqbot/internal/chat"
	"groqbot/internal/chatstore"
	"groqbot/internal/groq"
	"groqbot/internal/telegram"
	"groqbot/pkg/config"
	"groqbot/pkg/db"

	"github.com/sirupsen/logrus"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg := config.LoadConfig()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	database, err := db.NewSQLiteDB(cfg.DBFile)
	if err != nil {
		logrus.Fatalf("Ошибка при открытии базы данных: %v", err)
	}
	defer database.Close()

	groqClient := groq.NewClient(cfg.GroqAPIKey)

	storeRepo := chatstore.NewRepository(database)
	storeService := chatstore.NewService(storeRepo)

	chatService := chat.NewService(storeService, groqClient)

	telegramHandler, err := telegram.NewHandler(cfg, storeService, chatService, groqClient)
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации Telegram бота: %v", err)
	}

	storeService.StartStatusLogger()
	storeService.StartRetentionSweeper()

	go telegramHandler.StartPolling()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Завершение работы бота...")
	telegramHandler.StopPolling()
	logrus.Info("Бот остановлен")
}
