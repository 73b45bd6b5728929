package telegram

import (
	"context"
	"fmt"

	"groqbot/internal/chat"
	"groqbot/internal/chatstore"
	"groqbot/internal/groq"
	"groqbot/internal/modelinfo"
	"groqbot/pkg/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	bot          *tgbotapi.BotAPI
	storeService *chatstore.Service
	chatService  *chat.Service
	groqClient   *groq.Client
	cfg          *config.Config
}

func NewHandler(
	cfg *config.Config,
	storeService *chatstore.Service,
	chatService *chat.Service,
	groqClient *groq.Client,
) (*Handler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации Telegram бота: %v", err)
	}

	logrus.Infof("Telegram бот запущен: %s", bot.Self.UserName)

	return &Handler{
		bot:          bot,
		storeService: storeService,
		chatService:  chatService,
		groqClient:   groqClient,
		cfg:          cfg,
	}, nil
}

func (h *Handler) GetBotInfo() *tgbotapi.User {
	return &h.bot.Self
}

// StartPolling читает обновления через long polling. Каждое обновление
// обрабатывается в отдельной горутине.
func (h *Handler) StartPolling() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	logrus.Info("Бот готов к работе, начинаю прослушивание...")

	for update := range updates {
		go h.handleUpdate(update)
	}
}

func (h *Handler) StopPolling() {
	h.bot.StopReceivingUpdates()
}

func (h *Handler) handleUpdate(update tgbotapi.Update) {
	ctx := context.Background()

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update)
		return
	}

	if !update.Message.Chat.IsGroup() && !update.Message.Chat.IsSuperGroup() {
		return
	}

	h.handleChatMessage(ctx, update)
}

// handleChatMessage обрабатывает обычное сообщение группового чата: решает,
// должен ли бот отвечать, и выполняет обмен с моделью.
func (h *Handler) handleChatMessage(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID
	displayName := senderName(message)

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	if !settings.Active {
		logrus.Infof("Бот неактивен в чате %d, игнорирую сообщение", chatID)
		return
	}

	var userText string
	if message.Voice != nil {
		text, ok := h.processVoiceMessage(ctx, message)
		if !ok {
			return
		}
		userText = text
	} else {
		mentioned, cleaned := detectMention(message, h.bot.Self.UserName, h.bot.Self.ID)
		if !mentioned {
			logrus.Debugf("Бот не упомянут в сообщении чата %d, игнорирую", chatID)
			return
		}
		if cleaned == "" {
			h.sendPlain(chatID, message.MessageID, "Здравствуйте! Чем я могу вам помочь?")
			return
		}
		userText = cleaned
	}

	logrus.Infof("Обрабатываю сообщение от @%s в чате %d: %s", displayName, chatID, userText)

	h.sendTyping(chatID)

	reply, err := h.chatService.Respond(ctx, settings, chatID, displayName, userText)
	if err != nil {
		h.handleCompletionError(chatID, message.MessageID, settings.Model, err)
		return
	}

	h.sendLongMessage(chatID, message.MessageID, reply, "Markdown")
}

// handleCompletionError переводит ошибку API в понятное пользователю
// уведомление. Повторных попыток нет, каждая ошибка сообщается один раз.
func (h *Handler) handleCompletionError(chatID int64, replyTo int, model string, err error) {
	logrus.Errorf("Ошибка при обработке запроса в чате %d: %v", chatID, err)

	switch groq.Classify(err) {
	case groq.ErrModelRetired:
		h.sendPlain(chatID, replyTo, fmt.Sprintf(
			"Модель %s недоступна или устарела. Переключаюсь на %s.",
			model, modelinfo.FallbackModel,
		))
	case groq.ErrRateLimited:
		notice := fmt.Sprintf(
			"⚠️ <b>Достигнут лимит запросов для модели</b> <b>%s</b>\n\n"+
				"Рекомендации:\n"+
				"1. Попробуйте использовать другую модель, например:\n"+
				"• /set_model %s (модель без дневного лимита токенов)\n"+
				"• /set_model llama3-8b-8192 (более легкая модель)\n\n"+
				"2. Подождите некоторое время - лимиты обновляются ежедневно\n\n"+
				"Используйте команду /models для просмотра всех доступных моделей и их лимитов.",
			model, modelinfo.DefaultModel,
		)
		h.sendFormatted(chatID, replyTo, notice, tgbotapi.ModeHTML)
	default:
		h.sendPlain(chatID, replyTo,
			"Произошла ошибка, попробуйте позже или используйте другую модель (/models для просмотра доступных моделей).")
	}
}

// isAdmin проверяет права администратора через список администраторов чата.
// Любая ошибка проверки трактуется как отсутствие прав.
func (h *Handler) isAdmin(chatID int64, userID int64) bool {
	admins, err := h.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		logrus.Errorf("Ошибка при проверке прав администратора в чате %d: %v", chatID, err)
		return false
	}

	for _, admin := range admins {
		if admin.User.ID == userID {
			return true
		}
	}

	return false
}

func (h *Handler) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.bot.Request(action); err != nil {
		logrus.Errorf("Ошибка при отправке индикатора набора текста: %v", err)
	}
}

func senderName(message *tgbotapi.Message) string {
	if message.From == nil {
		return "Unknown"
	}
	if message.From.UserName != "" {
		return message.From.UserName
	}
	if message.From.FirstName != "" {
		return message.From.FirstName
	}
	return "Unknown"
}
