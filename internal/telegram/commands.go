package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"groqbot/internal/chatstore"
	"groqbot/internal/modelinfo"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const adminRequiredText = "⚠️ Для использования этой команды необходимы права администратора группы."

func (h *Handler) handleCommand(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		h.commandStart(chatID, message.MessageID)
	case "help":
		h.commandHelp(chatID, message)
	case "explain":
		h.commandExplain(ctx, chatID, message)
	case "models":
		h.commandModels(chatID, message.MessageID)
	case "settings":
		h.commandSettings(ctx, chatID, message)
	case "set_model":
		h.commandSetModel(ctx, chatID, message)
	case "set_temp":
		h.commandSetTemperature(ctx, chatID, message)
	case "set_max_tokens":
		h.commandSetMaxTokens(ctx, chatID, message)
	case "toggle":
		h.commandToggle(ctx, chatID, message)
	case "clear_history":
		h.commandClearHistory(ctx, chatID, message)
	}
}

func (h *Handler) requireAdmin(message *tgbotapi.Message) bool {
	if h.isAdmin(message.Chat.ID, message.From.ID) {
		return true
	}
	h.sendPlain(message.Chat.ID, message.MessageID, adminRequiredText)
	return false
}

func (h *Handler) commandStart(chatID int64, replyTo int) {
	h.sendPlain(chatID, replyTo, fmt.Sprintf(
		"Привет! Я бот на базе Groq API. Я буду отвечать на сообщения, в которых меня упоминают через @%s.\n"+
			"Используйте /help для получения списка команд и /models для информации о доступных моделях.",
		h.bot.Self.UserName,
	))
}

func (h *Handler) commandHelp(chatID int64, message *tgbotapi.Message) {
	basicCommands := fmt.Sprintf(
		"Доступные команды:\n"+
			"/start - Запустить бота\n"+
			"/help - Показать это сообщение\n"+
			"/explain - Руководство по использованию бота\n"+
			"/models - Информация о доступных моделях\n\n"+
			"Вы можете обращаться к боту, упоминая его через @%s в сообщении",
		h.bot.Self.UserName,
	)

	if !h.isAdmin(chatID, message.From.ID) {
		h.sendPlain(chatID, message.MessageID, basicCommands)
		return
	}

	adminCommands := "\n\n<b>Команды только для администраторов:</b>\n" +
		"/settings - Показать текущие настройки\n" +
		"/set_model [модель] - Установить модель (llama3-70b-8192, llama3-8b-8192 и др.)\n" +
		"/set_temp [0.0-1.0] - Установить температуру генерации\n" +
		"/set_max_tokens [число] - Установить максимальное количество токенов ответа\n" +
		"/toggle - Включить/выключить бота в этом чате\n" +
		"/clear_history - Очистить историю чата\n"

	h.sendFormatted(chatID, message.MessageID, basicCommands+adminCommands, tgbotapi.ModeHTML)
}

func (h *Handler) commandModels(chatID int64, replyTo int) {
	var report strings.Builder
	report.WriteString("<b>Доступные модели:</b>\n\n")

	for _, info := range modelinfo.All() {
		report.WriteString(fmt.Sprintf(
			"<b>%s</b>\n"+
				"• %s\n"+
				"• <b>Когда использовать:</b> %s\n"+
				"• <b>Особенности:</b> %s\n"+
				"• <b>Лимиты:</b> %s\n\n",
			info.Name, info.Description, info.UseCase, info.Features, info.Limits,
		))
	}

	report.WriteString(fmt.Sprintf(
		"<b>Модель для голосовых сообщений: %s</b>\n"+
			"• %s\n"+
			"• <b>Лимиты:</b> %s\n"+
			"• <b>Особенности:</b> %s\n\n",
		modelinfo.WhisperInfo.Name, modelinfo.WhisperInfo.Description,
		modelinfo.WhisperInfo.Limits, modelinfo.WhisperInfo.Features,
	))

	report.WriteString("Для установки модели используйте команду /set_model [название_модели]")

	h.sendFormatted(chatID, replyTo, report.String(), tgbotapi.ModeHTML)
}

func (h *Handler) commandSettings(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	historyCount, err := h.storeService.CountMessages(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при подсчете истории чата %d: %v", chatID, err)
	}

	status := "неактивен"
	if settings.Active {
		status = "активен"
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf(
		"<b>Текущие настройки:</b>\n"+
			"• Модель: <b>%s</b>\n"+
			"• Температура: <b>%g</b>\n"+
			"• Максимальная длина ответа: <b>%d токенов</b>\n"+
			"• Бот: <b>%s</b>\n"+
			"• Количество сообщений в истории: <b>%d/%d</b>\n",
		settings.Model, settings.Temperature, settings.MaxTokens, status,
		historyCount, chatstore.MaxHistory,
	))

	if info, ok := modelinfo.Get(settings.Model); ok {
		text.WriteString(fmt.Sprintf(
			"\n<b>Информация о текущей модели:</b>\n"+
				"• %s\n"+
				"• Рекомендуется для: %s\n"+
				"• Лимиты: %s\n",
			info.Description, info.UseCase, info.Limits,
		))
	}

	h.sendFormatted(chatID, message.MessageID, text.String(), tgbotapi.ModeHTML)
}

func (h *Handler) commandSetModel(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	model := strings.TrimSpace(message.CommandArguments())
	if model == "" {
		h.sendPlain(chatID, message.MessageID,
			"Пожалуйста, укажите модель. Например: /set_model llama3-70b-8192\n"+
				"Для просмотра доступных моделей используйте /models")
		return
	}

	info, ok := modelinfo.Get(model)
	if !ok {
		h.sendPlain(chatID, message.MessageID, fmt.Sprintf(
			"Недопустимая модель. Доступные модели: %s\n"+
				"Для подробной информации используйте /models",
			strings.Join(modelinfo.Names(), ", "),
		))
		return
	}

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	settings.Model = model
	if err := h.storeService.SaveChatSettings(ctx, chatID, settings); err != nil {
		logrus.Errorf("Ошибка при сохранении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	h.sendFormatted(chatID, message.MessageID, fmt.Sprintf(
		"✅ Модель установлена: <b>%s</b>\n\n"+
			"<b>Информация о модели:</b>\n"+
			"• %s\n"+
			"• Рекомендуется для: %s\n"+
			"• Лимиты: %s\n"+
			"• Особенности: %s",
		model, info.Description, info.UseCase, info.Limits, info.Features,
	), tgbotapi.ModeHTML)
}

func (h *Handler) commandSetTemperature(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		h.sendPlain(chatID, message.MessageID, "Пожалуйста, укажите температуру (от 0.0 до 1.0)")
		return
	}

	temp, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		h.sendPlain(chatID, message.MessageID, "Пожалуйста, укажите корректное число")
		return
	}

	if temp < 0.0 || temp > 1.0 {
		h.sendPlain(chatID, message.MessageID, "Температура должна быть от 0.0 до 1.0")
		return
	}

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	settings.Temperature = temp
	if err := h.storeService.SaveChatSettings(ctx, chatID, settings); err != nil {
		logrus.Errorf("Ошибка при сохранении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	h.sendFormatted(chatID, message.MessageID, fmt.Sprintf(
		"Температура установлена: <b>%g</b>\n\n"+
			"<b>Что это значит:</b>\n"+
			"• <b>Низкая (0.1-0.3)</b>: более предсказуемые, точные ответы. Хорошо для фактических вопросов и кодирования.\n"+
			"• <b>Средняя (0.4-0.7)</b>: баланс между точностью и разнообразием. Подходит для большинства задач.\n"+
			"• <b>Высокая (0.8-1.0)</b>: более креативные, разнообразные ответы. Подходит для творческих задач.",
		temp,
	), tgbotapi.ModeHTML)
}

func (h *Handler) commandSetMaxTokens(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "" {
		h.sendPlain(chatID, message.MessageID, "Пожалуйста, укажите максимальное количество токенов (например, 2000)")
		return
	}

	maxTokens, err := strconv.Atoi(arg)
	if err != nil {
		h.sendPlain(chatID, message.MessageID, "Пожалуйста, укажите корректное целое число")
		return
	}

	if maxTokens <= 0 {
		h.sendPlain(chatID, message.MessageID, "Количество токенов должно быть положительным числом")
		return
	}

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	settings.MaxTokens = maxTokens
	if err := h.storeService.SaveChatSettings(ctx, chatID, settings); err != nil {
		logrus.Errorf("Ошибка при сохранении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	h.sendFormatted(chatID, message.MessageID, fmt.Sprintf(
		"Максимальное количество токенов установлено: <b>%d</b>\n\n"+
			"Это влияет на максимальную длину ответа бота. Чем больше значение, тем длиннее ответы может давать бот.",
		maxTokens,
	), tgbotapi.ModeHTML)
}

func (h *Handler) commandToggle(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	settings.Active = !settings.Active
	if err := h.storeService.SaveChatSettings(ctx, chatID, settings); err != nil {
		logrus.Errorf("Ошибка при сохранении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	status := "неактивен"
	if settings.Active {
		status = "активен"
	}
	h.sendPlain(chatID, message.MessageID, fmt.Sprintf("Бот теперь %s в этом чате", status))
}

func (h *Handler) commandClearHistory(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	if err := h.storeService.ClearHistory(ctx, chatID); err != nil {
		logrus.Errorf("Ошибка при очистке истории чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	h.sendPlain(chatID, message.MessageID, "История чата очищена")
}

func (h *Handler) commandExplain(ctx context.Context, chatID int64, message *tgbotapi.Message) {
	settings, err := h.storeService.GetChatSettings(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при получении настроек чата %d: %v", chatID, err)
		h.sendPlain(chatID, message.MessageID, "Произошла ошибка, попробуйте позже.")
		return
	}

	historyCount, err := h.storeService.CountMessages(ctx, chatID)
	if err != nil {
		logrus.Errorf("Ошибка при подсчете истории чата %d: %v", chatID, err)
	}

	botName := h.bot.Self.UserName

	var text strings.Builder
	text.WriteString(fmt.Sprintf(
		"📋 <b>Руководство по использованию бота</b>\n\n"+
			"<b>Как взаимодействовать с ботом:</b>\n"+
			"• Упомянуть бота: @%s [ваш вопрос]\n"+
			"• Отправить голосовое сообщение, упомянув бота в подписи или ответив на его сообщение\n\n"+
			"<b>Примеры использования:</b>\n"+
			"• @%s расскажи о квантовой физике\n"+
			"• @%s реши задачу: 2x + 5 = 15\n"+
			"• @%s напиши пример кода на Python для парсинга JSON\n\n"+
			"<b>Типы моделей:</b>\n"+
			"• Большие модели (llama3-70b-8192) - для сложных задач\n"+
			"• Средние модели (mistral-saba-24b) - универсальные\n"+
			"• Компактные модели (llama3-8b-8192, gemma-7b-it) - для простых запросов\n\n"+
			"Используйте команду /models для подробной информации о каждой модели",
		botName, botName, botName, botName,
	))

	if h.isAdmin(chatID, message.From.ID) {
		status := "Неактивен"
		if settings.Active {
			status = "Активен"
		}

		text.WriteString(fmt.Sprintf(
			"\n\n<b>Настройка бота (только для администраторов):</b>\n"+
				"<b>Модель ИИ</b>\n"+
				"Команда: /set_model [модель]\n"+
				"Текущая модель: <b>%s</b>\n\n"+
				"<b>Температура</b>\n"+
				"Команда: /set_temp [значение от 0.0 до 1.0]\n"+
				"Текущая температура: <b>%g</b>\n\n"+
				"<b>Максимальное количество токенов</b>\n"+
				"Команда: /set_max_tokens [число]\n"+
				"Рекомендуемые значения: 1000-4000\n"+
				"Текущее значение: <b>%d</b>\n\n"+
				"<b>История сообщений</b>\n"+
				"Команда для очистки: /clear_history\n"+
				"Текущее количество сообщений в истории: <b>%d/%d</b>\n\n"+
				"<b>Активация/деактивация</b>\n"+
				"Команда: /toggle\n"+
				"Текущий статус: <b>%s</b>",
			settings.Model, settings.Temperature, settings.MaxTokens,
			historyCount, chatstore.MaxHistory, status,
		))
	}

	h.sendFormatted(chatID, message.MessageID, text.String(), tgbotapi.ModeHTML)
}
