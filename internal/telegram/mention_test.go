package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

const testBotID int64 = 42

func textMessage(text string, entities ...tgbotapi.MessageEntity) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Entities: entities,
	}
}

func TestDetectMentionByEntity(t *testing.T) {
	msg := textMessage("hello @BotName how are you", tgbotapi.MessageEntity{
		Type:   "mention",
		Offset: 6,
		Length: 8,
	})

	mentioned, text := detectMention(msg, "BotName", testBotID)
	assert.True(t, mentioned)
	assert.Equal(t, "hello  how are you", text)
}

func TestDetectMentionEntityCaseInsensitive(t *testing.T) {
	msg := textMessage("@botname привет", tgbotapi.MessageEntity{
		Type:   "mention",
		Offset: 0,
		Length: 8,
	})

	mentioned, text := detectMention(msg, "BotName", testBotID)
	assert.True(t, mentioned)
	assert.Equal(t, "привет", text)
}

func TestDetectMentionPlainTextFallback(t *testing.T) {
	msg := textMessage("расскажи @BotName про Go")

	mentioned, text := detectMention(msg, "BotName", testBotID)
	assert.True(t, mentioned)
	assert.Equal(t, "расскажи  про Go", text)
}

func TestDetectMentionPartialUsernameIsNotMention(t *testing.T) {
	msg := textMessage("пишу @BotNam без полного имени", tgbotapi.MessageEntity{
		Type:   "mention",
		Offset: 5,
		Length: 7,
	})

	mentioned, _ := detectMention(msg, "BotName", testBotID)
	assert.False(t, mentioned)
}

func TestDetectMentionReplyToBot(t *testing.T) {
	msg := textMessage("продолжи мысль")
	msg.ReplyToMessage = &tgbotapi.Message{
		From: &tgbotapi.User{ID: testBotID},
	}

	mentioned, text := detectMention(msg, "BotName", testBotID)
	assert.True(t, mentioned)
	assert.Equal(t, "продолжи мысль", text)
}

func TestDetectMentionReplyToSomeoneElse(t *testing.T) {
	msg := textMessage("обычное сообщение")
	msg.ReplyToMessage = &tgbotapi.Message{
		From: &tgbotapi.User{ID: testBotID + 1},
	}

	mentioned, _ := detectMention(msg, "BotName", testBotID)
	assert.False(t, mentioned)
}

func TestDetectMentionNoMention(t *testing.T) {
	msg := textMessage("просто болтаем в чате")

	mentioned, _ := detectMention(msg, "BotName", testBotID)
	assert.False(t, mentioned)
}

func TestDetectMentionOnlyMention(t *testing.T) {
	msg := textMessage("@BotName", tgbotapi.MessageEntity{
		Type:   "mention",
		Offset: 0,
		Length: 8,
	})

	mentioned, text := detectMention(msg, "BotName", testBotID)
	assert.True(t, mentioned)
	assert.Equal(t, "", text)
}
