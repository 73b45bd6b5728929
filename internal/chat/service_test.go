package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripThinkTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "одиночный блок",
			input:    "<think>reasoning</think>Final answer",
			expected: "Final answer",
		},
		{
			name:     "несколько блоков",
			input:    "<think>раз</think>Начало<think>два</think> и конец",
			expected: "Начало и конец",
		},
		{
			name:     "многострочный блок",
			input:    "<think>строка один\nстрока два</think>\nОтвет",
			expected: "Ответ",
		},
		{
			name:     "без тегов",
			input:    "Обычный ответ модели",
			expected: "Обычный ответ модели",
		},
		{
			name:     "незакрытый тег остается",
			input:    "<think>без закрытия. Ответ",
			expected: "<think>без закрытия. Ответ",
		},
		{
			name:     "пробелы по краям убираются",
			input:    "  <think>x</think>  Ответ  ",
			expected: "Ответ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripThinkTags(tt.input))
		})
	}
}
