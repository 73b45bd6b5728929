package groq

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrorKind описывает причину отказа API в машиночитаемом виде.
type ErrorKind int

const (
	// ErrUnknown — любая ошибка, не попавшая в остальные категории.
	ErrUnknown ErrorKind = iota
	// ErrModelRetired — выбранная модель отключена или не поддерживается.
	ErrModelRetired
	// ErrRateLimited — достигнут лимит запросов или квота.
	ErrRateLimited
)

// Classify определяет причину ошибки API. Сначала разбирается типизированная
// ошибка openai.APIError, подстрочный поиск остается запасным вариантом для
// нетипизированных ошибок.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrUnknown
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusBadRequest, http.StatusNotFound:
			if messageMentionsRetiredModel(apiErr.Message) {
				return ErrModelRetired
			}
		}
		if apiErr.Code == "model_decommissioned" || apiErr.Code == "model_not_found" {
			return ErrModelRetired
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "model") && strings.Contains(msg, "decommissioned") {
		return ErrModelRetired
	}
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") {
		return ErrRateLimited
	}

	return ErrUnknown
}

func messageMentionsRetiredModel(message string) bool {
	msg := strings.ToLower(message)
	return strings.Contains(msg, "model") &&
		(strings.Contains(msg, "decommissioned") || strings.Contains(msg, "not supported") ||
			strings.Contains(msg, "does not exist"))
}
