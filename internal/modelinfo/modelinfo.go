package modelinfo

// DefaultModel используется для новых чатов, FallbackModel — при отключении текущей модели.
const (
	DefaultModel  = "deepseek-r1-distill-llama-70b"
	FallbackModel = "llama3-70b-8192"

	WhisperModel = "whisper-large-v3"

	// Максимальная длительность голосового сообщения в секундах.
	MaxVoiceDuration = 300
)

type ModelInfo struct {
	Name        string
	Description string
	UseCase     string
	Limits      string
	Features    string
}

var models = []ModelInfo{
	{
		Name:        "llama3-70b-8192",
		Description: "Большая модель Llama 3 с контекстом 8192 токена",
		UseCase:     "сложные задачи, рассуждения, программирование",
		Limits:      "6000 токенов в минуту, дневной лимит токенов",
		Features:    "высокое качество ответов, стабильная работа",
	},
	{
		Name:        "llama3-8b-8192",
		Description: "Компактная модель Llama 3 с контекстом 8192 токена",
		UseCase:     "простые вопросы, быстрые ответы",
		Limits:      "30000 токенов в минуту",
		Features:    "высокая скорость, экономия лимитов",
	},
	{
		Name:        "deepseek-r1-distill-llama-70b",
		Description: "Дистиллированная модель DeepSeek R1 на базе Llama 70B",
		UseCase:     "задачи с рассуждениями, математика, анализ",
		Limits:      "без дневного лимита токенов",
		Features:    "показывает ход рассуждений (теги <think> вырезаются перед отправкой)",
	},
	{
		Name:        "mistral-saba-24b",
		Description: "Средняя модель Mistral Saba 24B",
		UseCase:     "универсальные задачи, многоязычные запросы",
		Limits:      "6000 токенов в минуту",
		Features:    "баланс скорости и качества",
	},
	{
		Name:        "gemma-7b-it",
		Description: "Компактная инструктивная модель Gemma 7B",
		UseCase:     "простые запросы, короткие ответы",
		Limits:      "15000 токенов в минуту",
		Features:    "очень быстрая, подходит для частых обращений",
	},
}

var WhisperInfo = ModelInfo{
	Name:        WhisperModel,
	Description: "Модель распознавания речи Whisper Large v3",
	Limits:      "голосовые сообщения до 5 минут",
	Features:    "распознавание русской речи, автоматическая пунктуация",
}

// IsAvailable проверяет, входит ли модель в поддерживаемый набор.
func IsAvailable(name string) bool {
	for _, m := range models {
		if m.Name == name {
			return true
		}
	}
	return false
}

func Get(name string) (ModelInfo, bool) {
	for _, m := range models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelInfo{}, false
}

func All() []ModelInfo {
	out := make([]ModelInfo, len(models))
	copy(out, models)
	return out
}

func Names() []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}
