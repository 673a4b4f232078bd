package helper

// AnswerOption представляет вариант ответа для фронтенда
type AnswerOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// ConvertOptionsToObjects преобразует массив строк в массив объектов с id и text.
// ID: 0-based индекс варианта.
func ConvertOptionsToObjects(options []string) []AnswerOption {
	converted := make([]AnswerOption, len(options))
	for i, opt := range options {
		converted[i] = AnswerOption{ID: i, Text: opt}
	}
	return converted
}
