package entity

import "github.com/yourusername/marathi-api/internal/alphabet"

// Question: вопрос с выбором ответа по одной букве упражнения
type Question struct {
	// Letter: буква в письменности маратхи, идентификатор challenge
	Letter     string   `json:"letter"`
	Latin      string   `json:"latin"`
	Difficulty int      `json:"difficulty"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	// Expected: правильный ответ, клиенту не отдаётся
	Expected string `json:"-"`
}

// NewQuestion строит вопрос по букве и готовым вариантам ответа
func NewQuestion(module Module, letter alphabet.Letter, options []string) Question {
	return Question{
		Letter:     letter.Script,
		Latin:      letter.Latin,
		Difficulty: letter.Difficulty,
		Prompt:     module.Prompt(letter),
		Options:    options,
		Expected:   module.Answer(letter),
	}
}

// IsCorrect проверяет ответ пользователя
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.Expected
}

// IsValidOption проверяет, что ответ есть среди вариантов
func (q *Question) IsValidOption(answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}
