package dto

import (
	"time"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/handler/helper"
)

// LetterResponse: буква каталога
type LetterResponse struct {
	Script     string `json:"script"`
	Latin      string `json:"latin"`
	Difficulty int    `json:"difficulty"`
	Kind       string `json:"kind"`
}

// NewLetterResponse преобразует букву каталога в DTO
func NewLetterResponse(l alphabet.Letter) LetterResponse {
	return LetterResponse{
		Script:     l.Script,
		Latin:      l.Latin,
		Difficulty: l.Difficulty,
		Kind:       l.Kind,
	}
}

// QuestionResponse: вопрос упражнения без правильного ответа
type QuestionResponse struct {
	Letter     string                `json:"letter"`
	Latin      string                `json:"latin"`
	Difficulty int                   `json:"difficulty"`
	Prompt     string                `json:"prompt"`
	Options    []helper.AnswerOption `json:"options"`
}

// NewQuestionResponse преобразует вопрос в DTO
func NewQuestionResponse(q entity.Question) QuestionResponse {
	return QuestionResponse{
		Letter:     q.Letter,
		Latin:      q.Latin,
		Difficulty: q.Difficulty,
		Prompt:     q.Prompt,
		Options:    helper.ConvertOptionsToObjects(q.Options),
	}
}

// ExerciseResponse: упражнение с вопросами
type ExerciseResponse struct {
	Module    entity.ModuleInfo  `json:"module"`
	Size      int                `json:"size"`
	Questions []QuestionResponse `json:"questions"`
}

// NewExerciseResponse собирает ответ из упражнения и вопросов
func NewExerciseResponse(exercise *entity.Exercise, questions []entity.Question) ExerciseResponse {
	info, _ := exercise.Module.Info()
	out := ExerciseResponse{
		Module:    info,
		Size:      exercise.Size,
		Questions: make([]QuestionResponse, len(questions)),
	}
	for i, q := range questions {
		out.Questions[i] = NewQuestionResponse(q)
	}
	return out
}

// SubmitAnswerRequest: ответ пользователя на вопрос
type SubmitAnswerRequest struct {
	// Letter: буква в письменности маратхи
	Letter string `json:"letter" binding:"required,max=16"`
	Answer string `json:"answer" binding:"required,max=32"`
}

// SubmitAnswerResponse: результат проверки ответа
type SubmitAnswerResponse struct {
	Correct      bool      `json:"correct"`
	Expected     string    `json:"expected"`
	Attempts     int       `json:"attempts"`
	Flawless     int       `json:"flawless"`
	LastActivity time.Time `json:"last_activity"`
}
