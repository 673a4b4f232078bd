package exercisebuilder

import (
	"fmt"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

// AnswerOptionsCount: количество вариантов ответа в вопросе
const AnswerOptionsCount = 4

// AnswerGenerator генерирует варианты ответа для вопроса с выбором
type AnswerGenerator struct {
	catalog       *alphabet.Catalog
	module        entity.Module
	maxDifficulty int
	intn          IntN
}

// NewAnswerGenerator создает генератор ответов для модуля.
// maxDifficulty: потолок сложности букв-дистракторов.
func NewAnswerGenerator(catalog *alphabet.Catalog, module entity.Module, maxDifficulty int) (*AnswerGenerator, error) {
	if !module.IsValid() {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}
	return &AnswerGenerator{
		catalog:       catalog,
		module:        module,
		maxDifficulty: maxDifficulty,
		intn:          defaultIntN,
	}, nil
}

// GenerateAnswers возвращает AnswerOptionsCount уникальных вариантов в случайном порядке,
// среди которых ровно один раз встречается correct.
func (g *AnswerGenerator) GenerateAnswers(correct string) ([]string, error) {
	if correct == "" {
		return nil, fmt.Errorf("%w: correct answer is empty", apperrors.ErrValidation)
	}

	pool := g.catalog.UpToDifficulty(g.maxDifficulty)

	distinct := make(map[string]struct{}, len(pool))
	for _, l := range pool {
		if v := g.module.Answer(l); v != correct {
			distinct[v] = struct{}{}
		}
	}
	if len(distinct) < AnswerOptionsCount-1 {
		return nil, fmt.Errorf("%w: %d distractors available at difficulty <= %d, need %d",
			alphabet.ErrInsufficientCatalog, len(distinct), g.maxDifficulty, AnswerOptionsCount-1)
	}

	// Выбор без возвращения: каждый кандидат рассматривается один раз
	shuffle(pool, g.intn)

	answers := make([]string, 0, AnswerOptionsCount)
	answers = append(answers, correct)
	used := map[string]struct{}{correct: {}}

	for _, l := range pool {
		if len(answers) == AnswerOptionsCount {
			break
		}
		v := g.module.Answer(l)
		if _, ok := used[v]; ok {
			continue
		}
		used[v] = struct{}{}
		answers = append(answers, v)
	}

	shuffle(answers, g.intn)
	return answers, nil
}
