package exercisebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

func TestGenerateAnswers(t *testing.T) {
	catalog := alphabet.Marathi()

	tests := []struct {
		name          string
		module        entity.Module
		maxDifficulty int
		correct       string
	}{
		{name: "Маратхи в латиницу", module: entity.ModuleMarathiToLatin, maxDifficulty: 1, correct: "ka"},
		{name: "Латиница в маратхи", module: entity.ModuleLatinToMarathi, maxDifficulty: 1, correct: "क"},
		{name: "Весь каталог", module: entity.ModuleMarathiToLatin, maxDifficulty: 3, correct: "jña"},
		{name: "Правильный ответ вне пула", module: entity.ModuleMarathiToLatin, maxDifficulty: 1, correct: "kṣa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewAnswerGenerator(catalog, tt.module, tt.maxDifficulty)
			require.NoError(t, err)

			for i := 0; i < 100; i++ {
				answers, err := gen.GenerateAnswers(tt.correct)
				require.NoError(t, err)
				require.Len(t, answers, AnswerOptionsCount)

				unique := make(map[string]int, len(answers))
				for _, a := range answers {
					unique[a]++
				}
				assert.Len(t, unique, AnswerOptionsCount, "Варианты не должны повторяться")
				assert.Equal(t, 1, unique[tt.correct], "Правильный ответ встречается ровно один раз")
			}
		})
	}
}

func TestGenerateAnswers_DistractorsFromModuleSide(t *testing.T) {
	catalog := alphabet.Marathi()
	gen, err := NewAnswerGenerator(catalog, entity.ModuleLatinToMarathi, 1)
	require.NoError(t, err)

	answers, err := gen.GenerateAnswers("क")
	require.NoError(t, err)
	for _, a := range answers {
		l, err := catalog.ByScript(a)
		require.NoError(t, err, "Ответ %q должен быть буквой маратхи", a)
		assert.Equal(t, 1, l.Difficulty)
	}
}

func TestGenerateAnswers_EmptyCorrect(t *testing.T) {
	gen, err := NewAnswerGenerator(alphabet.Marathi(), entity.ModuleMarathiToLatin, 1)
	require.NoError(t, err)

	_, err = gen.GenerateAnswers("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGenerateAnswers_InsufficientDistractors(t *testing.T) {
	small, err := alphabet.NewCatalog([]alphabet.Letter{
		{Script: "अ", Latin: "a", Difficulty: 1},
		{Script: "इ", Latin: "i", Difficulty: 1},
		{Script: "उ", Latin: "u", Difficulty: 1},
		{Script: "औ", Latin: "au", Difficulty: 3},
	})
	require.NoError(t, err)

	gen, err := NewAnswerGenerator(small, entity.ModuleMarathiToLatin, 1)
	require.NoError(t, err)

	_, err = gen.GenerateAnswers("a")
	assert.ErrorIs(t, err, alphabet.ErrInsufficientCatalog)

	// Правильный ответ не из пула: трёх дистракторов хватает
	answers, err := gen.GenerateAnswers("au")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "i", "u", "au"}, answers)
}

func TestNewAnswerGenerator_UnknownModule(t *testing.T) {
	_, err := NewAnswerGenerator(alphabet.Marathi(), entity.Module("latin-to-cyrillic"), 1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
