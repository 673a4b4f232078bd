package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
	"github.com/yourusername/marathi-api/internal/service/exercisebuilder"
)

func newTestExerciseService(t *testing.T, repo *MockProgressRepository) *ExerciseService {
	t.Helper()
	catalog := alphabet.Marathi()
	selector, err := exercisebuilder.NewLetterSelector(catalog, nil)
	require.NoError(t, err)

	svc, err := NewExerciseService(repo, catalog, selector, time.Second, 3)
	require.NoError(t, err)
	return svc
}

// challengesFor создаёт n challenges модуля по первым буквам каталога
func challengesFor(module entity.Module, n int, flawless int, at time.Time) []entity.Challenge {
	all := alphabet.Marathi().All()
	out := make([]entity.Challenge, n)
	for i := 0; i < n; i++ {
		out[i] = entity.Challenge{
			Module:       module,
			Letter:       all[i].Script,
			Attempts:     1,
			Flawless:     flawless,
			LastActivity: at,
		}
	}
	return out
}

func hasDeadline(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return ok
}

func TestExerciseService_GetExercise_NewUser(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()

	repo.On("GetResolvedProgress", mock.MatchedBy(hasDeadline), userID).Return(nil, apperrors.ErrNotFound)

	exercise, err := svc.GetExercise(context.Background(), userID, entity.ModuleMarathiToLatin)
	require.NoError(t, err)

	assert.Equal(t, entity.ModuleMarathiToLatin, exercise.Module)
	assert.Equal(t, entity.ExerciseSize, exercise.Size)
	require.Len(t, exercise.Letters, 8)
	for _, l := range exercise.Letters {
		assert.Equal(t, 1, l.Difficulty)
	}
	repo.AssertExpectations(t)
}

func TestExerciseService_GetExercise_StoreFailure(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()
	cause := errors.New("connection refused")

	repo.On("GetResolvedProgress", mock.Anything, userID).Return(nil, cause)

	exercise, err := svc.GetExercise(context.Background(), userID, entity.ModuleLatinToMarathi)
	require.Error(t, err)
	assert.Nil(t, exercise, "Частичное упражнение не возвращается")

	assert.True(t, errors.Is(err, ErrExerciseCreationFailed))
	assert.Equal(t, cause, errors.Unwrap(err))

	var creationErr *ExerciseCreationFailedError
	require.True(t, errors.As(err, &creationErr))
	assert.Equal(t, cause, creationErr.Cause)
}

func TestExerciseService_GetExercise_Timeout(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	svc.storeTimeout = 10 * time.Millisecond
	userID := uuid.New()

	repo.On("GetResolvedProgress", mock.Anything, userID).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, context.DeadlineExceeded)

	_, err := svc.GetExercise(context.Background(), userID, entity.ModuleMarathiToLatin)
	assert.ErrorIs(t, err, ErrExerciseCreationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExerciseService_GetExercise_FiltersByModule(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()
	now := time.Now()

	// В другом модуле много истории, в запрошенном её нет: холодный старт
	progress := &entity.ResolvedProgress{
		UserID:     userID,
		Challenges: challengesFor(entity.ModuleLatinToMarathi, 40, 0, now),
	}
	repo.On("GetResolvedProgress", mock.Anything, userID).Return(progress, nil)

	for i := 0; i < 20; i++ {
		exercise, err := svc.GetExercise(context.Background(), userID, entity.ModuleMarathiToLatin)
		require.NoError(t, err)
		for _, l := range exercise.Letters {
			assert.Equal(t, 1, l.Difficulty)
		}
	}
}

func TestExerciseService_GetExercise_UsesHistory(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()
	now := time.Now()

	challenges := challengesFor(entity.ModuleMarathiToLatin, 20, 0, now)
	// Самые давние буквы: сложные, при холодном старте они бы не попали
	all := alphabet.Marathi().All()
	challenges[18].Letter = all[47].Script
	challenges[18].LastActivity = now.Add(-48 * time.Hour)
	challenges[19].Letter = all[46].Script
	challenges[19].LastActivity = now.Add(-72 * time.Hour)

	repo.On("GetResolvedProgress", mock.Anything, userID).Return(&entity.ResolvedProgress{
		UserID:     userID,
		Challenges: challenges,
	}, nil)

	exercise, err := svc.GetExercise(context.Background(), userID, entity.ModuleMarathiToLatin)
	require.NoError(t, err)

	got := make([]string, 0, len(exercise.Letters))
	for _, l := range exercise.Letters {
		got = append(got, l.Script)
	}
	assert.Contains(t, got, all[47].Script)
	assert.Contains(t, got, all[46].Script)
}

func TestExerciseService_GetExercise_UnknownLetterInHistory(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()

	challenges := challengesFor(entity.ModuleMarathiToLatin, 16, 0, time.Now())
	challenges[5].Letter = "Ω"
	repo.On("GetResolvedProgress", mock.Anything, userID).Return(&entity.ResolvedProgress{Challenges: challenges}, nil)

	_, err := svc.GetExercise(context.Background(), userID, entity.ModuleMarathiToLatin)
	assert.ErrorIs(t, err, alphabet.ErrLetterNotFound)
	assert.False(t, errors.Is(err, ErrExerciseCreationFailed))
}

func TestExerciseService_GetExercise_InvalidModule(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)

	_, err := svc.GetExercise(context.Background(), uuid.New(), entity.Module("latin-to-greek"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "GetResolvedProgress", mock.Anything, mock.Anything)
}

func TestExerciseService_BuildQuestions(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := newTestExerciseService(t, repo)
	userID := uuid.New()
	repo.On("GetResolvedProgress", mock.Anything, userID).Return(nil, apperrors.ErrNotFound)

	exercise, err := svc.GetExercise(context.Background(), userID, entity.ModuleLatinToMarathi)
	require.NoError(t, err)

	questions, err := svc.BuildQuestions(exercise)
	require.NoError(t, err)
	require.Len(t, questions, len(exercise.Letters))

	for i, q := range questions {
		assert.Equal(t, exercise.Letters[i].Script, q.Letter)
		assert.Equal(t, exercise.Letters[i].Latin, q.Prompt)
		assert.Len(t, q.Options, exercisebuilder.AnswerOptionsCount)
		assert.True(t, q.IsValidOption(q.Expected))
	}
}

func TestExerciseService_GetQuestion(t *testing.T) {
	svc := newTestExerciseService(t, new(MockProgressRepository))

	q, err := svc.GetQuestion(entity.ModuleMarathiToLatin, "ख")
	require.NoError(t, err)
	assert.Equal(t, "ख", q.Prompt)
	assert.Equal(t, "kha", q.Expected)
	assert.Contains(t, q.Options, "kha")

	_, err = svc.GetQuestion(entity.ModuleMarathiToLatin, "kha")
	assert.ErrorIs(t, err, alphabet.ErrLetterNotFound)

	_, err = svc.GetQuestion(entity.Module("nope"), "ख")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExerciseService_ExpectedAnswer(t *testing.T) {
	svc := newTestExerciseService(t, new(MockProgressRepository))

	tests := []struct {
		name    string
		module  entity.Module
		letter  string
		want    string
		wantErr error
	}{
		{name: "Маратхи в латиницу", module: entity.ModuleMarathiToLatin, letter: "क", want: "ka"},
		{name: "Латиница в маратхи", module: entity.ModuleLatinToMarathi, letter: "क", want: "क"},
		{name: "Неизвестная буква", module: entity.ModuleMarathiToLatin, letter: "z", wantErr: alphabet.ErrLetterNotFound},
		{name: "Неизвестный модуль", module: entity.Module("x"), letter: "क", wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ExpectedAnswer(tt.module, tt.letter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
