package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/domain/repository"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
	"github.com/yourusername/marathi-api/internal/service/exercisebuilder"
)

// DefaultStoreTimeout: таймаут чтения прогресса, если не задан в конфигурации
const DefaultStoreTimeout = 3 * time.Second

// ExerciseService собирает упражнения для пользователя
type ExerciseService struct {
	progressRepo repository.ProgressRepository
	catalog      *alphabet.Catalog
	selector     *exercisebuilder.LetterSelector
	answers      map[entity.Module]*exercisebuilder.AnswerGenerator
	storeTimeout time.Duration
}

// NewExerciseService создает сервис упражнений.
// distractorMaxDifficulty: потолок сложности для неверных вариантов ответа.
func NewExerciseService(
	progressRepo repository.ProgressRepository,
	catalog *alphabet.Catalog,
	selector *exercisebuilder.LetterSelector,
	storeTimeout time.Duration,
	distractorMaxDifficulty int,
) (*ExerciseService, error) {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}

	answers := make(map[entity.Module]*exercisebuilder.AnswerGenerator)
	for _, info := range entity.Modules() {
		gen, err := exercisebuilder.NewAnswerGenerator(catalog, info.ID, distractorMaxDifficulty)
		if err != nil {
			return nil, fmt.Errorf("answer generator for %s: %w", info.ID, err)
		}
		answers[info.ID] = gen
	}

	return &ExerciseService{
		progressRepo: progressRepo,
		catalog:      catalog,
		selector:     selector,
		answers:      answers,
		storeTimeout: storeTimeout,
	}, nil
}

// GetExercise возвращает следующее упражнение пользователя в модуле.
// Сбой хранилища возвращается как *ExerciseCreationFailedError, частичное упражнение не отдаётся.
func (s *ExerciseService) GetExercise(ctx context.Context, userID uuid.UUID, module entity.Module) (*entity.Exercise, error) {
	if !module.IsValid() {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var challenges []entity.Challenge
	progress, err := s.progressRepo.GetResolvedProgress(storeCtx, userID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		// Пользователь ещё не отвечал: холодный старт
	case err != nil:
		log.Printf("[ExerciseService] Ошибка загрузки прогресса пользователя %s: %v", userID, err)
		return nil, &ExerciseCreationFailedError{Cause: err}
	default:
		challenges = progress.ForModule(module)
	}

	letters, err := s.selector.SelectLetters(exercisebuilder.SnapshotsFrom(challenges))
	if err != nil {
		log.Printf("[ExerciseService] Ошибка выбора букв для пользователя %s, модуль %s: %v", userID, module, err)
		return nil, err
	}

	return &entity.Exercise{
		Module:  module,
		Size:    s.selector.Size(),
		Letters: letters,
	}, nil
}

// BuildQuestions строит вопросы с вариантами ответа для каждой буквы упражнения
func (s *ExerciseService) BuildQuestions(exercise *entity.Exercise) ([]entity.Question, error) {
	gen, ok := s.answers[exercise.Module]
	if !ok {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, exercise.Module)
	}

	questions := make([]entity.Question, 0, len(exercise.Letters))
	for _, letter := range exercise.Letters {
		options, err := gen.GenerateAnswers(exercise.Module.Answer(letter))
		if err != nil {
			return nil, fmt.Errorf("options for %s: %w", letter.Script, err)
		}
		questions = append(questions, entity.NewQuestion(exercise.Module, letter, options))
	}
	return questions, nil
}

// GetQuestion возвращает вопрос с новыми вариантами ответа для одной буквы
func (s *ExerciseService) GetQuestion(module entity.Module, letterScript string) (*entity.Question, error) {
	gen, ok := s.answers[module]
	if !ok {
		return nil, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	letter, err := s.catalog.ByScript(letterScript)
	if err != nil {
		return nil, err
	}

	options, err := gen.GenerateAnswers(module.Answer(letter))
	if err != nil {
		return nil, err
	}

	q := entity.NewQuestion(module, letter, options)
	return &q, nil
}

// ExpectedAnswer возвращает правильный ответ для буквы в модуле
func (s *ExerciseService) ExpectedAnswer(module entity.Module, letterScript string) (string, error) {
	if !module.IsValid() {
		return "", fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}
	letter, err := s.catalog.ByScript(letterScript)
	if err != nil {
		return "", err
	}
	return module.Answer(letter), nil
}
