package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/marathi-api/internal/domain/entity"
)

// AnswerRecord: один ответ пользователя для сохранения
type AnswerRecord struct {
	UserID  uuid.UUID
	Module  entity.Module
	Letter  string
	Correct bool
	// Answer: что ответил пользователь; сохраняется как ошибка при Correct == false
	Answer string
	At     time.Time
}

// ProgressRepository определяет методы для работы с прогрессом пользователя
type ProgressRepository interface {
	// GetResolvedProgress возвращает прогресс со всеми challenges и ошибками.
	// Если у пользователя нет прогресса, возвращается apperrors.ErrNotFound.
	GetResolvedProgress(ctx context.Context, userID uuid.UUID) (*entity.ResolvedProgress, error)

	// SaveAnswer атомарно обновляет challenge (создавая его при первом ответе),
	// добавляет ошибку и обновляет время активности пользователя.
	SaveAnswer(ctx context.Context, record AnswerRecord) (*entity.Challenge, error)
}
