package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/domain/repository"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

// ProgressRepo реализует repository.ProgressRepository
type ProgressRepo struct {
	db *gorm.DB
}

// NewProgressRepo создает новый репозиторий прогресса
func NewProgressRepo(db *gorm.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// orderedMistakes подгружает ошибки в порядке их появления
func orderedMistakes(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// GetResolvedProgress возвращает прогресс пользователя со всеми challenges и ошибками
func (r *ProgressRepo) GetResolvedProgress(ctx context.Context, userID uuid.UUID) (*entity.ResolvedProgress, error) {
	db := r.db.WithContext(ctx)

	var progress entity.UserProgress
	if err := db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	var challenges []entity.Challenge
	err := db.Preload("Mistakes", orderedMistakes).
		Where("user_id = ?", userID).
		Order("module ASC, id ASC").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}

	return &entity.ResolvedProgress{
		UserID:       progress.UserID,
		LastActivity: progress.LastActivity,
		Challenges:   challenges,
	}, nil
}

// SaveAnswer записывает ответ в одной транзакции:
// обновляет активность пользователя, создаёт или блокирует строку challenge,
// применяет ответ и при ошибке добавляет запись в mistakes.
func (r *ProgressRepo) SaveAnswer(ctx context.Context, rec repository.AnswerRecord) (*entity.Challenge, error) {
	var saved entity.Challenge

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Upsert (INSERT ... ON CONFLICT DO UPDATE) строки прогресса пользователя
		err := tx.Exec(`
			INSERT INTO user_progress (user_id, last_activity, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id)
			DO UPDATE SET last_activity = EXCLUDED.last_activity, updated_at = EXCLUDED.updated_at
		`, rec.UserID, rec.At, rec.At, rec.At).Error
		if err != nil {
			return fmt.Errorf("upsert user_progress: %w", err)
		}

		// Первый ответ создаёт challenge с нулевыми счётчиками; параллельная вставка не падает
		err = tx.Exec(`
			INSERT INTO challenges (user_id, module, letter, attempts, flawless, last_activity, created_at)
			VALUES (?, ?, ?, 0, 0, ?, ?)
			ON CONFLICT (user_id, module, letter) DO NOTHING
		`, rec.UserID, string(rec.Module), rec.Letter, rec.At, rec.At).Error
		if err != nil {
			return fmt.Errorf("insert challenge: %w", err)
		}

		var challenge entity.Challenge
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND module = ? AND letter = ?", rec.UserID, string(rec.Module), rec.Letter).
			First(&challenge).Error
		if err != nil {
			return fmt.Errorf("lock challenge: %w", err)
		}

		challenge.ApplyAnswer(rec.Correct, rec.At)

		err = tx.Model(&challenge).Updates(map[string]interface{}{
			"attempts":      challenge.Attempts,
			"flawless":      challenge.Flawless,
			"last_activity": challenge.LastActivity,
		}).Error
		if err != nil {
			return fmt.Errorf("update challenge: %w", err)
		}

		if !rec.Correct {
			mistake := entity.Mistake{
				ChallengeID: challenge.ID,
				Answer:      rec.Answer,
				CreatedAt:   rec.At,
			}
			if err := tx.Create(&mistake).Error; err != nil {
				return fmt.Errorf("insert mistake: %w", err)
			}
		}

		if err := tx.Scopes(orderedMistakes).Where("challenge_id = ?", challenge.ID).Find(&challenge.Mistakes).Error; err != nil {
			return fmt.Errorf("load mistakes: %w", err)
		}

		saved = challenge
		return nil
	})
	if err != nil {
		log.Printf("[ProgressRepo] Ошибка записи ответа user=%s module=%s letter=%s: %v",
			rec.UserID, rec.Module, rec.Letter, err)
		return nil, err
	}

	return &saved, nil
}
