package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/marathi-api/internal/domain/entity"
)

// ChallengeResponse: история по одной букве
type ChallengeResponse struct {
	Module       entity.Module     `json:"module"`
	Letter       string            `json:"letter"`
	Attempts     int               `json:"attempts"`
	Flawless     int               `json:"flawless"`
	LastActivity time.Time         `json:"last_activity"`
	Mistakes     []MistakeResponse `json:"mistakes"`
}

// MistakeResponse: один неверный ответ
type MistakeResponse struct {
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgressResponse: полный прогресс пользователя
type ProgressResponse struct {
	UserID       uuid.UUID           `json:"user_id"`
	LastActivity *time.Time          `json:"last_activity,omitempty"`
	Challenges   []ChallengeResponse `json:"challenges"`
}

// NewProgressResponse преобразует прогресс в DTO
func NewProgressResponse(p *entity.ResolvedProgress) ProgressResponse {
	out := ProgressResponse{
		UserID:       p.UserID,
		LastActivity: p.LastActivity,
		Challenges:   make([]ChallengeResponse, len(p.Challenges)),
	}
	for i, c := range p.Challenges {
		mistakes := make([]MistakeResponse, len(c.Mistakes))
		for j, m := range c.Mistakes {
			mistakes[j] = MistakeResponse{Answer: m.Answer, CreatedAt: m.CreatedAt}
		}
		out.Challenges[i] = ChallengeResponse{
			Module:       c.Module,
			Letter:       c.Letter,
			Attempts:     c.Attempts,
			Flawless:     c.Flawless,
			LastActivity: c.LastActivity,
			Mistakes:     mistakes,
		}
	}
	return out
}
