package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlawlessCap: верхняя граница счётчика flawless
const FlawlessCap = 10

// Challenge хранит историю ответов пользователя по одной букве в одном модуле
type Challenge struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_challenges_user_module_letter,priority:1" json:"-"`
	Module       Module    `gorm:"size:32;not null;uniqueIndex:idx_challenges_user_module_letter,priority:2" json:"module"`
	Letter       string    `gorm:"size:16;not null;uniqueIndex:idx_challenges_user_module_letter,priority:3" json:"letter"`
	Attempts     int       `gorm:"not null;default:0" json:"attempts"`
	Flawless     int       `gorm:"not null;default:0" json:"flawless"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
	Mistakes     []Mistake `gorm:"foreignKey:ChallengeID" json:"mistakes"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Challenge) TableName() string {
	return "challenges"
}

// ApplyAnswer учитывает ответ: attempts+1, flawless ±1 в пределах [0, FlawlessCap].
// Ошибочный ответ в Mistakes не добавляется: это делает репозиторий.
func (c *Challenge) ApplyAnswer(correct bool, at time.Time) {
	c.Attempts++
	if correct {
		c.Flawless = min(c.Flawless+1, FlawlessCap)
	} else {
		c.Flawless = max(c.Flawless-1, 0)
	}
	c.LastActivity = at
}

// IsSoftMastered: буква считается освоенной для планировщика
func (c *Challenge) IsSoftMastered(threshold int) bool {
	return c.Flawless >= threshold
}

// IsMastered: счётчик flawless достиг максимума
func (c *Challenge) IsMastered() bool {
	return c.Flawless >= FlawlessCap
}

// Mistake: один неверный ответ
type Mistake struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChallengeID uint      `gorm:"not null;index" json:"-"`
	Answer      string    `gorm:"size:32;not null" json:"answer"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Mistake) TableName() string {
	return "mistakes"
}

// UserProgress: общая активность пользователя
type UserProgress struct {
	UserID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	LastActivity *time.Time `gorm:"type:timestamptz" json:"last_activity,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserProgress) TableName() string {
	return "user_progress"
}

// ResolvedProgress: прогресс пользователя вместе со всеми challenges
type ResolvedProgress struct {
	UserID       uuid.UUID   `json:"user_id"`
	LastActivity *time.Time  `json:"last_activity,omitempty"`
	Challenges   []Challenge `json:"challenges"`
}

// ForModule возвращает challenges только указанного модуля
func (p *ResolvedProgress) ForModule(module Module) []Challenge {
	out := make([]Challenge, 0, len(p.Challenges))
	for _, c := range p.Challenges {
		if c.Module == module {
			out = append(out, c)
		}
	}
	return out
}
