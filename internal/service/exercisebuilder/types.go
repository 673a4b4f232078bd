package exercisebuilder

import (
	"math/rand"
	"time"

	"github.com/yourusername/marathi-api/internal/domain/entity"
)

// ChallengeSnapshot: проекция challenge, которой достаточно планировщику
type ChallengeSnapshot struct {
	Letter       string
	Flawless     int
	LastActivity time.Time
}

// SnapshotsFrom строит проекции из challenges одного модуля
func SnapshotsFrom(challenges []entity.Challenge) []ChallengeSnapshot {
	out := make([]ChallengeSnapshot, len(challenges))
	for i, c := range challenges {
		out[i] = ChallengeSnapshot{
			Letter:       c.Letter,
			Flawless:     c.Flawless,
			LastActivity: c.LastActivity,
		}
	}
	return out
}

// IntN возвращает случайное число в [0, n). Подменяется в тестах.
type IntN func(n int) int

func defaultIntN(n int) int {
	return rand.Intn(n)
}

// shuffle: перемешивание Фишера–Йетса
func shuffle[T any](items []T, intn IntN) {
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
