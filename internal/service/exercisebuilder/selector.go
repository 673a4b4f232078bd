package exercisebuilder

import (
	"fmt"
	"log"
	"sort"

	"github.com/yourusername/marathi-api/internal/alphabet"
)

// maxRandomDrawsPerLetter ограничивает добор случайными буквами, когда новые буквы закончились
const maxRandomDrawsPerLetter = 100

// LetterSelector выбирает буквы для следующего упражнения на основе истории ответов
type LetterSelector struct {
	catalog *alphabet.Catalog
	config  *SelectionConfig
	intn    IntN
}

// NewLetterSelector создаёт селектор и проверяет, что каталога хватает на упражнение
func NewLetterSelector(catalog *alphabet.Catalog, config *SelectionConfig) (*LetterSelector, error) {
	if config == nil {
		config = DefaultSelectionConfig()
	}

	if catalog.Len() < config.ExerciseSize {
		return nil, fmt.Errorf("%w: catalog has %d letters, exercise needs %d",
			alphabet.ErrInsufficientCatalog, catalog.Len(), config.ExerciseSize)
	}
	easy := len(catalog.UpToDifficulty(config.ColdStartMaxDifficulty))
	if easy < config.ExerciseSize {
		return nil, fmt.Errorf("%w: only %d letters with difficulty <= %d, exercise needs %d",
			alphabet.ErrInsufficientCatalog, easy, config.ColdStartMaxDifficulty, config.ExerciseSize)
	}

	return &LetterSelector{
		catalog: catalog,
		config:  config,
		intn:    defaultIntN,
	}, nil
}

// Size возвращает размер упражнения
func (s *LetterSelector) Size() int {
	return s.config.ExerciseSize
}

// SelectLetters возвращает ровно ExerciseSize различных букв в случайном порядке.
// challenges должны быть уже отфильтрованы по пользователю и модулю.
//
// Правила:
//   - challenges <= ColdStartLimit: случайные буквы сложности <= ColdStartMaxDifficulty
//   - RecencyOffset самых давних букв включаются всегда, независимо от flawless
//   - из остальных берутся самые давние с flawless < FlawlessThreshold
//   - нехватка добирается буквами, которых пользователь ещё не видел в этом модуле
func (s *LetterSelector) SelectLetters(challenges []ChallengeSnapshot) ([]alphabet.Letter, error) {
	if len(challenges) <= s.config.ColdStartLimit {
		return s.coldStart(), nil
	}

	sorted := make([]ChallengeSnapshot, len(challenges))
	copy(sorted, challenges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastActivity.Before(sorted[j].LastActivity)
	})

	offset := min(s.config.RecencyOffset, len(sorted))
	stalest := sorted[:offset]

	flawed := s.removeFlawless(sorted[offset:])
	if limit := s.config.ExerciseSize - offset; len(flawed) > limit {
		flawed = flawed[:limit]
	}

	letters := make([]alphabet.Letter, 0, s.config.ExerciseSize)
	seen := make(map[string]struct{}, s.config.ExerciseSize)

	for _, group := range [][]ChallengeSnapshot{flawed, stalest} {
		for _, c := range group {
			if _, dup := seen[c.Letter]; dup {
				continue
			}
			letter, err := s.catalog.ByScript(c.Letter)
			if err != nil {
				return nil, err
			}
			seen[letter.Script] = struct{}{}
			letters = append(letters, letter)
		}
	}

	if len(letters) < s.config.ExerciseSize {
		var err error
		letters, err = s.fill(letters, seen, challenges)
		if err != nil {
			return nil, err
		}
	}

	shuffle(letters, s.intn)
	return letters, nil
}

// coldStart выбирает случайные простые буквы без повторов
func (s *LetterSelector) coldStart() []alphabet.Letter {
	pool := s.catalog.UpToDifficulty(s.config.ColdStartMaxDifficulty)
	shuffle(pool, s.intn)
	return pool[:s.config.ExerciseSize]
}

// removeFlawless отбрасывает освоенные challenges, сохраняя порядок
func (s *LetterSelector) removeFlawless(challenges []ChallengeSnapshot) []ChallengeSnapshot {
	out := make([]ChallengeSnapshot, 0, len(challenges))
	for _, c := range challenges {
		if c.Flawless < s.config.FlawlessThreshold {
			out = append(out, c)
		}
	}
	return out
}

// fill добирает упражнение самыми простыми буквами, которых нет в истории модуля
func (s *LetterSelector) fill(letters []alphabet.Letter, seen map[string]struct{}, challenges []ChallengeSnapshot) ([]alphabet.Letter, error) {
	exclude := make([]string, len(challenges))
	for i, c := range challenges {
		exclude[i] = c.Letter
	}

	gen := NewEasiestLetters(s.catalog, exclude, s.intn)
	if gen.Remaining() < s.config.ExerciseSize-len(letters) {
		log.Printf("[LetterSelector] Новых букв недостаточно (%d), добор случайными буквами каталога", gen.Remaining())
	}

	randomBudget := s.config.ExerciseSize * maxRandomDrawsPerLetter
	for len(letters) < s.config.ExerciseSize {
		fromQueue := gen.Remaining() > 0
		next := gen.Next()
		if !fromQueue {
			if randomBudget == 0 {
				return nil, fmt.Errorf("%w: could not fill exercise, have %d of %d letters",
					alphabet.ErrInsufficientCatalog, len(letters), s.config.ExerciseSize)
			}
			randomBudget--
		}

		if _, dup := seen[next.Script]; dup {
			continue
		}
		seen[next.Script] = struct{}{}
		letters = append(letters, next)
	}

	return letters, nil
}
