package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/domain/entity"
	"github.com/yourusername/marathi-api/internal/domain/repository"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
	"github.com/yourusername/marathi-api/internal/service/exercisebuilder"
)

const (
	// DefaultDashboardCacheTTL: время жизни кеша дашборда по умолчанию
	DefaultDashboardCacheTTL = 5 * time.Minute

	// commonMistakesLetters: сколько проблемных букв показывать
	commonMistakesLetters = 3
	// commonMistakesPerLetter: сколько вариантов ошибок показывать по букве
	commonMistakesPerLetter = 3
)

// ProgressService обрабатывает ответы и считает статистику прогресса
type ProgressService struct {
	progressRepo repository.ProgressRepository
	cacheRepo    repository.CacheRepository
	catalog      *alphabet.Catalog
	dashboardTTL time.Duration
	now          func() time.Time
}

// NewProgressService создает сервис прогресса. cacheRepo может быть nil, тогда дашборд не кешируется.
func NewProgressService(
	progressRepo repository.ProgressRepository,
	cacheRepo repository.CacheRepository,
	catalog *alphabet.Catalog,
	dashboardTTL time.Duration,
) *ProgressService {
	if dashboardTTL <= 0 {
		dashboardTTL = DefaultDashboardCacheTTL
	}
	return &ProgressService{
		progressRepo: progressRepo,
		cacheRepo:    cacheRepo,
		catalog:      catalog,
		dashboardTTL: dashboardTTL,
		now:          time.Now,
	}
}

func dashboardCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s", userID)
}

// RecordAnswer проверяет ответ на букву (letter: в письменности маратхи) и сохраняет результат.
// Возвращает обновлённый challenge и признак правильности ответа.
func (s *ProgressService) RecordAnswer(ctx context.Context, userID uuid.UUID, module entity.Module, letter, answer string) (*entity.Challenge, bool, error) {
	if !module.IsValid() {
		return nil, false, fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, module)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, false, fmt.Errorf("%w: answer is empty", apperrors.ErrValidation)
	}

	l, err := s.catalog.ByScript(letter)
	if err != nil {
		return nil, false, err
	}

	correct := module.Answer(l) == answer

	challenge, err := s.progressRepo.SaveAnswer(ctx, repository.AnswerRecord{
		UserID:  userID,
		Module:  module,
		Letter:  l.Script,
		Correct: correct,
		Answer:  answer,
		At:      s.now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("save answer: %w", err)
	}

	s.invalidateDashboard(userID)

	return challenge, correct, nil
}

// GetResolvedProgress возвращает прогресс пользователя. Новый пользователь получает пустой прогресс.
func (s *ProgressService) GetResolvedProgress(ctx context.Context, userID uuid.UUID) (*entity.ResolvedProgress, error) {
	progress, err := s.progressRepo.GetResolvedProgress(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &entity.ResolvedProgress{UserID: userID, Challenges: []entity.Challenge{}}, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return progress, nil
}

// GetDashboard возвращает сводку прогресса, используя кеш
func (s *ProgressService) GetDashboard(ctx context.Context, userID uuid.UUID) (*entity.Dashboard, error) {
	key := dashboardCacheKey(userID)

	if s.cacheRepo != nil {
		var cached entity.Dashboard
		err := s.cacheRepo.GetJSON(key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ProgressService] Ошибка чтения кеша дашборда %s: %v", key, err)
		}
	}

	progress, err := s.GetResolvedProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := buildDashboard(progress, s.catalog.Len())

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(key, dashboard, s.dashboardTTL); err != nil {
			log.Printf("[ProgressService] Ошибка записи кеша дашборда %s: %v", key, err)
		}
	}

	return dashboard, nil
}

// CommonMistakes возвращает типичные ошибки по неосвоенным буквам
func (s *ProgressService) CommonMistakes(ctx context.Context, userID uuid.UUID) ([]entity.MistakePattern, error) {
	progress, err := s.GetResolvedProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analyzeMistakes(progress.Challenges, s.catalog), nil
}

// ExportRows возвращает строки отчёта по всем challenges пользователя
func (s *ProgressService) ExportRows(ctx context.Context, userID uuid.UUID) ([]entity.ReportRow, error) {
	progress, err := s.GetResolvedProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]entity.ReportRow, 0, len(progress.Challenges))
	for _, c := range progress.Challenges {
		row := entity.ReportRow{
			Module:       c.Module,
			Letter:       c.Letter,
			Attempts:     c.Attempts,
			Flawless:     c.Flawless,
			Mistakes:     len(c.Mistakes),
			Mastered:     c.IsMastered(),
			LastActivity: c.LastActivity,
		}
		if l, err := s.catalog.ByScript(c.Letter); err == nil {
			row.Latin = l.Latin
			row.Difficulty = l.Difficulty
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ProgressService) invalidateDashboard(userID uuid.UUID) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(dashboardCacheKey(userID)); err != nil {
		log.Printf("[ProgressService] Не удалось сбросить кеш дашборда пользователя %s: %v", userID, err)
	}
}

// buildDashboard считает статистику по прогрессу. catalogSize: число букв в каждом модуле.
func buildDashboard(progress *entity.ResolvedProgress, catalogSize int) *entity.Dashboard {
	modules := entity.Modules()

	var attempts, mistakes, softMastered, mastered int
	perModule := make(map[entity.Module]*entity.ModuleProgress, len(modules))
	out := &entity.Dashboard{
		Modules:      make([]entity.ModuleProgress, len(modules)),
		LastActivity: progress.LastActivity,
	}
	for i, info := range modules {
		out.Modules[i] = entity.ModuleProgress{Module: info, Total: catalogSize}
		perModule[info.ID] = &out.Modules[i]
	}

	for i := range progress.Challenges {
		c := &progress.Challenges[i]
		attempts += c.Attempts
		mistakes += len(c.Mistakes)
		if c.IsSoftMastered(exercisebuilder.FlawlessThreshold) {
			softMastered++
		}
		if c.IsMastered() {
			mastered++
		}

		if mp, ok := perModule[c.Module]; ok {
			mp.Practiced++
			if c.IsMastered() {
				mp.Mastered++
			}
		}
	}

	out.TotalAttempts = attempts
	out.TotalMistakes = mistakes
	if attempts > 0 {
		correct := max(attempts-mistakes, 0)
		out.Accuracy = int(math.Round(float64(correct) / float64(attempts) * 100))
	}

	possible := catalogSize * len(modules)
	if possible > 0 {
		out.MasteryLevel = entity.MasteryLevelFor(float64(softMastered) / float64(possible))
		out.OverallProgress = int(math.Round(float64(mastered) / float64(possible) * 100))
	} else {
		out.MasteryLevel = entity.MasteryNovice
	}

	return out
}

// analyzeMistakes находит буквы с ошибками среди неосвоенных и самые частые неверные ответы по ним
func analyzeMistakes(challenges []entity.Challenge, catalog *alphabet.Catalog) []entity.MistakePattern {
	patterns := make([]entity.MistakePattern, 0)

	for _, c := range challenges {
		if c.IsSoftMastered(exercisebuilder.FlawlessThreshold) || len(c.Mistakes) == 0 {
			continue
		}

		// Порядок первого появления сохраняется для равных счётчиков
		counts := make([]entity.MistakeCount, 0)
		index := make(map[string]int)
		for _, m := range c.Mistakes {
			if i, ok := index[m.Answer]; ok {
				counts[i].Count++
				continue
			}
			index[m.Answer] = len(counts)
			counts = append(counts, entity.MistakeCount{Answer: m.Answer, Count: 1})
		}

		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].Count > counts[j].Count
		})
		if len(counts) > commonMistakesPerLetter {
			counts = counts[:commonMistakesPerLetter]
		}
		for i := range counts {
			if c.Attempts > 0 {
				counts[i].Percentage = float64(counts[i].Count) / float64(c.Attempts) * 100
			}
		}

		pattern := entity.MistakePattern{
			Module:         c.Module,
			Letter:         c.Letter,
			TotalAttempts:  c.Attempts,
			CommonMistakes: counts,
		}
		if l, err := catalog.ByScript(c.Letter); err == nil {
			pattern.Latin = l.Latin
		}
		patterns = append(patterns, pattern)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].CommonMistakes[0].Count > patterns[j].CommonMistakes[0].Count
	})
	if len(patterns) > commonMistakesLetters {
		patterns = patterns[:commonMistakesLetters]
	}
	return patterns
}
