package entity

import "time"

// MasteryLevel: уровень владения алфавитом
type MasteryLevel string

// Уровни владения
const (
	MasteryNovice       MasteryLevel = "Novice"
	MasteryBeginner     MasteryLevel = "Beginner"
	MasteryIntermediate MasteryLevel = "Intermediate"
	MasteryAdvanced     MasteryLevel = "Advanced"
	MasteryMaster       MasteryLevel = "Master"
)

// masteryThresholds упорядочены по убыванию
var masteryThresholds = []struct {
	ratio float64
	level MasteryLevel
}{
	{0.9, MasteryMaster},
	{0.7, MasteryAdvanced},
	{0.5, MasteryIntermediate},
	{0.3, MasteryBeginner},
}

// MasteryLevelFor возвращает уровень по доле освоенных букв
func MasteryLevelFor(ratio float64) MasteryLevel {
	for _, t := range masteryThresholds {
		if ratio >= t.ratio {
			return t.level
		}
	}
	return MasteryNovice
}

// ModuleProgress: прогресс пользователя в одном модуле
type ModuleProgress struct {
	Module ModuleInfo `json:"module"`
	// Mastered: буквы с максимальным flawless
	Mastered int `json:"mastered"`
	// Practiced: буквы, на которые был хотя бы один ответ
	Practiced int `json:"practiced"`
	Total     int `json:"total"`
}

// Dashboard: сводка прогресса для главной страницы
type Dashboard struct {
	// Accuracy: процент верных ответов (0–100)
	Accuracy      int          `json:"accuracy"`
	TotalAttempts int          `json:"total_attempts"`
	TotalMistakes int          `json:"total_mistakes"`
	MasteryLevel  MasteryLevel `json:"mastery_level"`
	// OverallProgress: процент полностью освоенных букв по всем модулям (0–100)
	OverallProgress int              `json:"overall_progress"`
	Modules         []ModuleProgress `json:"modules"`
	LastActivity    *time.Time       `json:"last_activity,omitempty"`
}

// MistakeCount: один вариант неверного ответа и его частота
type MistakeCount struct {
	Answer     string  `json:"answer"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MistakePattern: типичные ошибки по одной букве
type MistakePattern struct {
	Module         Module         `json:"module"`
	Letter         string         `json:"letter"`
	Latin          string         `json:"latin"`
	TotalAttempts  int            `json:"total_attempts"`
	CommonMistakes []MistakeCount `json:"common_mistakes"`
}

// ReportRow: строка выгрузки прогресса
type ReportRow struct {
	Module       Module
	Letter       string
	Latin        string
	Difficulty   int
	Attempts     int
	Flawless     int
	Mistakes     int
	Mastered     bool
	LastActivity time.Time
}
