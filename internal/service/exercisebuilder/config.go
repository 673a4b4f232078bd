package exercisebuilder

import "github.com/yourusername/marathi-api/internal/domain/entity"

// Константы планировщика букв
const (
	// RecencyOffset: сколько самых давних букв попадает в упражнение всегда
	RecencyOffset = 2
	// FlawlessThreshold: с этого значения flawless буква уступает место новым
	FlawlessThreshold = 5
	// ColdStartLimit: при таком или меньшем числе challenges история игнорируется
	ColdStartLimit = 14
	// ColdStartMaxDifficulty: потолок сложности для новичков
	ColdStartMaxDifficulty = 1
)

// SelectionConfig содержит настройки выбора букв
type SelectionConfig struct {
	// ExerciseSize: сколько букв в упражнении
	ExerciseSize int

	// RecencyOffset: сколько самых давних challenges включается без условий
	RecencyOffset int

	// FlawlessThreshold: challenges с flawless >= порога считаются освоенными
	FlawlessThreshold int

	// ColdStartLimit: если challenges <= лимита, буквы выбираются случайно
	ColdStartLimit int

	// ColdStartMaxDifficulty: максимальная сложность букв при холодном старте
	ColdStartMaxDifficulty int
}

// DefaultSelectionConfig возвращает настройки по умолчанию
func DefaultSelectionConfig() *SelectionConfig {
	return &SelectionConfig{
		ExerciseSize:           entity.ExerciseSize,
		RecencyOffset:          RecencyOffset,
		FlawlessThreshold:      FlawlessThreshold,
		ColdStartLimit:         ColdStartLimit,
		ColdStartMaxDifficulty: ColdStartMaxDifficulty,
	}
}
