package entity

import "github.com/yourusername/marathi-api/internal/alphabet"

// ExerciseSize: количество букв в одном упражнении
const ExerciseSize = 8

// Exercise: набор букв для одного раунда. Не сохраняется в БД.
type Exercise struct {
	Module  Module            `json:"module"`
	Size    int               `json:"size"`
	Letters []alphabet.Letter `json:"letters"`
}
