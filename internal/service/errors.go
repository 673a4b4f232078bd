package service

import (
	"errors"
	"fmt"
)

// ErrExerciseCreationFailed: не удалось собрать упражнение из-за хранилища прогресса
var ErrExerciseCreationFailed = errors.New("exercise creation failed")

// ExerciseCreationFailedError оборачивает причину сбоя сборки упражнения
type ExerciseCreationFailedError struct {
	Cause error
}

func (e *ExerciseCreationFailedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrExerciseCreationFailed, e.Cause)
}

// Unwrap возвращает исходную ошибку
func (e *ExerciseCreationFailedError) Unwrap() error {
	return e.Cause
}

// Is позволяет проверять ошибку через errors.Is(err, ErrExerciseCreationFailed)
func (e *ExerciseCreationFailedError) Is(target error) bool {
	return target == ErrExerciseCreationFailed
}
