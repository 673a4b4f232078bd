package alphabet

import (
	"errors"
	"fmt"
)

var (
	// ErrLetterNotFound: буква отсутствует в каталоге.
	// Обычно означает, что каталог изменился после записи истории.
	ErrLetterNotFound = errors.New("letter not found in alphabet")

	// ErrInsufficientCatalog: в каталоге не хватает букв, чтобы выполнить требование уникальности.
	// Это ошибка конфигурации, а не пользовательского ввода.
	ErrInsufficientCatalog = errors.New("not enough unique letters in catalog")
)

// LetterNotFoundError содержит значение, по которому искали букву
type LetterNotFoundError struct {
	Value string
	By    string // "script" или "latin"
}

func (e *LetterNotFoundError) Error() string {
	return fmt.Sprintf("letter %q (by %s) not found in alphabet", e.Value, e.By)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrLetterNotFound)
func (e *LetterNotFoundError) Is(target error) bool {
	return target == ErrLetterNotFound
}
