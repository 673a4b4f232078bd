package alphabet

import (
	"fmt"
	"math/rand"
)

// Виды букв
const (
	KindVowel     = "vowel"
	KindConsonant = "consonant"
)

// Letter представляет одну букву алфавита
type Letter struct {
	Script     string `json:"script"`     // Написание в деванагари
	Latin      string `json:"latin"`      // Транслитерация
	Difficulty int    `json:"difficulty"` // 1 = вводится первой, 3 = последней
	Kind       string `json:"kind"`
}

// Catalog: неизменяемый упорядоченный список букв.
// Поиск по script и latin однозначен: дубликаты отклоняются при создании.
type Catalog struct {
	letters  []Letter
	byScript map[string]int
	byLatin  map[string]int
}

// NewCatalog создает каталог из списка букв
func NewCatalog(letters []Letter) (*Catalog, error) {
	c := &Catalog{
		letters:  make([]Letter, len(letters)),
		byScript: make(map[string]int, len(letters)),
		byLatin:  make(map[string]int, len(letters)),
	}
	copy(c.letters, letters)

	for i, l := range c.letters {
		if l.Script == "" || l.Latin == "" {
			return nil, fmt.Errorf("letter #%d has empty script or latin form", i)
		}
		if l.Difficulty < 1 {
			return nil, fmt.Errorf("letter %q has invalid difficulty %d", l.Script, l.Difficulty)
		}
		if _, ok := c.byScript[l.Script]; ok {
			return nil, fmt.Errorf("duplicate script form %q", l.Script)
		}
		if _, ok := c.byLatin[l.Latin]; ok {
			return nil, fmt.Errorf("duplicate latin form %q", l.Latin)
		}
		c.byScript[l.Script] = i
		c.byLatin[l.Latin] = i
	}

	return c, nil
}

// Len возвращает количество букв в каталоге
func (c *Catalog) Len() int {
	return len(c.letters)
}

// All возвращает копию всех букв в исходном порядке
func (c *Catalog) All() []Letter {
	out := make([]Letter, len(c.letters))
	copy(out, c.letters)
	return out
}

// ByScript ищет букву по написанию в деванагари
func (c *Catalog) ByScript(script string) (Letter, error) {
	i, ok := c.byScript[script]
	if !ok {
		return Letter{}, &LetterNotFoundError{Value: script, By: "script"}
	}
	return c.letters[i], nil
}

// ByLatin ищет букву по транслитерации
func (c *Catalog) ByLatin(latin string) (Letter, error) {
	i, ok := c.byLatin[latin]
	if !ok {
		return Letter{}, &LetterNotFoundError{Value: latin, By: "latin"}
	}
	return c.letters[i], nil
}

// UpToDifficulty возвращает буквы со сложностью не выше maxDifficulty
func (c *Catalog) UpToDifficulty(maxDifficulty int) []Letter {
	out := make([]Letter, 0, len(c.letters))
	for _, l := range c.letters {
		if l.Difficulty <= maxDifficulty {
			out = append(out, l)
		}
	}
	return out
}

// Random возвращает случайную букву каталога.
// intn может быть nil, тогда используется math/rand.
func (c *Catalog) Random(intn func(int) int) Letter {
	if intn == nil {
		intn = rand.Intn
	}
	return c.letters[intn(len(c.letters))]
}
