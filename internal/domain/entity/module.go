package entity

import (
	"fmt"

	"github.com/yourusername/marathi-api/internal/alphabet"
	apperrors "github.com/yourusername/marathi-api/internal/pkg/errors"
)

// Module: направление перевода в упражнении
type Module string

// Константы модулей
const (
	ModuleMarathiToLatin Module = "marathi-to-latin"
	ModuleLatinToMarathi Module = "latin-to-marathi"
)

// Сторона буквы, которая показывается или ожидается в ответе
const (
	SideScript = "script"
	SideLatin  = "latin"
)

// ModuleInfo описывает модуль для клиента
type ModuleInfo struct {
	ID          Module `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PromptSide  string `json:"prompt_side"`
	AnswerSide  string `json:"answer_side"`
}

// moduleTable: явная таблица модулей. Порядок определяет порядок вывода.
var moduleTable = []ModuleInfo{
	{
		ID:          ModuleMarathiToLatin,
		Name:        "Marathi to Latin",
		Description: "Practice translating Marathi letters to Latin script",
		PromptSide:  SideScript,
		AnswerSide:  SideLatin,
	},
	{
		ID:          ModuleLatinToMarathi,
		Name:        "Latin to Marathi",
		Description: "Practice translating Latin script to Marathi letters",
		PromptSide:  SideLatin,
		AnswerSide:  SideScript,
	},
}

// Modules возвращает все доступные модули
func Modules() []ModuleInfo {
	out := make([]ModuleInfo, len(moduleTable))
	copy(out, moduleTable)
	return out
}

// ParseModule преобразует строку в Module. Неизвестный модуль: ошибка валидации.
func ParseModule(s string) (Module, error) {
	for _, info := range moduleTable {
		if string(info.ID) == s {
			return info.ID, nil
		}
	}
	return "", fmt.Errorf("%w: unknown module %q", apperrors.ErrValidation, s)
}

// Info возвращает описание модуля
func (m Module) Info() (ModuleInfo, bool) {
	for _, info := range moduleTable {
		if info.ID == m {
			return info, true
		}
	}
	return ModuleInfo{}, false
}

// IsValid проверяет, что модуль известен
func (m Module) IsValid() bool {
	_, ok := m.Info()
	return ok
}

// Prompt возвращает то, что показывается пользователю для буквы
func (m Module) Prompt(l alphabet.Letter) string {
	info, _ := m.Info()
	return side(l, info.PromptSide)
}

// Answer возвращает правильный ответ для буквы в этом модуле
func (m Module) Answer(l alphabet.Letter) string {
	info, _ := m.Info()
	return side(l, info.AnswerSide)
}

func side(l alphabet.Letter, s string) string {
	switch s {
	case SideScript:
		return l.Script
	case SideLatin:
		return l.Latin
	default:
		return ""
	}
}
