package exercisebuilder

import (
	"sort"

	"github.com/yourusername/marathi-api/internal/alphabet"
)

// EasiestLetters: бесконечная последовательность букв от простых к сложным.
// Сначала отдаёт все буквы не из exclude (перемешанные внутри уровня сложности),
// затем случайные буквы каталога без ограничений.
type EasiestLetters struct {
	catalog *alphabet.Catalog
	exclude map[string]struct{}
	intn    IntN

	queue []alphabet.Letter
	pos   int
}

// NewEasiestLetters создает генератор. exclude: буквы (script), которые не предлагаются в первую очередь.
func NewEasiestLetters(catalog *alphabet.Catalog, exclude []string, intn IntN) *EasiestLetters {
	if intn == nil {
		intn = defaultIntN
	}

	g := &EasiestLetters{
		catalog: catalog,
		exclude: make(map[string]struct{}, len(exclude)),
		intn:    intn,
	}
	for _, script := range exclude {
		g.exclude[script] = struct{}{}
	}

	g.Reset()
	return g
}

// Reset начинает последовательность заново с новым перемешиванием
func (g *EasiestLetters) Reset() {
	queue := make([]alphabet.Letter, 0, g.catalog.Len())
	for _, l := range g.catalog.All() {
		if _, skip := g.exclude[l.Script]; !skip {
			queue = append(queue, l)
		}
	}

	shuffle(queue, g.intn)
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Difficulty < queue[j].Difficulty
	})

	g.queue = queue
	g.pos = 0
}

// Next возвращает следующую букву. Последовательность никогда не заканчивается.
func (g *EasiestLetters) Next() alphabet.Letter {
	if g.pos < len(g.queue) {
		l := g.queue[g.pos]
		g.pos++
		return l
	}
	return g.catalog.Random(g.intn)
}

// Remaining: сколько букв ещё осталось до перехода на случайные
func (g *EasiestLetters) Remaining() int {
	return len(g.queue) - g.pos
}
