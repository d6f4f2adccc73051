// Package sprite holds the sprite table: the id to renderable mapping the
// server refers to in animation sequences.
package sprite

import (
	"iter"
	"slices"

	"github.com/vovakirdan/tui-invaders/internal/container"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Sprite is one renderable frame.
type Sprite struct {
	ID       int
	Name     string
	Category string     // Sheet directory the sprite was loaded from
	Width    int        // Extent in world units
	Height   int        // Extent in world units
	Art      []string   // Terminal rows drawn at the sprite origin
	Color    core.Color // Foreground color of the art
}

// Bounds returns the sprite's bounding box when drawn at (x, y).
func (s *Sprite) Bounds(x, y int) core.Rect {
	return core.NewRect(x, y, s.Width, s.Height)
}

// Table maps sprite ids to sprites.
type Table struct {
	sprites container.IntMap[Sprite]
}

// NewTable creates an empty sprite table.
func NewTable() *Table {
	return &Table{sprites: container.NewIntMap[Sprite](container.DefaultMapOrder)}
}

// Put adds a sprite, replacing any sprite with the same id.
func (t *Table) Put(s Sprite) {
	t.sprites.Put(s.ID, s)
}

// Get looks up a sprite by id.
func (t *Table) Get(id int) (*Sprite, bool) {
	return t.sprites.Get(id)
}

// Len returns the number of sprites.
func (t *Table) Len() int {
	return t.sprites.Len()
}

// All iterates sprites in table order.
func (t *Table) All() iter.Seq2[int, *Sprite] {
	return t.sprites.All()
}

// Sorted returns a copy of every sprite ordered by id.
func (t *Table) Sorted() []Sprite {
	out := make([]Sprite, 0, t.Len())
	for _, s := range t.All() {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Sprite) int { return a.ID - b.ID })
	return out
}

// Clear releases every sprite.
func (t *Table) Clear() {
	t.sprites.Clear()
}
