package entity

import (
	"errors"
	"fmt"
	"iter"

	"github.com/vovakirdan/tui-invaders/internal/container"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

var (
	ErrUnknownEntity = errors.New("entity: no entity has this id")
	ErrUnknownSprite = errors.New("entity: no sprite has this id")
	ErrEmptySequence = errors.New("entity: empty sequence array")
)

// Placement is the full state carried by a put command.
type Placement struct {
	X, Y     int
	Z        int
	Sequence []int
	SpeedX   Ratio
	SpeedY   Ratio
}

// Store owns every live entity, keyed by server id.
type Store struct {
	entities container.IntMap[Entity]
	maxDepth int
}

// NewStore creates an empty store whose map has 1<<order buckets.
func NewStore(order uint) *Store {
	return &Store{entities: container.NewIntMap[Entity](order)}
}

// Put creates the entity or resets an existing one in place. The
// animation restarts at the first frame; an existing highlight is kept.
func (s *Store) Put(id int, p Placement) (*Entity, error) {
	if len(p.Sequence) == 0 {
		return nil, fmt.Errorf("%w (entity %d)", ErrEmptySequence, id)
	}

	e, ok := s.entities.Get(id)
	if ok {
		e.Sequence.Resize(0)
	} else {
		e = s.entities.Put(id, Entity{Sequence: container.NewVec[int]()})
	}

	for _, sprite := range p.Sequence {
		e.Sequence.Push(sprite)
	}
	e.NextSprite = 0
	e.X, e.Y, e.Z = p.X, p.Y, p.Z
	e.SpeedX, e.SpeedY = p.SpeedX, p.SpeedY

	if e.Z > s.maxDepth {
		s.maxDepth = e.Z
	}
	return e, nil
}

// Get looks up an entity.
func (s *Store) Get(id int) (*Entity, bool) {
	return s.entities.Get(id)
}

func (s *Store) expect(id int) (*Entity, error) {
	e, ok := s.entities.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	return e, nil
}

// Move overwrites the position of an existing entity.
func (s *Store) Move(id, x, y int) error {
	e, err := s.expect(id)
	if err != nil {
		return err
	}
	e.X, e.Y = x, y
	return nil
}

// SetHighlight sets or clears the highlight of an existing entity.
func (s *Store) SetHighlight(id int, on bool) error {
	e, err := s.expect(id)
	if err != nil {
		return err
	}
	e.Highlight = on
	return nil
}

// Delete removes the entity if present and reports whether it existed.
func (s *Store) Delete(id int) bool {
	e, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	e.Sequence.Clear()
	s.entities.Delete(id)
	return true
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return s.entities.Len()
}

// MaxDepth returns the deepest z ever stored. It never decreases.
func (s *Store) MaxDepth() int {
	return s.maxDepth
}

// All yields every entity in map order.
func (s *Store) All() iter.Seq2[int, *Entity] {
	return s.entities.All()
}

// Layers yields entities by depth from 0 to MaxDepth, map order within a
// depth. Entities with a negative z are never yielded. Callers may mutate
// yielded entities but must not Put or Delete during the walk.
func (s *Store) Layers() iter.Seq2[int, *Entity] {
	return func(yield func(int, *Entity) bool) {
		for depth := 0; depth <= s.maxDepth; depth++ {
			for id, e := range s.entities.All() {
				if e.Z != depth {
					continue
				}
				if !yield(id, e) {
					return
				}
			}
		}
	}
}

// HitTest returns the ids of every entity whose bounds contain (x, y), in
// map order. bounds supplies the extent of an entity's current frame; an
// entity for which it reports false is skipped.
func (s *Store) HitTest(x, y int, bounds func(*Entity) (core.Rect, bool)) []int {
	var ids []int
	for id, e := range s.entities.All() {
		r, ok := bounds(e)
		if ok && r.Contains(x, y) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clear releases every entity and resets the depth bound.
func (s *Store) Clear() {
	for _, e := range s.entities.All() {
		e.Sequence.Clear()
	}
	s.entities.Clear()
	s.maxDepth = 0
}
