package session

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/entity"
)

// HandleTick implements eventloop.Handler. The tick counter advances by
// exactly one per expiration event, however many periods were missed.
func (s *Session) HandleTick() error {
	s.ticks++

	for _, key := range s.keys.expire(s.ticks) {
		if err := s.enc.Key(core.Release, key); err != nil {
			return err
		}
	}
	return s.redraw()
}

// redraw runs the movement scheduler and draws every entity, depth by
// depth. Entities the client moved are reported to the server unless the
// client is only watching.
func (s *Session) redraw() error {
	s.renderer.Clear()

	for id, e := range s.entities.Layers() {
		frame, ok := s.sprites.Get(e.Sprite())
		moved := e.Step(s.ticks)
		if !ok {
			continue
		}

		s.renderer.RenderSprite(frame, e.X, e.Y)
		if e.Highlight {
			s.renderer.RenderHighlight(frame.Bounds(e.X, e.Y))
		}

		if moved && !s.Spectator() {
			if err := s.enc.Move(id, e.X, e.Y); err != nil {
				return err
			}
		}
	}

	return s.renderer.Present()
}

// frameBounds is the extent of an entity's current animation frame.
func (s *Session) frameBounds(e *entity.Entity) (core.Rect, bool) {
	frame, ok := s.sprites.Get(e.Sprite())
	if !ok {
		return core.Rect{}, false
	}
	return frame.Bounds(e.X, e.Y), true
}
