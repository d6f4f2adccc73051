// Package entity holds the server-defined game objects and the per-tick
// movement scheduler that animates them between server updates.
package entity

import (
	"github.com/vovakirdan/tui-invaders/internal/container"
)

// Entity is a server-defined object drawn by the client.
type Entity struct {
	X, Y       int
	Z          int                // Render depth
	Sequence   container.Vec[int] // Animation frames as sprite ids
	NextSprite int                // Cursor into Sequence
	SpeedX     Ratio
	SpeedY     Ratio
	Highlight  bool
}

// Sprite returns the sprite id of the current animation frame.
func (e *Entity) Sprite() int {
	return *e.Sequence.Get(e.NextSprite)
}

// Step runs the scheduler on both axes for tick. When the entity moved on
// either axis the animation cursor advances, wrapping to the first frame.
func (e *Entity) Step(tick uint64) bool {
	var movedX, movedY bool
	e.X, movedX = MoveOnTick(e.X, e.SpeedX, tick)
	e.Y, movedY = MoveOnTick(e.Y, e.SpeedY, tick)

	moved := movedX || movedY
	if moved {
		e.NextSprite++
		if e.NextSprite == e.Sequence.Len() {
			e.NextSprite = 0
		}
	}
	return moved
}
