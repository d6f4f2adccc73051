package session

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// Renderer draws frames on the window the session asks it to create.
// All positions and extents are in world units.
type Renderer interface {
	// CreateSurface opens a world of the given size and returns the channel
	// on which the window delivers input events.
	CreateSurface(width, height int) (<-chan eventloop.Event, error)
	Clear()
	RenderSprite(s *sprite.Sprite, x, y int)
	RenderHighlight(r core.Rect)
	UpdateLabel(text string)
	// Status shows a one-line message, such as click results.
	Status(text string)
	Present() error
	Close() error
}

// SpriteLoader populates the sprite table once the world is known.
type SpriteLoader interface {
	Load() (*sprite.Table, error)
}

// GameSelector asks the user which game to join when others are running.
// It returns ok=false when the user declines to choose.
type GameSelector interface {
	Select(clientID int, games []int) (gameID int, ok bool, err error)
}

// Choice classifies a game id typed by the user: the own client id starts
// a game, a running game id watches it. Anything else is invalid.
func Choice(clientID int, games []int, gameID int) (valid, spectator bool) {
	if gameID == clientID {
		return true, false
	}
	for _, g := range games {
		if g == gameID {
			return true, true
		}
	}
	return false, false
}
