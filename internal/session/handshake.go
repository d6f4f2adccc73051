package session

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/protocol"
)

// handleIdentity picks the game to start or watch and sends init.
func (s *Session) handleIdentity(msg *protocol.Message) error {
	clientID, err := msg.Int(protocol.FieldWhoami)
	if err != nil {
		return err
	}
	games, err := msg.Ints(protocol.FieldGames)
	if err != nil {
		return err
	}

	s.clientID = clientID
	s.logger.Info("This is client", "id", clientID)

	gameID := clientID
	if len(games) == 0 {
		s.logger.Info("No games are currently running, starting game", "id", clientID)
	} else {
		for _, g := range games {
			s.logger.Info("Game is running", "id", g)
		}

		var ok bool
		gameID, ok, err = s.selector.Select(clientID, games)
		if err != nil {
			return fmt.Errorf("session: game selection: %w", err)
		}
		if !ok {
			if err := s.enc.Bye(); err != nil {
				return err
			}
			return ErrLocalQuit
		}

		valid, spectator := Choice(clientID, games, gameID)
		if !valid {
			return fmt.Errorf("session: game selection: %d is neither this client nor a running game", gameID)
		}
		if spectator {
			s.flags |= core.FlagSpectator
			s.logger.Info("This client is a spectator")
		}
	}

	if err := s.enc.Init(gameID); err != nil {
		return err
	}
	s.gameID = gameID
	s.state = AwaitingWorldInit
	return nil
}

// handleWorldInit creates the window, loads sprites and arms the clock.
func (s *Session) handleWorldInit(msg *protocol.Message) error {
	width, err := msg.Int(protocol.FieldWidth)
	if err != nil {
		return err
	}
	height, err := msg.Int(protocol.FieldHeight)
	if err != nil {
		return err
	}

	window, err := s.renderer.CreateSurface(width, height)
	if err != nil {
		return fmt.Errorf("session: create surface: %w", err)
	}
	s.window = window

	sprites, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("session: load sprites: %w", err)
	}
	s.sprites = sprites

	s.clock = eventloop.NewClock(s.opts.ClockHz)
	s.state = Ready
	s.logger.Info("world ready", "width", width, "height", height, "sprites", sprites.Len())
	return nil
}
