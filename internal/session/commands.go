package session

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/entity"
	"github.com/vovakirdan/tui-invaders/internal/protocol"
)

// handleCommand dispatches one Ready-state command.
func (s *Session) handleCommand(msg *protocol.Message) error {
	op, err := msg.Op()
	if err != nil {
		return err
	}

	switch op {
	case protocol.OpPut:
		return s.put(msg)

	case protocol.OpMove:
		id, x, y, err := idAndPosition(msg)
		if err != nil {
			return err
		}
		return s.entities.Move(id, x, y)

	case protocol.OpDelete:
		id, err := msg.Int(protocol.FieldID)
		if err != nil {
			return err
		}
		if !s.entities.Delete(id) {
			s.logger.Debug("delete of unknown entity ignored", "id", id)
		}
		return nil

	case protocol.OpStats:
		lives, err := msg.Int(protocol.FieldLives)
		if err != nil {
			return err
		}
		score, err := msg.Int(protocol.FieldScore)
		if err != nil {
			return err
		}
		s.stats = Stats{Lives: lives, Score: score}
		s.hasStats = true
		s.renderer.UpdateLabel(fmt.Sprintf(StatsLabelFormat, score, lives))
		return nil

	case protocol.OpHighlight, protocol.OpUnhighlight:
		id, err := msg.Int(protocol.FieldID)
		if err != nil {
			return err
		}
		return s.entities.SetHighlight(id, op == protocol.OpHighlight)

	case protocol.OpBye:
		s.logger.Info("Connection terminated by server")
		return ErrServerBye

	default:
		return fmt.Errorf("%w '%s'", protocol.ErrUnknownOp, op)
	}
}

func idAndPosition(msg *protocol.Message) (id, x, y int, err error) {
	if id, err = msg.Int(protocol.FieldID); err != nil {
		return
	}
	if x, err = msg.Int(protocol.FieldX); err != nil {
		return
	}
	y, err = msg.Int(protocol.FieldY)
	return
}

func ratio(msg *protocol.Message, numKey, denomKey string) (entity.Ratio, error) {
	num, err := msg.Int(numKey)
	if err != nil {
		return entity.Ratio{}, err
	}
	den, err := msg.Int(denomKey)
	if err != nil {
		return entity.Ratio{}, err
	}
	return entity.NewRatio(num, den)
}

// put validates the whole command before the store is touched.
func (s *Session) put(msg *protocol.Message) error {
	id, x, y, err := idAndPosition(msg)
	if err != nil {
		return err
	}

	seq, err := msg.Sequence()
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return fmt.Errorf("%w (entity %d)", entity.ErrEmptySequence, id)
	}
	for _, spriteID := range seq {
		if _, ok := s.sprites.Get(spriteID); !ok {
			return fmt.Errorf("%w: %d", entity.ErrUnknownSprite, spriteID)
		}
	}

	z, err := msg.Int(protocol.FieldZ)
	if err != nil {
		return err
	}
	speedX, err := ratio(msg, protocol.FieldNumX, protocol.FieldDenomX)
	if err != nil {
		return err
	}
	speedY, err := ratio(msg, protocol.FieldNumY, protocol.FieldDenomY)
	if err != nil {
		return err
	}

	_, err = s.entities.Put(id, entity.Placement{
		X:        x,
		Y:        y,
		Z:        z,
		Sequence: seq,
		SpeedX:   speedX,
		SpeedY:   speedY,
	})
	return err
}
