package protocol

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// flusher is implemented by buffered writers such as bufio.Writer.
type flusher interface {
	Flush() error
}

// Encoder writes outbound messages, one JSON object per line, keys in the
// order they were set. Each message is flushed as soon as it is written.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes msg followed by a newline.
func (e *Encoder) Encode(msg *orderedmap.OrderedMap) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("protocol: encode: %w", err)
	}
	b = append(b, '\n')
	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("protocol: write: %w", err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("protocol: flush: %w", err)
		}
	}
	return nil
}

// Key reports a press or release of a logical key.
func (e *Encoder) Key(dir core.Direction, key core.Key) error {
	o := orderedmap.New()
	o.Set(FieldOp, dir.String())
	o.Set(FieldKey, key.String())
	return e.Encode(o)
}

// Init asks to start (own id) or watch (another game's id) a game.
func (e *Encoder) Init(gameID int) error {
	o := orderedmap.New()
	o.Set(FieldInit, gameID)
	return e.Encode(o)
}

// Move reports a position the client computed for an entity.
func (e *Encoder) Move(id, x, y int) error {
	o := orderedmap.New()
	o.Set(FieldOp, OpMove)
	o.Set(FieldID, id)
	o.Set(FieldX, x)
	o.Set(FieldY, y)
	return e.Encode(o)
}

// Bye announces a client-side disconnect.
func (e *Encoder) Bye() error {
	o := orderedmap.New()
	o.Set(FieldOp, OpBye)
	return e.Encode(o)
}
