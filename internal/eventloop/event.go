// Package eventloop multiplexes the server connection, the window and the
// game clock onto one goroutine. Every source is turned into an Event on a
// single FIFO queue, and each event is fully handled before the next wait.
package eventloop

import (
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Kind identifies the source of an Event.
type Kind int

const (
	KindNet    Kind = iota // Bytes (or a read error) from the server connection
	KindTimer              // The game clock expired
	KindKey                // A logical key changed state
	KindClick              // A mouse button went down
	KindQuit               // The window was closed or the user asked to quit
	KindResize             // The terminal changed size
)

// Mouse buttons carried by KindClick.
const (
	ButtonLeft = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event is one entry of the loop's queue.
type Event struct {
	Kind Kind

	Data []byte // KindNet
	Err  error  // KindNet: io.EOF or a read failure

	Expirations uint64 // KindTimer: clock periods elapsed since the last tick

	Key    core.Key       // KindKey
	Dir    core.Direction // KindKey
	Repeat bool           // KindKey: auto-repeat of a held key

	X, Y   int // KindClick: world units; KindResize: cells
	Button int // KindClick
}
