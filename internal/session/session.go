// Package session implements the client side of the game protocol: the
// handshake state machine, the command dispatcher that keeps the entity
// store in sync with the server, and the per-tick redraw pass.
package session

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/entity"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/protocol"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// State is the protocol phase of a session.
type State int

const (
	AwaitingIdentity State = iota
	AwaitingWorldInit
	Ready
)

func (s State) String() string {
	switch s {
	case AwaitingIdentity:
		return "awaiting-identity"
	case AwaitingWorldInit:
		return "awaiting-world-init"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Successful terminations. Every other error returned by a Handler method
// is fatal.
var (
	ErrServerBye = errors.New("session: connection terminated by server")
	ErrLocalQuit = errors.New("session: quit by user")
)

// StatsLabelFormat renders score then lives.
const StatsLabelFormat = "SCORE: %04d           LIVES: %d"

// Options tune a session.
type Options struct {
	Flags             core.Flags
	ClockHz           int
	MapOrder          uint
	ReleaseAfterTicks int
}

// Stats is the last score report received from the server.
type Stats struct {
	Lives int
	Score int
}

// Session is the context object threaded through every handler. It is
// owned by the event loop goroutine and never shared.
type Session struct {
	state State
	flags core.Flags
	opts  Options

	enc      *protocol.Encoder
	renderer Renderer
	loader   SpriteLoader
	selector GameSelector
	logger   *log.Logger

	entities *entity.Store
	sprites  *sprite.Table
	ticks    uint64

	window <-chan eventloop.Event
	clock  *eventloop.Clock
	keys   keyTracker

	clientID int
	gameID   int
	stats    Stats
	hasStats bool
	closed   bool
}

// New creates a session writing protocol messages to w.
func New(w io.Writer, r Renderer, l SpriteLoader, sel GameSelector, opts Options, logger *log.Logger) *Session {
	return &Session{
		state:    AwaitingIdentity,
		flags:    opts.Flags,
		opts:     opts,
		enc:      protocol.NewEncoder(w),
		renderer: r,
		loader:   l,
		selector: sel,
		logger:   logger,
		entities: entity.NewStore(opts.MapOrder),
		keys:     newKeyTracker(opts.ReleaseAfterTicks),
	}
}

// State returns the current protocol phase.
func (s *Session) State() State { return s.state }

// Flags returns the client-mode flags, including spectator once chosen.
func (s *Session) Flags() core.Flags { return s.flags }

// Spectator reports whether the client watches another client's game.
func (s *Session) Spectator() bool { return s.flags.Has(core.FlagSpectator) }

// Ticks returns the number of clock ticks handled.
func (s *Session) Ticks() uint64 { return s.ticks }

// ClientID returns the id the server assigned.
func (s *Session) ClientID() int { return s.clientID }

// GameID returns the game joined.
func (s *Session) GameID() int { return s.gameID }

// Entities exposes the entity store.
func (s *Session) Entities() *entity.Store { return s.entities }

// Stats returns the last score report, if any arrived.
func (s *Session) Stats() (Stats, bool) { return s.stats, s.hasStats }

// Window implements eventloop.Handler.
func (s *Session) Window() <-chan eventloop.Event { return s.window }

// Clock implements eventloop.Handler.
func (s *Session) Clock() *eventloop.Clock { return s.clock }

// HandleLine implements eventloop.Handler: decode one server line and route
// it by protocol phase.
func (s *Session) HandleLine(line []byte) error {
	s.logger.Debug("recv", "line", string(line))

	msg, err := protocol.Decode(line)
	if err != nil {
		return err
	}

	switch s.state {
	case AwaitingIdentity:
		return s.handleIdentity(msg)
	case AwaitingWorldInit:
		return s.handleWorldInit(msg)
	default:
		return s.handleCommand(msg)
	}
}

// Bye tells the server the client is leaving.
func (s *Session) Bye() error {
	return s.enc.Bye()
}

// Close releases every resource the session owns. It is safe to call more
// than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.clock.Stop()
	s.clock = nil
	s.window = nil

	var err error
	if s.renderer != nil {
		err = s.renderer.Close()
	}
	if s.sprites != nil {
		s.sprites.Clear()
	}
	s.entities.Clear()
	return err
}
