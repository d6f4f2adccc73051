package eventloop

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/container"
)

// readSize is the largest chunk taken from the connection at once.
const readSize = 4096

// Handler consumes events. Window and Clock are asked for again before every
// wait, so sources armed while handling an event are picked up right away; a
// nil value means the source is not armed yet.
type Handler interface {
	HandleLine(line []byte) error
	HandleTick() error
	HandleWindow(ev Event) error
	Window() <-chan Event
	Clock() *Clock
}

// Loop is the single-goroutine event multiplexer.
type Loop struct {
	conn    io.Reader
	lines   *LineBuffer
	handler Handler
	queue   container.Vec[Event]
	logger  *log.Logger
}

// New creates a loop reading server lines of at most maxLine-1 bytes from conn.
func New(conn io.Reader, maxLine int, h Handler, logger *log.Logger) *Loop {
	return &Loop{
		conn:    conn,
		lines:   NewLineBuffer(maxLine),
		handler: h,
		queue:   container.NewVec[Event](),
		logger:  logger,
	}
}

// errClosed ends Run without error when the server closes the connection.
var errClosed = errors.New("eventloop: connection closed")

// Run waits on every source and dispatches events until a handler fails,
// the server closes the connection (nil) or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	chunks := make(chan Event)
	done := make(chan struct{})
	defer close(done)
	go l.read(chunks, done)

	for {
		for l.queue.Len() > 0 {
			ev := *l.queue.Get(0)
			l.queue.Delete(0)

			if err := l.dispatch(ev); err != nil {
				if errors.Is(err, errClosed) {
					return nil
				}
				return err
			}
		}

		window := l.handler.Window()
		clock := l.handler.Clock()

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-chunks:
			l.queue.Push(ev)

		case ev, ok := <-window:
			if !ok {
				ev = Event{Kind: KindQuit}
			}
			l.queue.Push(ev)

		case now := <-clock.C():
			l.queue.Push(Event{Kind: KindTimer, Expirations: clock.Drain(now)})
		}
	}
}

func (l *Loop) dispatch(ev Event) error {
	switch ev.Kind {
	case KindNet:
		if len(ev.Data) > 0 {
			if err := l.lines.Feed(ev.Data, l.handler.HandleLine); err != nil {
				return err
			}
		}
		if ev.Err == nil {
			return nil
		}
		if errors.Is(ev.Err, io.EOF) {
			l.logger.Info("The server has closed the connection")
			return errClosed
		}
		return fmt.Errorf("eventloop: read: %w", ev.Err)

	case KindTimer:
		if ev.Expirations > 1 {
			l.logger.Warn("clock tick(s) missed", "count", ev.Expirations-1)
		}
		return l.handler.HandleTick()

	default:
		return l.handler.HandleWindow(ev)
	}
}

// read forwards connection data to the loop until a read fails.
func (l *Loop) read(out chan<- Event, done <-chan struct{}) {
	buf := make([]byte, readSize)
	for {
		n, err := l.conn.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- Event{Kind: KindNet, Data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case out <- Event{Kind: KindNet, Err: err}:
			case <-done:
			}
			return
		}
	}
}
