// Package client runs one complete game session: it connects to the server,
// drives the session through the event loop, tears everything down and
// records the final score.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/session"
	"github.com/vovakirdan/tui-invaders/internal/storage"
	"github.com/vovakirdan/tui-invaders/internal/transport"
)

// DialFunc opens the connection to the server.
type DialFunc func(ctx context.Context, kind transport.Kind, host, port string) (io.ReadWriteCloser, error)

// Options configures a client run.
type Options struct {
	Host      string
	Port      string
	Transport transport.Kind
	Config    config.ClientConfig
	Flags     core.Flags

	Renderer session.Renderer
	Selector session.GameSelector
	Sprites  session.SpriteLoader

	// Scores receives the final score of player sessions. Nil disables it.
	Scores *storage.Store

	Logger *log.Logger

	// Dial defaults to transport.Dial.
	Dial DialFunc
}

// EndReason tells how a session ended.
type EndReason int

const (
	EndFatal      EndReason = iota // A fatal error, returned alongside
	EndServerBye                   // The server said bye
	EndLocalQuit                   // The user left
	EndDisconnect                  // The server closed the connection
	EndCanceled                    // The context was canceled
)

func (r EndReason) String() string {
	switch r {
	case EndServerBye:
		return "server bye"
	case EndLocalQuit:
		return "local quit"
	case EndDisconnect:
		return "disconnected"
	case EndCanceled:
		return "canceled"
	default:
		return "fatal"
	}
}

// Result summarizes a finished session.
type Result struct {
	Reason    EndReason
	ClientID  int
	GameID    int
	Spectator bool
	Ticks     uint64
	Stats     session.Stats
	HasStats  bool
	ScoreID   int64 // Row id of the saved score, 0 if none was saved
}

// Server returns the host:port the options point at.
func (o Options) Server() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// Run plays one session to its end. Teardown always happens before Run
// returns; the error is nil for every successful termination.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	dial := opts.Dial
	if dial == nil {
		dial = transport.Dial
	}

	conn, err := dial(ctx, opts.Transport, opts.Host, opts.Port)
	if err != nil {
		return Result{Reason: EndFatal}, fmt.Errorf("client: connect to %s: %w", opts.Server(), err)
	}
	logger.Info("connected", "server", opts.Server(), "transport", opts.Transport)

	sess := session.New(conn, opts.Renderer, opts.Sprites, opts.Selector, session.Options{
		Flags:             opts.Flags,
		ClockHz:           opts.Config.Clock.Hz,
		MapOrder:          opts.Config.Containers.MapOrder,
		ReleaseAfterTicks: opts.Config.Input.ReleaseAfterTicks,
	}, logger)

	loop := eventloop.New(conn, opts.Config.Net.MaxLine, sess, logger)
	runErr := loop.Run(ctx)

	if errors.Is(runErr, context.Canceled) {
		// The server is still there; let it know
		if err := sess.Bye(); err != nil {
			logger.Debug("bye after cancel", "error", err)
		}
	}

	teardown(sess, conn, logger)

	res := Result{
		ClientID:  sess.ClientID(),
		GameID:    sess.GameID(),
		Spectator: sess.Spectator(),
		Ticks:     sess.Ticks(),
	}
	res.Stats, res.HasStats = sess.Stats()

	var fatal error
	res.Reason, fatal = Classify(runErr)
	if fatal != nil {
		logger.Error("session failed", "error", fatal)
		return res, fatal
	}
	logger.Info("session ended", "reason", res.Reason)

	res.ScoreID = saveScore(opts, res, logger)
	return res, nil
}

// teardown releases the session and then the connection.
func teardown(sess *session.Session, conn io.Closer, logger *log.Logger) {
	if err := sess.Close(); err != nil {
		logger.Warn("closing session", "error", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("closing connection", "error", err)
	}
}

// Classify maps the loop's error to an end reason. The returned error is
// non-nil only for fatal terminations.
func Classify(err error) (EndReason, error) {
	switch {
	case err == nil:
		return EndDisconnect, nil
	case errors.Is(err, session.ErrServerBye):
		return EndServerBye, nil
	case errors.Is(err, session.ErrLocalQuit):
		return EndLocalQuit, nil
	case errors.Is(err, context.Canceled):
		return EndCanceled, nil
	default:
		return EndFatal, err
	}
}

// saveScore records the last stats of a player session with a positive
// score. Failures are logged and otherwise ignored.
func saveScore(opts Options, res Result, logger *log.Logger) int64 {
	if opts.Scores == nil || res.Spectator || !res.HasStats || res.Stats.Score <= 0 {
		return 0
	}

	id, err := opts.Scores.SaveScore(opts.Server(), res.GameID, res.Stats.Score, res.Stats.Lives)
	if err != nil {
		logger.Warn("could not save score", "error", err)
		return 0
	}
	logger.Info("score saved", "server", opts.Server(), "score", res.Stats.Score)
	return id
}
