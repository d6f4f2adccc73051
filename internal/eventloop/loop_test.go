package eventloop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// recorder is a Handler that records what it sees.
type recorder struct {
	lines  []string
	ticks  int
	events []Event
	window chan Event
	clock  *Clock
	failOn string
	onLine func(string)
}

var errStop = errors.New("stop")

func (r *recorder) HandleLine(line []byte) error {
	s := string(line)
	r.lines = append(r.lines, s)
	if r.onLine != nil {
		r.onLine(s)
	}
	if s == r.failOn {
		return errStop
	}
	return nil
}

func (r *recorder) HandleTick() error {
	r.ticks++
	if r.ticks == 3 {
		return errStop
	}
	return nil
}

func (r *recorder) HandleWindow(ev Event) error {
	r.events = append(r.events, ev)
	if ev.Kind == KindQuit {
		return errStop
	}
	return nil
}

func (r *recorder) Window() <-chan Event { return r.window }
func (r *recorder) Clock() *Clock        { return r.clock }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestLoopLinesAndEOF(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	rec := &recorder{}
	loop := New(client, 512, rec, quietLogger())

	go func() {
		server.Write([]byte(`{"whoami":1,`))
		server.Write([]byte("\"games\":[]}\n{\"width\":10,\"height\":20}\n"))
		server.Close()
	}()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, expected nil on EOF", err)
	}

	want := []string{`{"whoami":1,"games":[]}`, `{"width":10,"height":20}`}
	if len(rec.lines) != 2 || rec.lines[0] != want[0] || rec.lines[1] != want[1] {
		t.Errorf("lines = %q, expected %q", rec.lines, want)
	}
}

func TestLoopHandlerErrorStops(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	rec := &recorder{failOn: "b"}
	loop := New(client, 512, rec, quietLogger())

	go server.Write([]byte("a\nb\nc\n"))

	if err := loop.Run(context.Background()); !errors.Is(err, errStop) {
		t.Fatalf("Run() = %v, expected errStop", err)
	}
	if len(rec.lines) != 2 {
		t.Errorf("lines = %q, processing should stop at the failing line", rec.lines)
	}
}

func TestLoopOverflow(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	loop := New(client, 8, &recorder{}, quietLogger())
	go server.Write([]byte("0123456789"))

	if err := loop.Run(context.Background()); !errors.Is(err, ErrLineOverflow) {
		t.Fatalf("Run() = %v, expected ErrLineOverflow", err)
	}
}

func TestLoopArmsSourcesLazily(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	rec := &recorder{}
	rec.onLine = func(string) {
		// Arming happens from inside a handler, like the world-init handshake.
		rec.window = make(chan Event, 4)
		rec.clock = NewClock(500)
		rec.window <- Event{Kind: KindKey, Key: core.KeyShoot, Dir: core.Press}
	}
	loop := New(client, 512, rec, quietLogger())
	go server.Write([]byte("{}\n"))

	if err := loop.Run(context.Background()); !errors.Is(err, errStop) {
		t.Fatalf("Run() = %v, expected errStop after 3 ticks", err)
	}
	rec.clock.Stop()

	if rec.ticks != 3 {
		t.Errorf("ticks = %d, expected 3", rec.ticks)
	}
	if len(rec.events) != 1 || rec.events[0].Key != core.KeyShoot {
		t.Errorf("window events = %+v", rec.events)
	}
}

func TestLoopWindowClosedIsQuit(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	window := make(chan Event)
	close(window)
	rec := &recorder{window: window}

	if err := New(client, 512, rec, quietLogger()).Run(context.Background()); !errors.Is(err, errStop) {
		t.Fatalf("Run() = %v, expected errStop from quit", err)
	}
	if len(rec.events) != 1 || rec.events[0].Kind != KindQuit {
		t.Errorf("events = %+v, expected one quit", rec.events)
	}
}

func TestLoopContextCancel(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := New(client, 512, &recorder{}, quietLogger()).Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v, expected deadline exceeded", err)
	}
}

func TestMissedTicksRunOnce(t *testing.T) {
	tests := []struct {
		name        string
		expirations uint64
		warning     string
	}{
		{"on time", 1, ""},
		{"four missed", 5, "count=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := &recorder{}
			loop := New(strings.NewReader(""), 512, rec, log.New(&buf))

			if err := loop.dispatch(Event{Kind: KindTimer, Expirations: tt.expirations}); err != nil {
				t.Fatalf("dispatch() = %v, expected nil", err)
			}
			if rec.ticks != 1 {
				t.Errorf("ticks = %d, expected 1", rec.ticks)
			}

			logged := buf.String()
			if tt.warning == "" {
				if logged != "" {
					t.Errorf("log = %q, expected nothing", logged)
				}
				return
			}
			if !strings.Contains(logged, "clock tick(s) missed") || !strings.Contains(logged, tt.warning) {
				t.Errorf("log = %q, expected a missed-tick warning with %s", logged, tt.warning)
			}
		})
	}
}
