package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
)

func newTestSurface(posted *[]eventloop.Event) surfaceModel {
	keys := NewKeyMap(config.DefaultClientConfig().Input.Keys)
	return newSurfaceModel(keys, DefaultTheme(), 4, 8, true, func(ev eventloop.Event) {
		*posted = append(*posted, ev)
	})
}

func TestSurfaceModelKeys(t *testing.T) {
	var posted []eventloop.Event
	var m tea.Model = newTestSurface(&posted)

	m, _ = m.Update(runeKey("a"))
	m, _ = m.Update(runeKey("x"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, cmd := m.Update(runeKey("q"))

	if cmd != nil {
		t.Error("quit key should leave quitting to the session")
	}
	if len(posted) != 3 {
		t.Fatalf("posted %d events, expected 3: %+v", len(posted), posted)
	}
	if posted[0].Kind != eventloop.KindKey || posted[0].Key != core.KeyLeft || posted[0].Dir != core.Press {
		t.Errorf("event 0 = %+v, expected left press", posted[0])
	}
	if posted[1].Key != core.KeyShoot {
		t.Errorf("event 1 = %+v, expected shoot", posted[1])
	}
	if posted[2].Kind != eventloop.KindQuit {
		t.Errorf("event 2 = %+v, expected quit", posted[2])
	}
}

func TestSurfaceModelMouse(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected []eventloop.Event
	}{
		{
			name: "left press",
			msg:  tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			expected: []eventloop.Event{
				{Kind: eventloop.KindClick, X: 12, Y: 16, Button: eventloop.ButtonLeft},
			},
		},
		{
			name: "right press",
			msg:  tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
			expected: []eventloop.Event{
				{Kind: eventloop.KindClick, X: 4, Y: 8, Button: eventloop.ButtonRight},
			},
		},
		{
			name: "release ignored",
			msg:  tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		},
		{
			name: "wheel ignored",
			msg:  tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var posted []eventloop.Event
			m := newTestSurface(&posted)
			m.Update(tt.msg)

			if len(posted) != len(tt.expected) {
				t.Fatalf("posted %+v, expected %+v", posted, tt.expected)
			}
			for i := range posted {
				got, want := posted[i], tt.expected[i]
				if got.Kind != want.Kind || got.X != want.X || got.Y != want.Y || got.Button != want.Button {
					t.Errorf("event %d = %+v, expected %+v", i, posted[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSurfaceModelInlineDropsClicks(t *testing.T) {
	var posted []eventloop.Event
	keys := NewKeyMap(config.DefaultClientConfig().Input.Keys)
	m := newSurfaceModel(keys, DefaultTheme(), 4, 8, false, func(ev eventloop.Event) {
		posted = append(posted, ev)
	})

	m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(posted) != 0 {
		t.Errorf("posted %+v, expected no click without the alternate screen", posted)
	}
}

func TestScreenOptions(t *testing.T) {
	tests := []struct {
		name  string
		flags core.Flags
		mouse bool
		opts  int
	}{
		{"inline", core.FlagZero, false, 0},
		{"spectator inline", core.FlagSpectator, false, 0},
		{"modeset", core.FlagFullscreenModeset, true, 2},
		{"fake", core.FlagFullscreenFake, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mouse, opts := screenOptions(tt.flags)
			if mouse != tt.mouse {
				t.Errorf("screenOptions(%v) mouse = %v, expected %v", tt.flags, mouse, tt.mouse)
			}
			if len(opts) != tt.opts {
				t.Errorf("screenOptions(%v) returned %d options, expected %d", tt.flags, len(opts), tt.opts)
			}
		})
	}
}

func TestSurfaceModelView(t *testing.T) {
	var posted []eventloop.Event
	var m tea.Model = newTestSurface(&posted)

	m, _ = m.Update(frameMsg{frame: "FRAME", status: "STATUS"})
	view := m.View()

	if !strings.HasPrefix(view, "FRAME\n") {
		t.Errorf("View() should start with the frame, got %q", view)
	}
	if !strings.Contains(view, "STATUS") {
		t.Errorf("View() should contain the status line, got %q", view)
	}
	if !strings.Contains(view, "quit") {
		t.Errorf("View() should contain the help footer, got %q", view)
	}
}

func TestSurfaceModelResize(t *testing.T) {
	var posted []eventloop.Event
	m := newTestSurface(&posted)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if len(posted) != 1 || posted[0].Kind != eventloop.KindResize || posted[0].X != 100 || posted[0].Y != 40 {
		t.Errorf("posted %+v, expected one 100x40 resize", posted)
	}
}
