package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/session"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

var _ session.Renderer = (*Renderer)(nil)

// newHeadlessRenderer returns a renderer whose program reads no input and
// writes nowhere.
func newHeadlessRenderer(t *testing.T, opts RendererOptions) *Renderer {
	t.Helper()
	opts.ProgramOptions = append(opts.ProgramOptions,
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	opts.Logger = log.New(io.Discard)
	r := NewRenderer(opts)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRendererCreateSurface(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{ScaleX: 4, ScaleY: 8, Theme: DefaultTheme()})

	if _, err := r.CreateSurface(256, 240); err != nil {
		t.Fatalf("CreateSurface() failed: %v", err)
	}
	if cols, rows := r.Size(); cols != 64 || rows != 30 {
		t.Errorf("Size() = %dx%d, expected 64x30", cols, rows)
	}
	if _, err := r.CreateSurface(256, 240); err != ErrSurfaceExists {
		t.Errorf("second CreateSurface() = %v, expected %v", err, ErrSurfaceExists)
	}
}

func TestRendererCreateSurfaceInvalid(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{ScaleX: 4, ScaleY: 8})
	if _, err := r.CreateSurface(0, 240); err == nil {
		t.Error("CreateSurface(0, 240) should fail")
	}
}

func TestRendererFitScale(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{
		Flags:      core.FlagFullscreenFake,
		ScaleX:     4,
		ScaleY:     8,
		TermWidth:  128,
		TermHeight: 62,
	})

	if _, err := r.CreateSurface(256, 240); err != nil {
		t.Fatalf("CreateSurface() failed: %v", err)
	}
	// 62 rows minus the footer leaves 60 for 240 units
	if x, y := r.Scale(); x != 2 || y != 4 {
		t.Errorf("Scale() = %d,%d, expected 2,4", x, y)
	}
	if cols, rows := r.Size(); cols != 128 || rows != 60 {
		t.Errorf("Size() = %dx%d, expected 128x60", cols, rows)
	}
}

func TestRendererDrawing(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{ScaleX: 4, ScaleY: 8, LabelX: 0, LabelY: 0})
	if _, err := r.CreateSurface(64, 64); err != nil {
		t.Fatalf("CreateSurface() failed: %v", err)
	}

	s := &sprite.Sprite{ID: 1, Width: 8, Height: 8, Art: []string{"A B"}, Color: core.ColorGreen}
	r.RenderSprite(s, 9, 17)

	// World (9, 17) is cell (2, 2); the space is transparent
	if got := r.screen.GetCell(2, 2); got.Rune != 'A' || got.Color != core.ColorGreen {
		t.Errorf("cell (2,2) = %+v, expected green A", got)
	}
	if got := r.screen.GetCell(3, 2).Rune; got != ' ' {
		t.Errorf("cell (3,2) = %q, expected space", got)
	}
	if got := r.screen.GetCell(4, 2).Rune; got != 'B' {
		t.Errorf("cell (4,2) = %q, expected B", got)
	}

	// A rectangle from x 9 to 17 touches columns 2..4
	r.RenderHighlight(s.Bounds(9, 17))
	for x := 2; x <= 4; x++ {
		if !r.screen.GetCell(x, 2).Highlight {
			t.Errorf("cell (%d,2) should be highlighted", x)
		}
	}
	if r.screen.GetCell(5, 2).Highlight {
		t.Error("cell (5,2) should not be highlighted")
	}

	r.UpdateLabel("SCORE")
	if !strings.Contains(r.Frame(), "SCORE") {
		t.Errorf("Frame() should contain the label")
	}

	r.Clear()
	if got := r.screen.GetCell(2, 2).Rune; got != ' ' {
		t.Errorf("after Clear() cell (2,2) = %q, expected space", got)
	}
	if err := r.Present(); err != nil {
		t.Errorf("Present() = %v", err)
	}
}

func TestRendererBeforeSurface(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{ScaleX: 4, ScaleY: 8})

	// Nothing to draw on yet; none of these may panic
	r.Clear()
	r.RenderSprite(&sprite.Sprite{Art: []string{"X"}}, 0, 0)
	r.RenderHighlight(core.NewRect(0, 0, 4, 4))
	if err := r.Present(); err != nil {
		t.Errorf("Present() = %v", err)
	}
	if r.Frame() != "" {
		t.Error("Frame() should be empty before CreateSurface")
	}
}

func TestRendererClose(t *testing.T) {
	r := newHeadlessRenderer(t, RendererOptions{ScaleX: 4, ScaleY: 8})
	events, err := r.CreateSurface(32, 32)
	if err != nil {
		t.Fatalf("CreateSurface() failed: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}

	// The window channel closes with the program
	for ev := range events {
		if ev.Kind == eventloop.KindKey {
			t.Errorf("unexpected key event %+v", ev)
		}
	}
}
