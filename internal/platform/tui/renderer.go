package tui

import (
	"errors"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

// footerRows is the number of terminal rows below the playfield.
const footerRows = 2

// eventBuffer is how many input events may wait for the event loop.
const eventBuffer = 64

// ErrSurfaceExists is returned when CreateSurface is called twice.
var ErrSurfaceExists = errors.New("tui: surface already created")

// RendererOptions configures a Renderer.
type RendererOptions struct {
	Flags  core.Flags
	ScaleX int // World units per column
	ScaleY int // World units per row
	LabelX int // Stats label column
	LabelY int // Stats label row
	Keys   config.KeyBinding
	Theme  Theme

	// TermWidth and TermHeight size the terminal for fitted fullscreen.
	// Zero means ask the terminal on stdout.
	TermWidth  int
	TermHeight int

	// ProgramOptions are appended to the Bubble Tea options, e.g. the
	// input and output of an SSH session.
	ProgramOptions []tea.ProgramOption

	Logger *log.Logger
}

// Renderer draws the world on a terminal through a Bubble Tea program that
// is started when the surface is created. Drawing happens on the caller's
// goroutine into a cell buffer; Present hands the finished frame over.
type Renderer struct {
	opts   RendererOptions
	scaleX int
	scaleY int

	screen *core.Screen
	label  string
	status string

	mu        sync.Mutex // guards program against Resize from other goroutines
	program   *tea.Program
	events    chan eventloop.Event
	done      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once
}

// NewRenderer creates a renderer. Nothing is shown until CreateSurface.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.ScaleX <= 0 {
		opts.ScaleX = 1
	}
	if opts.ScaleY <= 0 {
		opts.ScaleY = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Renderer{
		opts:   opts,
		scaleX: opts.ScaleX,
		scaleY: opts.ScaleY,
		done:   make(chan struct{}),
	}
}

// Scale returns the world units per column and per row in use.
func (r *Renderer) Scale() (x, y int) {
	return r.scaleX, r.scaleY
}

// Size returns the playfield size in cells, or zero before CreateSurface.
func (r *Renderer) Size() (cols, rows int) {
	if r.screen == nil {
		return 0, 0
	}
	return r.screen.Width(), r.screen.Height()
}

// screenOptions reports whether clicks are delivered and returns the
// program options for flags. Mouse reporting comes only with the alternate
// screen: an inline frame sits at an unknown row, so its cell coordinates
// cannot be mapped back to the world.
func screenOptions(flags core.Flags) (bool, []tea.ProgramOption) {
	if !flags.Fullscreen() {
		return false, nil
	}
	return true, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// CreateSurface sizes the playfield for a width x height world and starts
// the program. The returned channel is closed when the program exits.
func (r *Renderer) CreateSurface(width, height int) (<-chan eventloop.Event, error) {
	if r.program != nil {
		return nil, ErrSurfaceExists
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tui: invalid world size %dx%d", width, height)
	}

	if r.opts.Flags.Has(core.FlagFullscreenFake) {
		r.fitScale(width, height)
	}
	r.screen = core.NewScreen(core.CeilDiv(width, r.scaleX), core.CeilDiv(height, r.scaleY))

	r.events = make(chan eventloop.Event, eventBuffer)
	r.exited = make(chan struct{})

	mouse, progOpts := screenOptions(r.opts.Flags)
	model := newSurfaceModel(NewKeyMap(r.opts.Keys), r.opts.Theme, r.scaleX, r.scaleY, mouse, r.post)
	progOpts = append(progOpts, r.opts.ProgramOptions...)

	p := tea.NewProgram(model, progOpts...)
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()

	go func() {
		defer close(r.exited)
		defer close(r.events)
		if _, err := p.Run(); err != nil {
			r.opts.Logger.Error("terminal program failed", "error", err)
		}
	}()

	r.opts.Logger.Debug("surface created",
		"cols", r.screen.Width(), "rows", r.screen.Height(),
		"scale_x", r.scaleX, "scale_y", r.scaleY)
	return r.events, nil
}

// fitScale picks the smallest scale at which the world fits the terminal.
func (r *Renderer) fitScale(width, height int) {
	cols, rows := r.opts.TermWidth, r.opts.TermHeight
	if cols <= 0 || rows <= 0 {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			r.opts.Logger.Warn("cannot read terminal size, keeping scale", "error", err)
			return
		}
		cols, rows = w, h
	}
	rows -= footerRows
	if cols <= 0 || rows <= 0 {
		return
	}
	r.scaleX = core.Max(core.CeilDiv(width, cols), 1)
	r.scaleY = core.Max(core.CeilDiv(height, rows), 1)
}

// post delivers an input event unless the renderer is closing.
func (r *Renderer) post(ev eventloop.Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Clear blanks the playfield.
func (r *Renderer) Clear() {
	if r.screen != nil {
		r.screen.Clear()
	}
}

// RenderSprite draws the sprite art with its origin at world (x, y).
// Spaces in the art are transparent.
func (r *Renderer) RenderSprite(s *sprite.Sprite, x, y int) {
	if r.screen == nil || s == nil {
		return
	}
	cx := core.FloorDiv(x, r.scaleX)
	cy := core.FloorDiv(y, r.scaleY)
	for row, line := range s.Art {
		col := 0
		for _, ch := range line {
			if ch != ' ' {
				r.screen.Set(cx+col, cy+row, ch, s.Color)
			}
			col++
		}
	}
}

// RenderHighlight marks every cell the world rectangle touches.
func (r *Renderer) RenderHighlight(rect core.Rect) {
	if r.screen == nil {
		return
	}
	x0 := core.FloorDiv(rect.X, r.scaleX)
	y0 := core.FloorDiv(rect.Y, r.scaleY)
	x1 := core.CeilDiv(rect.Right(), r.scaleX)
	y1 := core.CeilDiv(rect.Bottom(), r.scaleY)
	r.screen.Highlight(core.NewRect(x0, y0, x1-x0, y1-y0))
}

// UpdateLabel replaces the stats label.
func (r *Renderer) UpdateLabel(text string) {
	r.label = text
}

// Status replaces the status line.
func (r *Renderer) Status(text string) {
	r.status = text
}

// Frame returns the current frame as it would be presented.
func (r *Renderer) Frame() string {
	if r.screen == nil {
		return ""
	}
	if r.label != "" {
		r.screen.DrawText(r.opts.LabelX, r.opts.LabelY, r.label, core.ColorBrightWhite)
	}
	return RenderScreen(r.screen, r.opts.Theme.Highlight)
}

// Present sends the frame to the terminal.
func (r *Renderer) Present() error {
	if r.program == nil {
		return nil
	}
	select {
	case <-r.exited:
		return nil
	default:
	}
	r.program.Send(frameMsg{frame: r.Frame(), status: r.status})
	return nil
}

// Resize tells the program the terminal changed size. Used when the
// terminal is remote and its size arrives out of band.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// Close stops the program and restores the terminal. It is safe to call
// more than once.
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.program != nil {
			r.program.Quit()
			<-r.exited
		}
	})
	return nil
}
