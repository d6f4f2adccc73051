package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/eventloop"
)

// frameMsg carries a finished frame from the event loop to the program.
type frameMsg struct {
	frame  string
	status string
}

// surfaceModel is the Bubble Tea model behind a Renderer. It only displays
// frames it is sent and forwards input; all game state lives in the session.
type surfaceModel struct {
	keys  KeyMap
	help  help.Model
	theme Theme
	post  func(eventloop.Event)

	scaleX int
	scaleY int
	mouse  bool

	frame  string
	status string
}

func newSurfaceModel(keys KeyMap, theme Theme, scaleX, scaleY int, mouse bool, post func(eventloop.Event)) surfaceModel {
	h := help.New()
	h.ShowAll = false

	return surfaceModel{
		keys:   keys,
		help:   h,
		theme:  theme,
		post:   post,
		scaleX: scaleX,
		scaleY: scaleY,
		mouse:  mouse,
	}
}

// Init implements tea.Model.
func (m surfaceModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m surfaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg.frame
		m.status = msg.status

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.post(eventloop.Event{Kind: eventloop.KindResize, X: msg.Width, Y: msg.Height})
	}

	return m, nil
}

// handleKey processes keyboard input. Quitting is left to the session so
// that it can say goodbye to the server first.
func (m surfaceModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.post(eventloop.Event{Kind: eventloop.KindQuit})
		return m, nil
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if k := m.keys.GameKey(msg); k != core.KeyNone {
		m.post(eventloop.Event{Kind: eventloop.KindKey, Key: k, Dir: core.Press})
	}
	return m, nil
}

// handleMouse forwards button presses in world units. The frame must start
// at row 0, so presses are dropped unless the surface owns the screen.
func (m surfaceModel) handleMouse(msg tea.MouseMsg) {
	if !m.mouse || msg.Action != tea.MouseActionPress {
		return
	}

	var button int
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = eventloop.ButtonLeft
	case tea.MouseButtonMiddle:
		button = eventloop.ButtonMiddle
	case tea.MouseButtonRight:
		button = eventloop.ButtonRight
	default:
		return
	}

	m.post(eventloop.Event{
		Kind:   eventloop.KindClick,
		X:      msg.X * m.scaleX,
		Y:      msg.Y * m.scaleY,
		Button: button,
	})
}

// View renders the last frame, the status line and the help footer.
func (m surfaceModel) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.theme.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}
