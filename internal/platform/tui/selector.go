package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/session"
)

// selectorModel is the Bubble Tea model for the game-id prompt.
type selectorModel struct {
	clientID int
	games    []int
	input    textinput.Model
	theme    Theme
	problem  string

	chosen   int
	ok       bool
	quitting bool
}

func newSelectorModel(clientID int, games []int, theme Theme) selectorModel {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(clientID)
	ti.Prompt = "game id> "
	ti.CharLimit = 10
	ti.Focus()

	return selectorModel{
		clientID: clientID,
		games:    games,
		input:    ti,
		theme:    theme,
	}
}

// Init implements tea.Model.
func (m selectorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the typed id, keeping the prompt open until it names
// this client or a running game.
func (m selectorModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		text = m.input.Placeholder
	}

	id, err := strconv.Atoi(text)
	if err != nil {
		m.problem = fmt.Sprintf("%q is not a number", text)
		m.input.Reset()
		return m, nil
	}
	if valid, _ := session.Choice(m.clientID, m.games, id); !valid {
		m.problem = fmt.Sprintf("%d is neither your id nor a running game", id)
		m.input.Reset()
		return m, nil
	}

	m.chosen = id
	m.ok = true
	m.quitting = true
	return m, tea.Quit
}

// View renders the prompt.
func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.PromptTitle.Render(fmt.Sprintf("You are client %d.", m.clientID)))
	b.WriteString("\n")
	b.WriteString("Games running: ")
	b.WriteString(m.theme.PromptGames.Render(joinInts(m.games)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Enter %d to start your own game, or a game id to watch it.\n\n", m.clientID))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.problem != "" {
		b.WriteString(m.theme.PromptError.Render(m.problem))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("enter: confirm  esc: leave"))
	return b.String()
}

// Selector asks for a game id with an interactive prompt.
type Selector struct {
	theme          Theme
	programOptions []tea.ProgramOption
}

// NewSelector creates a prompt-based selector. Program options direct it
// at another terminal, e.g. an SSH session.
func NewSelector(theme Theme, opts ...tea.ProgramOption) *Selector {
	return &Selector{theme: theme, programOptions: opts}
}

// Select implements session.GameSelector.
func (s *Selector) Select(clientID int, games []int) (int, bool, error) {
	p := tea.NewProgram(newSelectorModel(clientID, games, s.theme), s.programOptions...)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, fmt.Errorf("tui: game prompt: %w", err)
	}

	m, ok := finalModel.(selectorModel)
	if !ok || !m.ok {
		return 0, false, nil
	}
	return m.chosen, true, nil
}

// LineSelector reads the game id line by line, for input that is not a
// terminal. End of input declines.
type LineSelector struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLineSelector creates a selector reading from in and prompting on out.
func NewLineSelector(in io.Reader, out io.Writer) *LineSelector {
	return &LineSelector{in: bufio.NewScanner(in), out: out}
}

// Select implements session.GameSelector.
func (s *LineSelector) Select(clientID int, games []int) (int, bool, error) {
	fmt.Fprintf(s.out, "Games running: %s\n", joinInts(games))
	for {
		fmt.Fprintf(s.out, "Enter %d to start your own game, or a game id to watch it: ", clientID)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return 0, false, fmt.Errorf("tui: read game id: %w", err)
			}
			return 0, false, nil
		}

		id, err := strconv.Atoi(strings.TrimSpace(s.in.Text()))
		if err != nil {
			continue
		}
		if valid, _ := session.Choice(clientID, games, id); valid {
			return id, true, nil
		}
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
