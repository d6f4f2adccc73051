package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// KeyMap translates Bubble Tea key messages to game keys.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Shoot key.Binding
	Quit  key.Binding
	Help  key.Binding
}

// NewKeyMap builds the bindings from the configured key names.
func NewKeyMap(kb config.KeyBinding) KeyMap {
	return KeyMap{
		Left:  gameBinding(kb.Left, "move left"),
		Right: gameBinding(kb.Right, "move right"),
		Shoot: gameBinding(kb.Shoot, "shoot"),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func gameBinding(keys []string, desc string) key.Binding {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(names, "/"), desc),
	)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Shoot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Shoot},
		{k.Help, k.Quit},
	}
}

// GameKey maps a key message to a game key. Returns core.KeyNone for keys
// that are not bound.
func (k KeyMap) GameKey(msg tea.KeyMsg) core.Key {
	switch {
	case key.Matches(msg, k.Left):
		return core.KeyLeft
	case key.Matches(msg, k.Right):
		return core.KeyRight
	case key.Matches(msg, k.Shoot):
		return core.KeyShoot
	}
	return core.KeyNone
}

// IsQuit reports whether msg asks to leave the game.
func (k KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
