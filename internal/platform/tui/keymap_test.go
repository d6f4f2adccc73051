package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapGameKey(t *testing.T) {
	km := NewKeyMap(config.DefaultClientConfig().Input.Keys)

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Key
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft},
		{"a", runeKey("a"), core.KeyLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight},
		{"d", runeKey("d"), core.KeyRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeyShoot},
		{"w", runeKey("w"), core.KeyShoot},
		{"unbound", runeKey("x"), core.KeyNone},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.GameKey(tt.msg); got != tt.expected {
				t.Errorf("GameKey(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestKeyMapQuit(t *testing.T) {
	km := NewKeyMap(config.DefaultClientConfig().Input.Keys)

	if !km.IsQuit(runeKey("q")) {
		t.Error("q should quit")
	}
	if !km.IsQuit(tea.KeyMsg{Type: tea.KeyCtrlC}) {
		t.Error("ctrl+c should quit")
	}
	if km.IsQuit(runeKey("a")) {
		t.Error("a should not quit")
	}
}

func TestKeyMapCustomBinding(t *testing.T) {
	km := NewKeyMap(config.KeyBinding{
		Left:  []string{"h"},
		Right: []string{"l"},
		Shoot: []string{"k"},
	})

	if got := km.GameKey(runeKey("h")); got != core.KeyLeft {
		t.Errorf("GameKey(h) = %v, expected %v", got, core.KeyLeft)
	}
	if got := km.GameKey(runeKey("a")); got != core.KeyNone {
		t.Errorf("GameKey(a) = %v, expected %v", got, core.KeyNone)
	}
	if help := km.Shoot.Help().Key; help != "k" {
		t.Errorf("Shoot help key = %q, expected %q", help, "k")
	}
}

func TestKeyMapSpaceHelp(t *testing.T) {
	km := NewKeyMap(config.DefaultClientConfig().Input.Keys)
	if help := km.Shoot.Help().Key; help != "space/w" {
		t.Errorf("Shoot help key = %q, expected %q", help, "space/w")
	}
}
