package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of everything drawn around the playfield.
type Theme struct {
	// Playfield
	Highlight lipgloss.Style // Applied on top of the sprite color

	// Status area
	Status lipgloss.Style
	Help   lipgloss.Style

	// Game selector
	PromptTitle lipgloss.Style
	PromptGames lipgloss.Style
	PromptError lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Highlight: lipgloss.NewStyle().Reverse(true),

		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PromptTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		PromptGames: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		PromptError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}
