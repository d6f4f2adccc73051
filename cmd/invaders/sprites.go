package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/sprite"
)

var spritesCmd = &cobra.Command{
	Use:   "sprites",
	Short: "List the sprite table",
	Long: `Shows every sprite the client would load, from --sprites or the
built-in sheet. Sheet files are named <category>/NN-name.yaml where NN is
the id the server refers to.`,
	Run: runSprites,
}

func runSprites(cmd *cobra.Command, args []string) {
	table, err := sprite.Loader{Dir: flagSprites}.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sprites: %v\n", err)
		os.Exit(1)
	}

	sprites := table.Sorted()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range sprites {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-10s  %s\n", "ID", maxNameLen, "Name", "Category", "Size")
	fmt.Printf("  %-3s  %-*s  %-10s  %s\n", "--", maxNameLen, "----", "--------", "----")

	for _, s := range sprites {
		fmt.Printf("  %-3d  %-*s  %-10s  %dx%d\n", s.ID, maxNameLen, s.Name, s.Category, s.Width, s.Height)
	}

	fmt.Println()
	fmt.Printf("%d sprites loaded.\n", len(sprites))
}
