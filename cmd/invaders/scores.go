package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [server]",
	Short: "Show recorded scores",
	Long: `Display the top 10 scores recorded against a server (host:port), or
against every server when none is given. On a terminal an interactive
scoreboard opens unless --plain is set. --clear deletes the scores of
the given server instead.

Examples:
  invaders scores
  invaders scores localhost:7777
  invaders scores --plain localhost:7777
  invaders scores --clear localhost:7777`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain list instead of the scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores recorded against the given server")
}

func runScores(_ *cobra.Command, args []string) {
	server := ""
	if len(args) == 1 {
		server = args[0]
	}
	if err := showScores(server); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores(server string) error {
	if flagClear && server == "" {
		return fmt.Errorf("--clear needs a server (host:port)")
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		return clearScores(store, server, os.Stdout)
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, server, width, height); err != nil {
			return fmt.Errorf("running scoreboard: %w", err)
		}
		return nil
	}

	return printScores(store, server, os.Stdout)
}

// clearScores deletes the history of one server and reports how many
// entries went with it.
func clearScores(store *storage.Store, server string, w io.Writer) error {
	n, err := store.ClearScores(server)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %d score(s) for %s\n", n, server)
	return nil
}

func printScores(store *storage.Store, server string, w io.Writer) error {
	// Get top scores
	scores, err := store.TopScores(server, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := "all servers"
	if server != "" {
		title = server
	}
	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-21s  %s\n", "Rank", "Score", "Lives", "Game", "Server", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-5s  %-21s  %s\n", "----", "-----", "-----", "----", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-5d  %-21s  %s\n", i+1, entry.Score, entry.Lives, entry.GameID, entry.Server, dateStr)
	}

	if server != "" {
		if highScore, err := store.HighScore(server); err == nil {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Best: %d\n", highScore)
		}
	}
	return nil
}
