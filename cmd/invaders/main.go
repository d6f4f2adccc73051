// invaders is a terminal client for a networked space-invaders server.
//
// Usage:
//
//	invaders play <host> <port>   - Join or watch a game
//	invaders serve --server h:p   - Offer the client over SSH
//	invaders scores [server]      - Show recorded scores
//	invaders sprites              - List the sprite table
//
// Global flags:
//
//	--config <path>     - Client config YAML (default: search order)
//	--sprites <dir>     - Sprite sheet directory (default: built-in)
//	--db <path>         - Scores database (default: ~/.invaders/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	// Global flags
	flagConfig   string
	flagSprites  string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "invaders",
	Short:   "Invaders - play networked space invaders in your terminal",
	Version: Version,
	Long: `Invaders is a terminal client for a space-invaders game server.
The server runs the game; the client draws what it is told and sends
your key presses back.

Available commands:
  play     - Join a server and play or watch a game
  serve    - Offer the client to SSH users
  scores   - View recorded scores
  sprites  - List the sprite table

Examples:
  invaders play localhost 7777
  invaders play -F game.example.com 7777
  invaders serve --server localhost:7777
  invaders scores localhost:7777`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to client config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSprites, "sprites", "", "Sprite sheet directory (built-in sheet if empty)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(spritesCmd)
}

// newLogger creates the logger every command passes down.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
