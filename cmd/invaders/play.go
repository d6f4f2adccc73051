package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/client"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/session"
	"github.com/vovakirdan/tui-invaders/internal/sprite"
	"github.com/vovakirdan/tui-invaders/internal/storage"
	"github.com/vovakirdan/tui-invaders/internal/transport"
)

var (
	flagFullscreen     bool
	flagFullscreenFake bool
	flagTransport      string
	flagLogFile        string
)

var playCmd = &cobra.Command{
	Use:   "play <host> <port>",
	Short: "Join a server and play or watch a game",
	Long: `Connect to an invaders server. If no game is running you start one;
otherwise you are asked for a game id: your own id starts a new game,
a running game's id lets you watch it.

Controls:
  Left/A     - Move left
  Right/D    - Move right
  Space/W    - Shoot
  Click      - List the entities under the pointer (-f/-F only)
  Q/Ctrl+C   - Quit

Display:
  (default)  - Draw inline at the configured scale
  -f         - Full screen at the configured scale
  -F         - Full screen, scale fitted to the terminal

Examples:
  invaders play localhost 7777
  invaders play -F localhost 7777
  invaders play --transport ws localhost 8080
  invaders play --log-level debug --log-file ./client.log localhost 7777`,
	Args: cobra.ExactArgs(2),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&flagFullscreen, "fullscreen", "f", false, "Full screen at the configured scale")
	playCmd.Flags().BoolVarP(&flagFullscreenFake, "fullscreen-fake", "F", false, "Full screen with the scale fitted to the terminal")
	playCmd.Flags().StringVar(&flagTransport, "transport", "tcp", "Connection transport: tcp or ws")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.invaders/client.log)")
	playCmd.MarkFlagsMutuallyExclusive("fullscreen", "fullscreen-fake")
}

func runPlay(cmd *cobra.Command, args []string) {
	host, port := args[0], args[1]

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	kind, err := transport.ParseKind(flagTransport)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := core.FlagZero
	if flagFullscreen {
		flags |= core.FlagFullscreenModeset
	}
	if flagFullscreenFake {
		flags |= core.FlagFullscreenFake
	}

	// The terminal belongs to the renderer, so logs go to a file
	logPath := flagLogFile
	if logPath == "" {
		logPath = config.UserPath("client.log")
	}
	logFile, err := openLogFile(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "invaders")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - the game still works
		store = nil
	}

	theme := tui.DefaultTheme()
	renderer := tui.NewRenderer(tui.RendererOptions{
		Flags:  flags,
		ScaleX: cfg.Render.ScaleX,
		ScaleY: cfg.Render.ScaleY,
		LabelX: cfg.Render.LabelX,
		LabelY: cfg.Render.LabelY,
		Keys:   cfg.Input.Keys,
		Theme:  theme,
		Logger: logger,
	})

	var selector session.GameSelector = tui.NewSelector(theme)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		selector = tui.NewLineSelector(os.Stdin, os.Stdout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	res, runErr := client.Run(ctx, client.Options{
		Host:      host,
		Port:      port,
		Transport: kind,
		Config:    cfg,
		Flags:     flags,
		Renderer:  renderer,
		Selector:  selector,
		Sprites:   sprite.Loader{Dir: flagSprites},
		Scores:    store,
		Logger:    logger,
	})
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		fmt.Fprintf(os.Stderr, "See %s for details.\n", logPath)
		os.Exit(1)
	}

	printSummary(res)
}

// printSummary reports how the game ended once the terminal is back.
func printSummary(res client.Result) {
	switch res.Reason {
	case client.EndServerBye:
		fmt.Println("The server ended the game.")
	case client.EndDisconnect:
		fmt.Println("The server has closed the connection.")
	}
	if res.HasStats && !res.Spectator {
		fmt.Printf("Final score: %d (lives left: %d)\n", res.Stats.Score, res.Stats.Lives)
	}
}
