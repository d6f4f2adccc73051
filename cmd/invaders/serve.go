package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

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
	flagSSHAddr     string
	flagHostKey     string
	flagGameServer  string
	flagServeTrans  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Offer the invaders client over SSH",
	Long: `Start an SSH server that gives every connection its own invaders
client, connected to the game server given by --server.

Each SSH connection gets its own session, with its own connection to the
game server. Scores are stored per-gateway (all users share the same
history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.invaders/host_key

Examples:
  invaders serve --server localhost:7777
  invaders serve --ssh :2222 --server game.example.com:7777
  invaders serve --server localhost:8080 --transport ws

Users can connect with:
  ssh localhost -p 23234

With --ssh the port in the connect hint follows the listen address.`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagGameServer, "server", "", "Game server address (host:port)")
	serveCmd.Flags().StringVar(&flagServeTrans, "transport", "tcp", "Game server transport: tcp or ws")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.MarkFlagRequired("server")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve returns instead of exiting so the deferred store close always runs.
func serve() error {
	host, port, err := net.SplitHostPort(flagGameServer)
	if err != nil {
		return fmt.Errorf("invalid --server %q: %w", flagGameServer, err)
	}

	kind, err := transport.ParseKind(flagServeTrans)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(os.Stderr, "invaders-ssh")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	play := func(ctx context.Context, r *tui.Renderer, sel session.GameSelector, sessLogger *log.Logger) error {
		_, runErr := client.Run(ctx, client.Options{
			Host:      host,
			Port:      port,
			Transport: kind,
			Config:    cfg,
			Flags:     core.FlagFullscreenFake,
			Renderer:  r,
			Selector:  sel,
			Sprites:   sprite.Loader{Dir: flagSprites},
			Scores:    store,
			Logger:    sessLogger,
		})
		return runErr
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.Render = tui.RendererOptions{
		ScaleX: cfg.Render.ScaleX,
		ScaleY: cfg.Render.ScaleY,
		LabelX: cfg.Render.LabelX,
		LabelY: cfg.Render.LabelY,
		Keys:   cfg.Input.Keys,
		Theme:  tui.DefaultTheme(),
	}
	sshCfg.Run = play
	sshCfg.Logger = logger

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting invaders SSH gateway on %s for %s\n", server.Addr(), flagGameServer)
	fmt.Printf("Connect with: %s\n", connectCommand(flagSSHAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// connectCommand returns the ssh invocation that reaches a gateway
// listening on addr. Wildcard hosts are shown as localhost.
func connectCommand(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return fmt.Sprintf("ssh %s -p %s", host, port)
}
