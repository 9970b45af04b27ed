package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-defender/internal/core"
	"github.com/vovakirdan/space-defender/internal/engine"
	"github.com/vovakirdan/space-defender/internal/platform/tui"
	"github.com/vovakirdan/space-defender/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round in this terminal",
	Long: `Start a round in the current terminal.

Controls:
  A/Left     - Move left
  D/Right    - Move right
  W/Space    - Fire
  R          - Restart (any time)
  Q/Esc      - Quit

Difficulty options:
  easy   - Narrow hazard speed range, slow score scaling
  normal - Default speed range and scaling
  hard   - Wide hazard speed range, fast score scaling
  fixed  - No score scaling

Examples:
  defender play
  defender play --asteroids 10 --target 50
  defender play --difficulty easy
  defender play --config ./my-defender.yaml --log-file defender.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs go to a file or nowhere.
	logOut, closeLog, err := logOutput(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := newLogger(logOut, "defender")

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the round still plays
		store = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	eng := engine.New(cfg, engine.WithSeed(rt.Seed), engine.WithLogger(logger))
	runErr := tui.Run(ctx, eng, store, rt, tui.ModelOptions{
		Player: os.Getenv("USER"),
		Mode:   "play",
		Logger: logger,
	})
	stop()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
