package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-defender/internal/autopilot"
	"github.com/vovakirdan/space-defender/internal/engine"
	"github.com/vovakirdan/space-defender/internal/platform/tui"
	"github.com/vovakirdan/space-defender/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimRounds   int
	flagSimSkill    float64
	flagSimRecord   bool
	flagSimShow     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the engine headless with the autopilot",
	Long: `Run the full concurrent engine without a terminal, steered by the autopilot.
Every finished round is logged; a summary is printed at the end.

Examples:
  defender simulate
  defender simulate --duration 1m --hazards 10
  defender simulate --rounds 5 --skill 0.7 --verbose
  defender simulate --rounds 20 --record
  defender simulate --rounds 1 --show`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 10*time.Second, "How long to run")
	simulateCmd.Flags().IntVar(&flagSimRounds, "rounds", 0, "Stop after this many rounds (0 = run for --duration)")
	simulateCmd.Flags().Float64Var(&flagSimSkill, "skill", autopilot.DefaultSkill, "Autopilot reaction chance per frame (0-1)")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save simulated rounds to the scores database")
	simulateCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final frame as plain text")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logOut, closeLog, err := logOutput(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := newLogger(logOut, "defender-sim")

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "error", err)
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
	defer cancel()

	eng := engine.New(cfg, engine.WithSeed(flagSeed), engine.WithLogger(logger))
	pilot := autopilot.New(flagSimSkill, flagSeed)

	started := time.Now()
	sum, err := autopilot.Simulate(ctx, eng, pilot, autopilot.SimOptions{
		FPS:    flagFPS,
		Rounds: flagSimRounds,
		OnRound: func(r autopilot.Round) {
			logger.Info("round finished",
				"round", r.Number,
				"outcome", r.Outcome,
				"score", r.Score,
				"elapsed", r.Elapsed.Round(time.Millisecond),
			)
			if store == nil {
				return
			}
			outcome := storage.OutcomeLost
			if r.Outcome == engine.OutcomeWon {
				outcome = storage.OutcomeWon
			}
			if _, err := store.SaveRound(storage.RoundResult{
				Player:   "autopilot",
				Mode:     "simulate",
				Score:    r.Score,
				Target:   cfg.Round.TargetScore,
				Outcome:  outcome,
				Duration: r.Elapsed,
			}); err != nil {
				logger.Warn("could not save round", "error", err)
			}
		},
	})
	if err != nil {
		logger.Error("simulation failed", "error", err)
		return
	}

	wall := time.Since(started)
	if flagSimShow {
		for _, line := range tui.FrameText(eng.Snapshot(), tui.HUD{HighScore: sum.Best()}, 80, 24) {
			fmt.Println(line)
		}
	}
	fmt.Printf("Simulated %s: %d rounds, %d won, %d lost\n",
		wall.Round(time.Millisecond), len(sum.Rounds), sum.Wins(), len(sum.Rounds)-sum.Wins())
	fmt.Printf("Best score: %d  Average: %.1f  Frames: %d (%.0f fps)\n",
		sum.Best(), sum.AvgScore(), sum.Frames, float64(sum.Frames)/wall.Seconds())
}
