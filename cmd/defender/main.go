// defender is a terminal space defender: hazards fall, the ship shoots them down.
//
// Usage:
//
//	defender                 - Play a round (same as 'defender play')
//	defender play            - Play a round in this terminal
//	defender serve           - Start SSH server for remote play
//	defender scores          - Show the round history
//	defender simulate        - Run the engine headless with the autopilot
//	defender config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible spawns
//	--db <path>         - Set database path (default: ~/.defender/scores.db)
//	--hazards <n>       - Number of hazards (alias --asteroids, minimum 2)
//	--target <n>        - Score needed to win (minimum 1)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-defender/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagHazards    int
	flagTarget     int
	flagWidth      int
	flagHeight     int
	flagWorkers    int
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defender",
	Short: "Space Defender - shoot down falling hazards in your terminal",
	Long: `Space Defender is a concurrent arcade simulation for the terminal.
Hazards fall from the top of the field; move the ship, fire, and destroy
enough of them before any reaches the bottom.

Available commands:
  play      - Play a round in this terminal (default)
  serve     - Start SSH server for remote play
  scores    - View the round history
  simulate  - Run the engine headless with the autopilot
  config    - Print the effective configuration

Examples:
  defender
  defender play --hazards 8 --target 50
  defender play --difficulty hard
  defender serve --ssh :2222
  defender simulate --duration 30s`,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (runPlay -> loadConfig -> changedInt -> rootCmd).
	rootCmd.Run = runPlay

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.defender/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.IntVar(&flagHazards, "hazards", 0, "Number of hazards (minimum 2)")
	flags.IntVar(&flagHazards, "asteroids", 0, "Alias for --hazards")
	flags.IntVar(&flagTarget, "target", 0, "Score needed to win (minimum 1)")
	flags.IntVar(&flagWidth, "width", 0, "Field width in units (minimum 400)")
	flags.IntVar(&flagHeight, "height", 0, "Field height in units (minimum 300)")
	flags.IntVar(&flagWorkers, "workers", 0, "Hazard worker goroutines (0 = one per hazard)")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs are discarded by default)")
	flags.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies the command-line overrides.
// Only flags given on the command line override the file; their values are
// clamped to the same minimums as file values.
func loadConfig() (config.DefenderConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		newLogger(os.Stderr, "defender").Warn("falling back to normal difficulty", "error", err)
		preset = config.DifficultyNormal
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.DefenderConfig{}, err
	}

	return config.Overrides{
		HazardCount: changedInt(flagHazards, "hazards", "asteroids"),
		TargetScore: changedInt(flagTarget, "target"),
		Width:       changedInt(flagWidth, "width"),
		Height:      changedInt(flagHeight, "height"),
		Workers:     changedInt(flagWorkers, "workers"),
		Preset:      preset,
	}.Apply(cfg), nil
}

// changedInt returns &v if any of the named persistent flags was set.
func changedInt(v int, names ...string) *int {
	flags := rootCmd.PersistentFlags()
	for _, name := range names {
		if flags.Changed(name) {
			return &v
		}
	}
	return nil
}

// newLogger creates a structured logger honoring --verbose.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// logOutput returns the --log-file writer, or fallback when no file is set.
// The returned close function is always safe to call.
func logOutput(fallback io.Writer) (io.Writer, func(), error) {
	if flagLogFile == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", flagLogFile, err)
	}
	return f, func() { f.Close() }, nil
}
