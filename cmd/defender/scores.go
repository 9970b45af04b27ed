package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-defender/internal/platform/tui"
	"github.com/vovakirdan/space-defender/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the round history",
	Long: `Display the best rounds and overall statistics.

Examples:
  defender scores
  defender scores --limit 25
  defender scores --tui
  defender scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the whole history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRounds(); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rounds, err := store.TopScores(flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Space Defender")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'defender play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-9s  %-8s  %-12s  %s\n", "Rank", "Score", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-9s  %-8s  %-12s  %s\n", "----", "-----", "------", "----", "------", "----")
	for i, r := range rounds {
		fmt.Printf("  %-4d  %-7s  %-9s  %-8s  %-12s  %s\n",
			i+1,
			fmt.Sprintf("%d/%d", r.Score, r.Target),
			r.Outcome,
			r.Duration.Round(100*time.Millisecond),
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Best: %d  Average: %.1f\n",
			stats.Rounds, stats.Wins, stats.Losses, stats.Best, stats.AvgScore)
	}
}
