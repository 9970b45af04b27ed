package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created along with its parents
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRound(RoundResult{Score: 12, Target: 30, Outcome: OutcomeLost}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("HighScore() after reopen = %d, expected 12", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rounds := []RoundResult{
		{Score: 10, Target: 30, Outcome: OutcomeLost, Duration: 40 * time.Second},
		{Score: 30, Target: 30, Outcome: OutcomeWon, Duration: 90 * time.Second},
		{Score: 30, Target: 30, Outcome: OutcomeWon, Duration: 75 * time.Second, Player: "alice", Mode: "serve"},
		{Score: 3, Target: 30, Outcome: OutcomeAbandoned, Duration: 5 * time.Second},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	top, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(top))
	}

	// Sorted by score, then the faster round first
	if top[0].Score != 30 || top[0].Duration != 75*time.Second {
		t.Errorf("top[0] = %+v, expected the 75s win", top[0])
	}
	if top[0].Player != "alice" || top[0].Mode != "serve" {
		t.Errorf("top[0] player/mode = %q/%q, expected alice/serve", top[0].Player, top[0].Mode)
	}
	if top[1].Score != 30 || top[1].Duration != 90*time.Second {
		t.Errorf("top[1] = %+v, expected the 90s win", top[1])
	}
	if top[1].Player != "local" || top[1].Mode != "play" {
		t.Errorf("top[1] player/mode = %q/%q, expected defaults", top[1].Player, top[1].Mode)
	}
	if top[2].Score != 10 || top[2].Outcome != OutcomeLost {
		t.Errorf("top[2] = %+v, expected the lost round", top[2])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopScoresDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveRound(RoundResult{Score: i, Target: 30, Outcome: OutcomeLost}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	top, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("TopScores(0) returned %d rounds, expected 10", len(top))
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(RoundResult{Score: 1, Target: 30, Outcome: "draw"}); err == nil {
		t.Error("SaveRound() should reject an unknown outcome")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score 0 for empty history, got %d", high)
	}

	for _, score := range []int{7, 21, 4} {
		if _, err := store.SaveRound(RoundResult{Score: score, Target: 30, Outcome: OutcomeLost}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 21 {
		t.Errorf("Expected high score 21, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty Stats() = %+v", empty)
	}

	rounds := []RoundResult{
		{Score: 30, Target: 30, Outcome: OutcomeWon},
		{Score: 10, Target: 30, Outcome: OutcomeLost},
		{Score: 20, Target: 30, Outcome: OutcomeLost},
		{Score: 0, Target: 30, Outcome: OutcomeAbandoned},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 4 || stats.Wins != 1 || stats.Losses != 2 {
		t.Errorf("rounds/wins/losses = %d/%d/%d, expected 4/1/2", stats.Rounds, stats.Wins, stats.Losses)
	}
	if stats.Best != 30 {
		t.Errorf("Best = %d, expected 30", stats.Best)
	}
	if stats.AvgScore != 15 {
		t.Errorf("AvgScore = %v, expected 15", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(RoundResult{Score: 5, Target: 30, Outcome: OutcomeLost}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	top, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("Expected no rounds after clear, got %d", len(top))
	}
}
