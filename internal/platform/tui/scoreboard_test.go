package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-defender/internal/storage"
)

func TestScoreboardLoadsHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.RoundResult{
		{Score: 12, Target: 30, Outcome: storage.OutcomeLost, Duration: 20 * time.Second},
		{Score: 30, Target: 30, Outcome: storage.OutcomeWon, Duration: 65 * time.Second, Player: "bob"},
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	rounds := m.Rounds()
	if len(rounds) != 2 || rounds[0].Score != 30 {
		t.Fatalf("Rounds() = %+v, expected the win first", rounds)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "2 rounds", "1 won", "best 30", "bob"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	// New rounds show up after a refresh.
	if _, err := store.SaveRound(storage.RoundResult{Score: 5, Target: 30, Outcome: storage.OutcomeLost}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	next, _ := m.Update(runeKey('r'))
	m = next.(ScoreboardModel)
	if len(m.Rounds()) != 3 {
		t.Errorf("after refresh got %d rounds, expected 3", len(m.Rounds()))
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("empty scoreboard should say so:\n%s", view)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q, expected %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText() = %q, expected text unchanged", got)
	}
}
