package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/space-defender/internal/config"
)

// frameDT is one frame at 60 fps: projectiles move 11.52 units at the default speed.
const frameDT = 16 * time.Millisecond

func testEngine(t *testing.T, mutate func(cfg *config.DefenderConfig)) *Engine {
	t.Helper()

	cfg := config.DefaultDefenderConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e := New(cfg, WithSeed(42))
	t.Cleanup(e.Shutdown)
	return e
}

// parkHazards moves every hazard well away from the player's firing line.
func parkHazards(w *World) {
	for i := range w.Hazards {
		w.Hazards[i].X = 60
		w.Hazards[i].Y = -300
		w.Hazards[i].Alive = true
	}
}

// checkSpawnRanges verifies every hazard sits inside its configured spawn window.
func checkSpawnRanges(t *testing.T, cfg config.DefenderConfig, hazards []Hazard) {
	t.Helper()

	width := float64(cfg.Field.Width)
	top := -float64(cfg.Field.Height)
	for i, h := range hazards {
		if !h.Alive {
			t.Errorf("hazard %d should be alive", i)
		}
		if h.X < cfg.Hazards.SpawnMargin || h.X > width-cfg.Hazards.SpawnMargin {
			t.Errorf("hazard %d X = %v, outside [%v, %v]", i, h.X, cfg.Hazards.SpawnMargin, width-cfg.Hazards.SpawnMargin)
		}
		if h.Y < top || h.Y > cfg.Hazards.SpawnTop {
			t.Errorf("hazard %d Y = %v, outside [%v, %v]", i, h.Y, top, cfg.Hazards.SpawnTop)
		}
		if h.Speed < cfg.Hazards.MinSpeed || h.Speed > cfg.Hazards.MaxSpeed {
			t.Errorf("hazard %d Speed = %v, outside [%v, %v]", i, h.Speed, cfg.Hazards.MinSpeed, cfg.Hazards.MaxSpeed)
		}
		if h.Radius != cfg.Hazards.Radius {
			t.Errorf("hazard %d Radius = %v, expected %v", i, h.Radius, cfg.Hazards.Radius)
		}
	}
}

// waitFor polls cond until it holds or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out after %v waiting for %s", timeout, what)
}
