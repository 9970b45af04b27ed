package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/vovakirdan/space-defender/internal/config"
	"github.com/vovakirdan/space-defender/internal/core"
)

func TestPlayerMovesByStep(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()
	start := e.Snapshot().Player.X

	e.Dispatch(core.ActionRight)
	e.stepPlayer(ctx)
	if got := e.Snapshot().Player.X; got != start+35 {
		t.Errorf("after MoveRight X = %v, expected %v", got, start+35)
	}

	e.Dispatch(core.ActionLeft)
	e.stepPlayer(ctx)
	if got := e.Snapshot().Player.X; got != start {
		t.Errorf("after MoveLeft X = %v, expected %v", got, start)
	}
}

func TestPlayerStepGrowsWithScore(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()
	start := e.Snapshot().Player.X

	e.With(func(w *World) { w.Score = 16 })
	e.Dispatch(core.ActionRight)
	e.stepPlayer(ctx)

	if got := e.Snapshot().Player.X; got != start+37 {
		t.Errorf("X = %v, expected step 35+16/8 = 37", got-start)
	}
}

func TestPlayerClampedToField(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		e.Dispatch(core.ActionLeft)
		e.stepPlayer(ctx)
	}
	if got := e.Snapshot().Player.X; got != 40 {
		t.Errorf("leftmost X = %v, expected 40", got)
	}

	for i := 0; i < 100; i++ {
		e.Dispatch(core.ActionRight)
		e.stepPlayer(ctx)
	}
	if got := e.Snapshot().Player.X; got != 1024-40 {
		t.Errorf("rightmost X = %v, expected 984", got)
	}
}

func TestPlayerStaysInBoundsUnderRandomInput(t *testing.T) {
	e := testEngine(t, func(c *config.DefenderConfig) {
		c.Field.Width = 500
	})
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			e.Dispatch(core.ActionLeft)
		case 1:
			e.Dispatch(core.ActionRight)
		}
		if i%100 == 0 {
			e.With(func(w *World) { w.Score = rng.Intn(200) })
		}
		e.stepPlayer(ctx)

		p := e.Snapshot().Player
		if p.X < p.HalfWidth || p.X > 500-p.HalfWidth {
			t.Fatalf("step %d: X = %v outside [%v, %v]", i, p.X, p.HalfWidth, 500-p.HalfWidth)
		}
	}
}

func TestPlayerDirectionImpulsesCoalesce(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()
	start := e.Snapshot().Player.X

	e.Dispatch(core.ActionLeft)
	e.Dispatch(core.ActionRight)
	e.stepPlayer(ctx)

	if got := e.Snapshot().Player.X; got != start+35 {
		t.Errorf("X = %v, expected a single step right to %v", got, start+35)
	}

	e.stepPlayer(ctx)
	if got := e.Snapshot().Player.X; got != start+35 {
		t.Errorf("X = %v after an idle tick, impulse should have been consumed", got)
	}
}

func TestPlayerFireSpawnsOneProjectile(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()

	e.Dispatch(core.ActionFire)
	e.Dispatch(core.ActionFire)
	e.Dispatch(core.ActionFire)
	e.stepPlayer(ctx)
	e.stepPlayer(ctx)

	snap := e.Snapshot()
	if len(snap.Projectiles) != 1 {
		t.Fatalf("expected 1 projectile, got %d", len(snap.Projectiles))
	}
	p := snap.Projectiles[0]
	if p.X != snap.Player.X {
		t.Errorf("projectile X = %v, expected player X %v", p.X, snap.Player.X)
	}
	if p.Y != snap.Player.Y-24 {
		t.Errorf("projectile Y = %v, expected %v", p.Y, snap.Player.Y-24)
	}
	if !p.Active || p.Speed != 720 {
		t.Errorf("projectile = %+v, expected active at speed 720", p)
	}
}

func TestPlayerIgnoresInputWhenRoundInactive(t *testing.T) {
	e := testEngine(t, nil)
	ctx := context.Background()

	e.With(func(w *World) { w.finish(OutcomeLost) })
	start := e.Snapshot().Player.X

	e.Dispatch(core.ActionRight)
	e.Dispatch(core.ActionFire)
	if !e.stepPlayer(ctx) {
		t.Fatal("stepPlayer() should keep running while the round is terminal")
	}

	snap := e.Snapshot()
	if snap.Player.X != start {
		t.Errorf("player moved to %v in a terminal round", snap.Player.X)
	}
	if len(snap.Projectiles) != 0 {
		t.Errorf("expected no projectiles, got %d", len(snap.Projectiles))
	}
}

func TestPlayerStopsOnShutdownOrCancel(t *testing.T) {
	e := testEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if e.stepPlayer(ctx) {
		t.Error("stepPlayer() should stop on a cancelled context")
	}

	e.Shutdown()
	if e.stepPlayer(context.Background()) {
		t.Error("stepPlayer() should stop after Shutdown")
	}
}
