package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/space-defender/internal/core"
)

// runPlayer is the player controller goroutine. It ticks faster than the
// hazards so input feels responsive.
func (e *Engine) runPlayer(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.Player.Tick)
	defer ticker.Stop()

	e.logger.Debug("player controller started")
	defer e.logger.Debug("player controller stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !e.stepPlayer(ctx) {
			return
		}
	}
}

// stepPlayer consumes pending impulses under the lock.
// Returns false once shutdown was requested or ctx is done.
func (e *Engine) stepPlayer(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	w := &e.world
	if w.shutdown || ctx.Err() != nil {
		return false
	}
	if !w.Active {
		return true
	}

	p := &w.Player
	if dir := e.input.TakeDirection(); dir != 0 {
		step := e.diff.PlayerStep(p.Step, w.Score)
		p.X = core.ClampF(p.X+float64(dir)*step, p.HalfWidth, float64(e.cfg.Field.Width)-p.HalfWidth)
	}

	if e.input.TakeFire() {
		w.Projectiles = append(w.Projectiles, Projectile{
			X:      p.X,
			Y:      p.Y - e.cfg.Player.MuzzleOffset,
			Speed:  e.cfg.Projectile.Speed,
			Active: true,
		})
	}
	return true
}
