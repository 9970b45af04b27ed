package engine

import (
	"context"
	"time"
)

// runHazards is one hazard simulator goroutine. It owns the given hazard
// indices: only this goroutine advances or respawns them.
func (e *Engine) runHazards(ctx context.Context, worker int, indices []int) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.Hazards.Tick)
	defer ticker.Stop()

	e.logger.Debug("hazard worker started", "worker", worker, "hazards", indices)
	defer e.logger.Debug("hazard worker stopped", "worker", worker)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		running, breach := e.stepHazards(ctx, indices)
		if breach >= 0 {
			e.logger.Info("round lost", "hazard", breach)
		}
		if !running {
			return
		}
	}
}

// stepHazards performs one locked tick for the given hazards.
// running is false once shutdown was requested or ctx is done; breach is the
// index of the hazard that crossed the boundary this tick, or -1.
func (e *Engine) stepHazards(ctx context.Context, indices []int) (running bool, breach int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	breach = -1
	if e.world.shutdown || ctx.Err() != nil {
		return false, breach
	}
	if !e.world.Active {
		return true, breach
	}

	for _, i := range indices {
		if e.stepHazard(i) {
			breach = i
			break
		}
	}
	return true, breach
}

// stepHazard advances or respawns hazard i. Caller holds e.mu and has checked
// that the round is active. Returns true if the hazard ended the round.
func (e *Engine) stepHazard(i int) bool {
	w := &e.world
	h := &w.Hazards[i]

	if !h.Alive {
		w.respawn(i, e.cfg)
		return false
	}

	h.Y += e.diff.HazardSpeed(h.Speed, w.Score)
	if h.Y >= e.cfg.BreachY() {
		return w.finish(OutcomeLost)
	}
	return false
}
