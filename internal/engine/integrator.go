package engine

import (
	"time"

	"github.com/vovakirdan/space-defender/internal/core"
)

// Frame step bounds. A frame always advances projectiles by at least
// MinFrameStep and never by more than MaxFrameStep.
const (
	MinFrameStep = time.Millisecond
	MaxFrameStep = 100 * time.Millisecond
)

// Frame integrates one rendered frame and returns the snapshot to draw.
// It runs on the caller's goroutine (the render loop):
//
//  1. advance active projectiles by speed*dt, deactivating any that leave the top
//  2. prune inactive projectiles
//  3. resolve projectile/hazard overlaps, first hazard in index order wins
//  4. end the round as won once the score reaches the target
//
// Nothing is integrated while the round is terminal.
func (e *Engine) Frame(dt time.Duration) Snapshot {
	dt = min(max(dt, MinFrameStep), MaxFrameStep)

	e.mu.Lock()
	w := &e.world
	w.Frame++

	won := false
	if w.Active && !w.shutdown {
		w.Elapsed += dt
		e.advanceProjectiles(dt)
		w.pruneProjectiles()
		e.resolveCollisions()
		if w.Score >= e.cfg.Round.TargetScore {
			won = w.finish(OutcomeWon)
		}
	}

	snap := e.snapshotLocked()
	e.mu.Unlock()

	if won {
		e.logger.Info("round won", "score", snap.Score, "round", snap.Round, "elapsed", snap.Elapsed)
	}
	return snap
}

// advanceProjectiles moves every active projectile upward. Caller holds e.mu.
func (e *Engine) advanceProjectiles(dt time.Duration) {
	secs := dt.Seconds()
	for i := range e.world.Projectiles {
		p := &e.world.Projectiles[i]
		if !p.Active {
			continue
		}
		p.Y -= p.Speed * secs
		if p.Y < 0 {
			p.Active = false
		}
	}
}

// resolveCollisions scores at most one hit per projectile. Caller holds e.mu.
func (e *Engine) resolveCollisions() {
	w := &e.world
	margin := e.cfg.Projectile.CollisionMargin

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		if !p.Active {
			continue
		}
		pos := core.Vec{X: p.X, Y: p.Y}
		for j := range w.Hazards {
			h := &w.Hazards[j]
			if !h.Alive {
				continue
			}
			if core.CirclesOverlap(pos, core.Vec{X: h.X, Y: h.Y}, h.Radius+margin) {
				p.Active = false
				h.Alive = false
				w.Score++
				break
			}
		}
	}
}
