// Package autopilot drives the defender from snapshots, the way a player would.
// It is used by the headless simulate command and the demo attract mode.
package autopilot

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/space-defender/internal/core"
	"github.com/vovakirdan/space-defender/internal/engine"
)

// DefaultSkill is the chance to react on a given frame (0-1, 1 = perfect).
const DefaultSkill = 0.9

// Pilot chooses actions from the latest snapshot.
type Pilot struct {
	skill float64
	rng   *rand.Rand
}

// New creates a pilot. skill is clamped to [0, 1]; seed 0 gives a fixed default sequence.
func New(skill float64, seed int64) *Pilot {
	return &Pilot{
		skill: core.ClampF(skill, 0, 1),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Target returns the index of the hazard closest to the breach line, or -1.
func Target(s engine.Snapshot) int {
	best := -1
	for i, h := range s.Hazards {
		if !h.Alive {
			continue
		}
		if best < 0 || h.Y > s.Hazards[best].Y {
			best = i
		}
	}
	return best
}

// Next returns the actions to dispatch for this frame.
// Terminal rounds yield a restart; otherwise the pilot steers under the
// lowest hazard and fires once lined up.
func (p *Pilot) Next(s engine.Snapshot) []core.Action {
	if s.Terminal() {
		return []core.Action{core.ActionRestart}
	}

	// Imperfect reaction, like a human missing a frame.
	if p.skill < 1 && p.rng.Float64() >= p.skill {
		return nil
	}

	i := Target(s)
	if i < 0 {
		return nil
	}
	h := s.Hazards[i]

	var actions []core.Action
	diff := h.X - s.Player.X
	if math.Abs(diff) > s.Player.Step/2 {
		if diff > 0 {
			actions = append(actions, core.ActionRight)
		} else {
			actions = append(actions, core.ActionLeft)
		}
	}
	// Step quantization leaves at most Step/2 of offset, within the hit radius.
	if math.Abs(diff) <= h.Radius && !inFlight(s, h) {
		actions = append(actions, core.ActionFire)
	}
	return actions
}

// inFlight reports whether a projectile is already on course for h.
func inFlight(s engine.Snapshot, h engine.Hazard) bool {
	for _, pr := range s.Projectiles {
		if pr.Active && pr.Y > h.Y && math.Abs(pr.X-h.X) <= h.Radius {
			return true
		}
	}
	return false
}
