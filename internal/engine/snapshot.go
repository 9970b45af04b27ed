package engine

import "time"

// Snapshot is a read-only copy of the World sufficient to render one frame.
type Snapshot struct {
	Width   float64
	Height  float64
	BreachY float64

	Player      Player
	Hazards     []Hazard
	Projectiles []Projectile

	Score   int
	Target  int
	Outcome Outcome
	Active  bool

	Round   int
	Frame   uint64
	Elapsed time.Duration
}

// State returns the round state machine position.
func (s Snapshot) State() RoundState {
	return roundStateOf(s.Outcome)
}

// Terminal reports whether the round has ended.
func (s Snapshot) Terminal() bool {
	return s.Outcome != OutcomeNone
}

// AliveHazards returns the number of live hazards.
func (s Snapshot) AliveHazards() int {
	n := 0
	for _, h := range s.Hazards {
		if h.Alive {
			n++
		}
	}
	return n
}

// ActiveProjectiles returns the number of projectiles still in flight.
func (s Snapshot) ActiveProjectiles() int {
	n := 0
	for _, p := range s.Projectiles {
		if p.Active {
			n++
		}
	}
	return n
}

// snapshotLocked copies the World. Caller holds e.mu.
func (e *Engine) snapshotLocked() Snapshot {
	w := &e.world
	return Snapshot{
		Width:       float64(e.cfg.Field.Width),
		Height:      float64(e.cfg.Field.Height),
		BreachY:     e.cfg.BreachY(),
		Player:      w.Player,
		Hazards:     append([]Hazard(nil), w.Hazards...),
		Projectiles: append([]Projectile(nil), w.Projectiles...),
		Score:       w.Score,
		Target:      e.cfg.Round.TargetScore,
		Outcome:     w.Outcome,
		Active:      w.Active,
		Round:       w.Round,
		Frame:       w.Frame,
		Elapsed:     w.Elapsed,
	}
}
