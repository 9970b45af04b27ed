package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/space-defender/internal/config"
)

// Outcome is the terminal result of a round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// RoundState is the visible round state machine: Active -> Won | Lost.
type RoundState int

const (
	RoundActive RoundState = iota
	RoundWon
	RoundLost
)

// String returns a human-readable name for the round state.
func (r RoundState) String() string {
	switch r {
	case RoundActive:
		return "active"
	case RoundWon:
		return "won"
	case RoundLost:
		return "lost"
	default:
		return "unknown"
	}
}

func roundStateOf(o Outcome) RoundState {
	switch o {
	case OutcomeWon:
		return RoundWon
	case OutcomeLost:
		return RoundLost
	default:
		return RoundActive
	}
}

// Player is the controlled entity. X is always within [HalfWidth, width-HalfWidth].
type Player struct {
	X         float64
	Y         float64
	HalfWidth float64
	Step      float64
}

// Projectile moves straight up until it leaves the field or scores a hit.
// Once inactive it is never reactivated.
type Projectile struct {
	X      float64
	Y      float64
	Speed  float64 // Field units per second
	Active bool
}

// Hazard is a circular obstacle descending through the field.
type Hazard struct {
	X      float64
	Y      float64
	Radius float64
	Speed  float64 // Field units per hazard tick, before score scaling
	Alive  bool
}

// World is the single source of truth for a round.
// Every field is guarded by Engine.mu.
type World struct {
	Player      Player
	Hazards     []Hazard
	Projectiles []Projectile

	Score   int
	Outcome Outcome
	Active  bool

	Round   int           // Number of resets, starting at 1
	Frame   uint64        // Frames integrated since construction
	Elapsed time.Duration // Integrated time in the current round

	shutdown bool
	rng      *rand.Rand
}

// State returns the round state derived from the outcome.
func (w *World) State() RoundState {
	return roundStateOf(w.Outcome)
}

// reset restores initial conditions: zero score, centered player,
// fresh hazards and no projectiles.
func (w *World) reset(cfg config.DefenderConfig) {
	w.Score = 0
	w.Outcome = OutcomeNone
	w.Active = true
	w.Round++
	w.Elapsed = 0

	w.Player = Player{
		X:         float64(cfg.Field.Width) / 2,
		Y:         cfg.PlayerY(),
		HalfWidth: cfg.Player.HalfWidth,
		Step:      cfg.Player.Step,
	}

	w.Projectiles = w.Projectiles[:0]

	if len(w.Hazards) != cfg.Hazards.Count {
		w.Hazards = make([]Hazard, cfg.Hazards.Count)
	}
	for i := range w.Hazards {
		w.respawn(i, cfg)
	}
}

// respawn gives hazard i fresh random spawn coordinates and speed.
func (w *World) respawn(i int, cfg config.DefenderConfig) {
	h := cfg.Hazards
	width := float64(cfg.Field.Width)
	top := -float64(cfg.Field.Height)

	w.Hazards[i] = Hazard{
		X:      uniform(w.rng, h.SpawnMargin, width-h.SpawnMargin),
		Y:      uniform(w.rng, top, h.SpawnTop),
		Radius: h.Radius,
		Speed:  uniform(w.rng, h.MinSpeed, h.MaxSpeed),
		Alive:  true,
	}
}

// pruneProjectiles removes inactive projectiles in place. Order is not preserved.
func (w *World) pruneProjectiles() {
	ps := w.Projectiles
	for i := 0; i < len(ps); {
		if ps[i].Active {
			i++
			continue
		}
		last := len(ps) - 1
		ps[i] = ps[last]
		ps = ps[:last]
	}
	w.Projectiles = ps
}

// finish moves an active round into a terminal outcome.
// Returns false if the round was already terminal.
func (w *World) finish(o Outcome) bool {
	if !w.Active {
		return false
	}
	w.Outcome = o
	w.Active = false
	return true
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
