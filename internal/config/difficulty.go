package config

import (
	"fmt"
	"math"
)

// Progression types.
const (
	ProgressionScore = "score"
	ProgressionNone  = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and means "no preset".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// SpeedPerPointForPreset returns how much hazard speed each scored point adds.
func SpeedPerPointForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.02
	case DifficultyHard:
		return 0.05
	default:
		return 0.03
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DefenderConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Scaling.HazardSpeedPerPoint = SpeedPerPointForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Hazards.MaxSpeed = cfg.Hazards.MinSpeed + 1
	case DifficultyHard:
		cfg.Hazards.MaxSpeed = cfg.Hazards.MinSpeed + 3
	}
}

// DifficultyManager calculates score-driven game parameters.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Points returns the score that counts toward scaling.
func (d *DifficultyManager) Points(score int) int {
	if !d.IsEnabled() || score < 0 {
		return 0
	}
	if d.cfg.Progression.MaxAt > 0 {
		return min(score, d.cfg.Progression.MaxAt)
	}
	return score
}

// HazardSpeed returns the per-tick hazard displacement for a base speed.
func (d *DifficultyManager) HazardSpeed(base float64, score int) float64 {
	return base + float64(d.Points(score))*d.cfg.Scaling.HazardSpeedPerPoint
}

// PlayerStep returns the per-impulse player displacement for a base step.
func (d *DifficultyManager) PlayerStep(base float64, score int) float64 {
	every := d.cfg.Scaling.PlayerStepEvery
	if every <= 0 {
		return base
	}
	return base + float64(d.Points(score)/every)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
