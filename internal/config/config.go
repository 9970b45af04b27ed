// Package config provides YAML-based configuration loading, minimum clamping
// and difficulty management for space defender.
package config

import "time"

// Minimums enforced by Normalize. Out-of-range values are clamped, never rejected.
const (
	MinHazardCount = 2
	MinTargetScore = 1
	MinFieldWidth  = 400
	MinFieldHeight = 300
	MinTick        = time.Millisecond
)

// DefenderConfig contains all configuration for a defender engine.
type DefenderConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Round      RoundConfig      `yaml:"round"`
	Hazards    HazardConfig     `yaml:"hazards"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectiles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`

	// Workers is the number of hazard simulator goroutines.
	// 0 runs one goroutine per hazard; N partitions hazard indices across N goroutines.
	Workers int `yaml:"workers"`
}

// FieldConfig defines the simulation bounds in field units.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RoundConfig defines the win condition.
type RoundConfig struct {
	TargetScore int `yaml:"target_score"`
}

// HazardConfig defines hazard count, size, spawn ranges and tick period.
type HazardConfig struct {
	Count        int           `yaml:"count"`
	Radius       float64       `yaml:"radius"`
	MinSpeed     float64       `yaml:"min_speed"`     // Field units per tick
	MaxSpeed     float64       `yaml:"max_speed"`     // Field units per tick
	SpawnMargin  float64       `yaml:"spawn_margin"`  // Horizontal distance kept from both side edges
	SpawnTop     float64       `yaml:"spawn_top"`     // Lowest spawn y (spawns above the field, so negative)
	BreachMargin float64       `yaml:"breach_margin"` // Breach line sits this far above the bottom edge
	Tick         time.Duration `yaml:"tick"`
}

// PlayerConfig defines the player entity and its controller tick.
type PlayerConfig struct {
	HalfWidth    float64       `yaml:"half_width"`
	Step         float64       `yaml:"step"`          // Displacement per consumed move impulse
	BottomOffset float64       `yaml:"bottom_offset"` // Player y is height - bottom_offset
	MuzzleOffset float64       `yaml:"muzzle_offset"` // Projectiles spawn this far above the player
	Tick         time.Duration `yaml:"tick"`
}

// ProjectileConfig defines projectile motion and collision reach.
type ProjectileConfig struct {
	Speed           float64 `yaml:"speed"`            // Field units per second, upward
	CollisionMargin float64 `yaml:"collision_margin"` // Added to hazard radius for the overlap test
}

// DifficultyConfig defines how score scales hazard speed and player step.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives difficulty.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which scaling stops growing, 0 = unbounded
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HazardSpeedPerPoint float64 `yaml:"hazard_speed_per_point"` // Added to hazard speed per scored point
	PlayerStepEvery     int     `yaml:"player_step_every"`      // One extra step unit per this many points
}

// BreachY returns the y coordinate at which a hazard ends the round.
func (c DefenderConfig) BreachY() float64 {
	return float64(c.Field.Height) - c.Hazards.BreachMargin
}

// PlayerY returns the fixed vertical coordinate of the player.
func (c DefenderConfig) PlayerY() float64 {
	return float64(c.Field.Height) - c.Player.BottomOffset
}

// Normalize clamps every option into its valid range and returns the result.
func (c DefenderConfig) Normalize() DefenderConfig {
	c.Field.Width = max(c.Field.Width, MinFieldWidth)
	c.Field.Height = max(c.Field.Height, MinFieldHeight)
	c.Round.TargetScore = max(c.Round.TargetScore, MinTargetScore)

	w := float64(c.Field.Width)
	h := float64(c.Field.Height)

	c.Hazards.Count = max(c.Hazards.Count, MinHazardCount)
	c.Hazards.Radius = clampF(c.Hazards.Radius, 1, h/4)
	c.Hazards.MinSpeed = max(c.Hazards.MinSpeed, 1)
	c.Hazards.MaxSpeed = max(c.Hazards.MaxSpeed, c.Hazards.MinSpeed)
	c.Hazards.SpawnMargin = clampF(c.Hazards.SpawnMargin, 0, w/2)
	c.Hazards.SpawnTop = clampF(c.Hazards.SpawnTop, -h, 0)
	c.Hazards.BreachMargin = clampF(c.Hazards.BreachMargin, 0, h/2)
	c.Hazards.Tick = max(c.Hazards.Tick, MinTick)

	c.Player.HalfWidth = clampF(c.Player.HalfWidth, 1, w/2)
	c.Player.Step = max(c.Player.Step, 1)
	c.Player.BottomOffset = clampF(c.Player.BottomOffset, 0, h/2)
	c.Player.MuzzleOffset = max(c.Player.MuzzleOffset, 0)
	c.Player.Tick = max(c.Player.Tick, MinTick)

	c.Projectile.Speed = max(c.Projectile.Speed, 1)
	c.Projectile.CollisionMargin = max(c.Projectile.CollisionMargin, 0)

	if c.Difficulty.Progression.Type == "" {
		c.Difficulty.Progression.Type = ProgressionScore
	}
	c.Difficulty.Progression.MaxAt = max(c.Difficulty.Progression.MaxAt, 0)
	c.Difficulty.Scaling.HazardSpeedPerPoint = max(c.Difficulty.Scaling.HazardSpeedPerPoint, 0)
	c.Difficulty.Scaling.PlayerStepEvery = max(c.Difficulty.Scaling.PlayerStepEvery, 0)

	c.Workers = clampWorkers(c.Workers, c.Hazards.Count)
	return c
}

// Overrides carries command-line values that take precedence over the file.
// Nil fields leave the loaded value untouched; set fields are clamped like
// any other option, so an explicit 0 becomes the minimum.
type Overrides struct {
	HazardCount *int
	TargetScore *int
	Width       *int
	Height      *int
	Workers     *int
	Preset      DifficultyPreset
}

// Apply writes the set overrides into cfg and normalizes the result.
func (o Overrides) Apply(cfg DefenderConfig) DefenderConfig {
	if o.HazardCount != nil {
		cfg.Hazards.Count = *o.HazardCount
	}
	if o.TargetScore != nil {
		cfg.Round.TargetScore = *o.TargetScore
	}
	if o.Width != nil {
		cfg.Field.Width = *o.Width
	}
	if o.Height != nil {
		cfg.Field.Height = *o.Height
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	if o.Preset != "" {
		ApplyPreset(&cfg, o.Preset)
	}
	return cfg.Normalize()
}

// clampWorkers clamps a worker count into [0, hazards].
func clampWorkers(workers, hazards int) int {
	if workers < 0 {
		return 0
	}
	return min(workers, hazards)
}
