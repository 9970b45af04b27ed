package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/defender.yaml
var defaultDefenderYAML []byte

// DefaultDefenderConfig returns the default configuration.
func DefaultDefenderConfig() DefenderConfig {
	return DefenderConfig{
		Field: FieldConfig{
			Width:  1024,
			Height: 768,
		},
		Round: RoundConfig{
			TargetScore: 30,
		},
		Hazards: HazardConfig{
			Count:        5,
			Radius:       20,
			MinSpeed:     2,
			MaxSpeed:     4,
			SpawnMargin:  40,
			SpawnTop:     -20,
			BreachMargin: 10,
			Tick:         16 * time.Millisecond,
		},
		Player: PlayerConfig{
			HalfWidth:    40,
			Step:         35,
			BottomOffset: 40,
			MuzzleOffset: 24,
			Tick:         8 * time.Millisecond,
		},
		Projectile: ProjectileConfig{
			Speed:           720, // 12 units per frame at 60 fps
			CollisionMargin: 6,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				HazardSpeedPerPoint: 0.03,
				PlayerStepEvery:     8,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDefenderYAML
}
