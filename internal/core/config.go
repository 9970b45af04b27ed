package core

// RuntimeConfig contains terminal-side settings passed to the platform layer.
// The simulation field size lives in config.DefenderConfig; these values only
// describe the screen the field is projected onto.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Rendered frames per second (default 60)
	Seed     int64 // RNG seed for hazard spawns, 0 = time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}
