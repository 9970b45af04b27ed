package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/vovakirdan/space-defender/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "defender.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// resetFlags restores every global flag to its default and forgets which
// flags were set, once the test ends.
func resetFlags(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	resetFlags(t)

	flags := rootCmd.PersistentFlags()
	err := flags.Parse([]string{
		"--config", writeConfig(t, "round:\n  target_score: 12\nhazards:\n  count: 9\n"),
		"--asteroids", "7",
		"--width", "100",
		"--difficulty", "fixed",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Hazards.Count != 7 {
		t.Errorf("Hazards.Count = %d, --asteroids should override the file", cfg.Hazards.Count)
	}
	if cfg.Round.TargetScore != 12 {
		t.Errorf("TargetScore = %d, expected 12 from the file", cfg.Round.TargetScore)
	}
	if cfg.Field.Width != 400 {
		t.Errorf("Field.Width = %d, expected the 400 minimum", cfg.Field.Width)
	}
	if cfg.Difficulty.Enabled {
		t.Error("fixed difficulty should disable scaling")
	}
}

func TestLoadConfigExplicitZeroClampsToMinimum(t *testing.T) {
	resetFlags(t)

	err := rootCmd.PersistentFlags().Parse([]string{
		"--config", writeConfig(t, "round:\n  target_score: 12\nhazards:\n  count: 9\n"),
		"--target", "0",
		"--asteroids", "0",
		"--width", "0",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"target", cfg.Round.TargetScore, config.MinTargetScore},
		{"hazards", cfg.Hazards.Count, config.MinHazardCount},
		{"width", cfg.Field.Width, config.MinFieldWidth},
		{"height from defaults", cfg.Field.Height, config.DefaultDefenderConfig().Field.Height},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %d, expected %d", tc.name, tc.got, tc.expected)
		}
	}
}

func TestLoadConfigUnsetFlagsKeepFile(t *testing.T) {
	resetFlags(t)

	err := rootCmd.PersistentFlags().Parse([]string{
		"--config", writeConfig(t, "round:\n  target_score: 12\nhazards:\n  count: 9\n"),
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Round.TargetScore != 12 || cfg.Hazards.Count != 9 {
		t.Errorf("got target %d, hazards %d, expected 12 and 9 from the file", cfg.Round.TargetScore, cfg.Hazards.Count)
	}
}

func TestLoadConfigUnknownDifficultyFallsBack(t *testing.T) {
	resetFlags(t)

	flagDifficulty = "brutal"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if !cfg.Difficulty.Enabled {
		t.Error("unknown difficulty should fall back to normal, which scales with score")
	}
	if got := cfg.Difficulty.Scaling.HazardSpeedPerPoint; got != config.SpeedPerPointForPreset(config.DifficultyNormal) {
		t.Errorf("HazardSpeedPerPoint = %v, expected the normal preset", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	resetFlags(t)

	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := loadConfig(); err == nil {
		t.Error("missing custom config should be an error")
	}
}
