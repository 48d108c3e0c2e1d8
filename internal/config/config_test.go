package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := ParseRocket(defaultRocketYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRocketConfig()) {
		t.Errorf("defaults/rocket.yaml drifted from DefaultRocketConfig():\n yaml: %+v\n code: %+v", cfg, DefaultRocketConfig())
	}
}

func TestLoadRocketCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rocket.yaml")
	data := []byte("arena:\n  boundary: clamp\nplayer:\n  on_collision: game_over\nscoring:\n  points_per_kill: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRocket(path)
	if err != nil {
		t.Fatalf("LoadRocket: %v", err)
	}
	if cfg.Arena.Boundary != "clamp" {
		t.Errorf("boundary = %q, expected clamp", cfg.Arena.Boundary)
	}
	if cfg.Player.OnCollision != OnCollisionGameOver {
		t.Errorf("on_collision = %q", cfg.Player.OnCollision)
	}
	if cfg.Scoring.PointsPerKill != 25 {
		t.Errorf("points_per_kill = %d, expected 25", cfg.Scoring.PointsPerKill)
	}
	// Untouched keys keep their defaults
	if cfg.Bullets.Speed != DefaultRocketConfig().Bullets.Speed {
		t.Errorf("bullets.speed = %v, expected default", cfg.Bullets.Speed)
	}
}

func TestLoadRocketCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRocket(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("bullets:\n  speed: -5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadRocket(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RocketConfig)
	}{
		{"unknown boundary", func(c *RocketConfig) { c.Arena.Boundary = "bounce" }},
		{"zero player radius", func(c *RocketConfig) { c.Player.Radius = 0 }},
		{"negative drag", func(c *RocketConfig) { c.Player.Drag = -1 }},
		{"unknown policy", func(c *RocketConfig) { c.Player.OnCollision = "explode" }},
		{"chase ratio above one", func(c *RocketConfig) { c.Enemies.ChaseRatio = 1.5 }},
		{"inverted ttl range", func(c *RocketConfig) { c.Particles.MinTTL, c.Particles.MaxTTL = 2, 1 }},
		{"negative max count", func(c *RocketConfig) { c.Enemies.MaxCount = -1 }},
		{"unknown progression", func(c *RocketConfig) { c.Difficulty.Progression.Type = "kills" }},
	}

	if err := DefaultRocketConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRocketConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestMarshalRoundTripKeepsPolicy(t *testing.T) {
	cfg := DefaultRocketConfig()
	cfg.Player.OnCollision = OnCollisionSurvive

	data, err := MarshalRocket(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseRocket(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Player.OnCollision != OnCollisionSurvive {
		t.Errorf("on_collision lost in YAML output: %q", back.Player.OnCollision)
	}
}

func TestApplyRocketPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		level      float64
		maxEnemies int
	}{
		{DifficultyEasy, true, 0.0, 15},
		{DifficultyNormal, true, 0.3, 30},
		{DifficultyHard, true, 0.7, 40},
		{DifficultyFixed, false, 0.0, 30},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRocketConfig()
			ApplyRocketPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("initial level = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Enemies.MaxCount != tc.maxEnemies {
				t.Errorf("max enemies = %d, expected %d", cfg.Enemies.MaxCount, tc.maxEnemies)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
