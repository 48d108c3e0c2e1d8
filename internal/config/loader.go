package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadRocket loads the rocket tuning.
// Search order: customPath -> ~/.arcade/configs/rocket.yaml -> ./configs/rocket.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the keys it names.
// A custom path must exist and validate; the other locations are skipped when unusable.
func LoadRocket(customPath string) (RocketConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RocketConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseRocket(data)
		if err != nil {
			return RocketConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("rocket.yaml"), filepath.Join("configs", "rocket.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseRocket(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseRocket(defaultRocketYAML)
	if err != nil {
		return DefaultRocketConfig(), nil
	}
	return cfg, nil
}

// ParseRocket decodes YAML over DefaultRocketConfig and validates the result.
func ParseRocket(data []byte) (RocketConfig, error) {
	cfg := DefaultRocketConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RocketConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RocketConfig{}, err
	}
	return cfg, nil
}

// MarshalRocket renders the config as YAML.
func MarshalRocket(cfg RocketConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate rejects tunings the simulation cannot run with.
func (c RocketConfig) Validate() error {
	if _, err := core.ParseBoundary(c.Arena.Boundary); err != nil {
		return fmt.Errorf("%w: arena: %v", ErrInvalidConfig, err)
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"arena.cell_width", c.Arena.CellWidth},
		{"arena.cell_height", c.Arena.CellHeight},
		{"player.radius", c.Player.Radius},
		{"player.max_speed", c.Player.MaxSpeed},
		{"bullets.radius", c.Bullets.Radius},
		{"bullets.speed", c.Bullets.Speed},
		{"bullets.lifetime", c.Bullets.Lifetime},
		{"enemies.radius", c.Enemies.Radius},
		{"enemies.speed", c.Enemies.Speed},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"player.rotate_speed", c.Player.RotateSpeed},
		{"player.acceleration", c.Player.Acceleration},
		{"player.drag", c.Player.Drag},
		{"player.nose_offset", c.Player.NoseOffset},
		{"player.trail_rate", c.Player.TrailRate},
		{"bullets.fire_cooldown", c.Bullets.FireCooldown},
		{"enemies.spawn_rate", c.Enemies.SpawnRate},
		{"enemies.spawn_grace", c.Enemies.SpawnGrace},
		{"particles.min_speed", c.Particles.MinSpeed},
		{"particles.min_ttl", c.Particles.MinTTL},
		{"particles.trail_speed", c.Particles.TrailSpeed},
		{"particles.trail_ttl", c.Particles.TrailTTL},
		{"particles.size_factor", c.Particles.SizeFactor},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}

	switch c.Player.OnCollision {
	case OnCollisionSurvive, OnCollisionRespawn, OnCollisionGameOver:
	default:
		return fmt.Errorf("%w: unknown player.on_collision %q", ErrInvalidConfig, c.Player.OnCollision)
	}
	if c.Enemies.MaxCount < 0 || c.Particles.ExplosionCount < 0 || c.Scoring.PointsPerKill < 0 {
		return fmt.Errorf("%w: counts and points must not be negative", ErrInvalidConfig)
	}
	if c.Enemies.ChaseRatio < 0 || c.Enemies.ChaseRatio > 1 {
		return fmt.Errorf("%w: enemies.chase_ratio must be within [0, 1], got %v", ErrInvalidConfig, c.Enemies.ChaseRatio)
	}
	if c.Particles.MaxSpeed < c.Particles.MinSpeed || c.Particles.MaxTTL < c.Particles.MinTTL {
		return fmt.Errorf("%w: particle ranges must have max >= min", ErrInvalidConfig)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		return fmt.Errorf("%w: unknown difficulty.progression.type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// ApplyRocketPreset modifies the config based on a difficulty preset.
func ApplyRocketPreset(cfg *RocketConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Enemies.MaxCount = min(cfg.Enemies.MaxCount, 15)
		cfg.Bullets.FireCooldown = min(cfg.Bullets.FireCooldown, 0.08)
	case DifficultyHard:
		cfg.Enemies.ChaseRatio = max(cfg.Enemies.ChaseRatio, 0.75)
		cfg.Enemies.MaxCount = max(cfg.Enemies.MaxCount, 40)
	}
}
