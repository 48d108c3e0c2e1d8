// Package config provides YAML-based tuning for the rocket simulation
// and the difficulty progression shared by its game modes.
package config

import "fmt"

// RocketConfig is the full tuning of one rocket engine.
type RocketConfig struct {
	Arena      RocketArena      `yaml:"arena"`
	Player     RocketPlayer     `yaml:"player"`
	Bullets    RocketBullets    `yaml:"bullets"`
	Enemies    RocketEnemies    `yaml:"enemies"`
	Particles  RocketParticles  `yaml:"particles"`
	Scoring    RocketScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Debug      RocketDebug      `yaml:"debug"`
}

// RocketArena defines the boundary policy and the terminal cell scale.
type RocketArena struct {
	Boundary   string  `yaml:"boundary"`    // "wrap" or "clamp"
	CellWidth  float64 `yaml:"cell_width"`  // Arena units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Arena units per terminal row
}

// Player collision policies.
const (
	OnCollisionSurvive  = "survive"
	OnCollisionRespawn  = "respawn"
	OnCollisionGameOver = "game_over"
)

// RocketPlayer defines ship handling. Speeds are units/second, angles radians.
type RocketPlayer struct {
	Radius       float64 `yaml:"radius"`
	RotateSpeed  float64 `yaml:"rotate_speed"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Drag         float64 `yaml:"drag"`        // Fraction of velocity lost per second
	NoseOffset   float64 `yaml:"nose_offset"` // Bullet spawn distance ahead of the centre
	TrailRate    float64 `yaml:"trail_rate"`  // Exhaust particles per second while boosting
	OnCollision  string  `yaml:"on_collision"`
}

// RocketBullets defines projectile parameters.
type RocketBullets struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	Lifetime     float64 `yaml:"lifetime"`
	FireCooldown float64 `yaml:"fire_cooldown"`
}

// RocketEnemies defines the spawner and enemy motion.
type RocketEnemies struct {
	Radius     float64 `yaml:"radius"`
	Speed      float64 `yaml:"speed"`
	SpawnRate  float64 `yaml:"spawn_rate"` // Expected spawns per second before scaling
	MaxCount   int     `yaml:"max_count"`
	SpawnGrace float64 `yaml:"spawn_grace"` // Minimum spawn distance from the ship
	ChaseRatio float64 `yaml:"chase_ratio"` // Share of enemies that home on the ship
}

// RocketParticles defines explosion and exhaust effects.
type RocketParticles struct {
	ExplosionCount int     `yaml:"explosion_count"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	MinTTL         float64 `yaml:"min_ttl"`
	MaxTTL         float64 `yaml:"max_ttl"`
	TrailSpeed     float64 `yaml:"trail_speed"`
	TrailTTL       float64 `yaml:"trail_ttl"`
	SizeFactor     float64 `yaml:"size_factor"` // Render size = size_factor * ttl
}

// RocketScoring defines score rewards.
type RocketScoring struct {
	PointsPerKill int `yaml:"points_per_kill"`
}

// RocketDebug toggles runtime invariant checks.
type RocketDebug struct {
	AssertFinite bool `yaml:"assert_finite"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines how much a full difficulty level adds.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // Added to spawn rate at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
