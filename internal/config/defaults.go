package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/rocket.yaml
var defaultRocketYAML []byte

// DefaultRocketConfig returns the built-in tuning. It mirrors
// defaults/rocket.yaml and is used when the embedded file cannot be parsed.
func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		Arena: RocketArena{
			Boundary:   "wrap",
			CellWidth:  8,
			CellHeight: 16,
		},
		Player: RocketPlayer{
			Radius:       8,
			RotateSpeed:  2 * math.Pi,
			Acceleration: 300,
			MaxSpeed:     250,
			Drag:         0.5,
			NoseOffset:   10,
			TrailRate:    20,
			OnCollision:  OnCollisionRespawn,
		},
		Bullets: RocketBullets{
			Radius:       3,
			Speed:        500,
			Lifetime:     1.5,
			FireCooldown: 0.1,
		},
		Enemies: RocketEnemies{
			Radius:     10,
			Speed:      100,
			SpawnRate:  1,
			MaxCount:   30,
			SpawnGrace: 200,
			ChaseRatio: 0.5,
		},
		Particles: RocketParticles{
			ExplosionCount: 24,
			MinSpeed:       50,
			MaxSpeed:       250,
			MinTTL:         0.3,
			MaxTTL:         1.0,
			TrailSpeed:     80,
			TrailTTL:       0.5,
			SizeFactor:     5,
		},
		Scoring: RocketScoring{
			PointsPerKill: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 180,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
				SpawnMultiplier: 2.0,
			},
		},
	}
}
