package sim

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// CollisionReport summarizes one HandleCollisions call.
type CollisionReport struct {
	Kills      int  // Bullet-enemy pairs resolved
	PlayerHits int  // Enemies that touched the ship
	Respawned  bool // The respawn policy reset the ship
	GameOver   bool // The game_over policy ended the session
}

// CollisionsController detects and resolves bullet-enemy and ship-enemy contacts.
type CollisionsController struct {
	cfg      config.RocketConfig
	boundary core.Boundary
	rng      Source
}

// NewCollisionsController creates a controller drawing explosion debris from rng.
func NewCollisionsController(cfg config.RocketConfig, boundary core.Boundary, rng Source) *CollisionsController {
	return &CollisionsController{cfg: cfg, boundary: boundary, rng: rng}
}

// Collides reports whether two circles touch: dist(a, b) <= ra + rb.
func Collides(a, b core.Vector, ra, rb float64) bool {
	return a.Distance(b) <= ra+rb
}

// Radius returns the collision radius of a kind. Particles never collide.
func (cc *CollisionsController) Radius(k Kind) float64 {
	switch k {
	case KindPlayer:
		return cc.cfg.Player.Radius
	case KindEnemy:
		return cc.cfg.Enemies.Radius
	case KindBullet:
		return cc.cfg.Bullets.Radius
	default:
		return 0
	}
}

// HandleCollisions resolves every contact in the current positions.
//
// Bullets are processed in order and each destroys at most one enemy: the
// first live one it touches in enemy order. Enemies touching the ship are
// destroyed afterwards, then the player.on_collision policy is applied once.
func (cc *CollisionsController) HandleCollisions(state *GameState) CollisionReport {
	var rep CollisionReport
	w := &state.World
	if len(w.Enemies) == 0 {
		return rep
	}

	dead := make([]bool, len(w.Enemies))
	rb, re, rp := cc.Radius(KindBullet), cc.Radius(KindEnemy), cc.Radius(KindPlayer)

	bullets := w.Bullets[:0]
	for _, b := range w.Bullets {
		hit := -1
		for i := range w.Enemies {
			if !dead[i] && Collides(b.Pos, w.Enemies[i].Pos, rb, re) {
				hit = i
				break
			}
		}
		if hit < 0 {
			bullets = append(bullets, b)
			continue
		}
		dead[hit] = true
		cc.explode(w, midpoint(b.Pos, w.Enemies[hit].Pos))
		state.Score += cc.cfg.Scoring.PointsPerKill
		rep.Kills++
	}
	clear(w.Bullets[len(bullets):])
	w.Bullets = bullets

	for i := range w.Enemies {
		if !dead[i] && Collides(w.Player.Pos, w.Enemies[i].Pos, rp, re) {
			dead[i] = true
			cc.explode(w, w.Enemies[i].Pos)
			rep.PlayerHits++
		}
	}

	enemies := w.Enemies[:0]
	for i, e := range w.Enemies {
		if !dead[i] {
			enemies = append(enemies, e)
		}
	}
	clear(w.Enemies[len(enemies):])
	w.Enemies = enemies

	if rep.PlayerHits > 0 {
		switch cc.cfg.Player.OnCollision {
		case config.OnCollisionRespawn:
			w.respawn()
			rep.Respawned = true
		case config.OnCollisionGameOver:
			state.GameOver = true
			rep.GameOver = true
		}
	}
	return rep
}

// explode scatters debris particles from at in random directions.
func (cc *CollisionsController) explode(w *World, at core.Vector) {
	pc := cc.cfg.Particles
	for range pc.ExplosionCount {
		heading := cc.rng.Float64() * 2 * math.Pi
		speed := between(cc.rng, pc.MinSpeed, pc.MaxSpeed)
		p := Particle{
			Body: Body{
				Pos:     at,
				Vel:     core.FromAngle(heading).Scale(speed),
				Heading: heading,
			},
			TTL: between(cc.rng, pc.MinTTL, pc.MaxTTL),
		}
		p.contain(w.Size, cc.boundary)
		w.Particles = append(w.Particles, p)
	}
}

func midpoint(a, b core.Vector) core.Vector {
	return a.Add(b).Scale(0.5)
}
