package sim

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// spawnAttempts bounds the rejection sampling that keeps new enemies
// away from the ship.
const spawnAttempts = 8

// trailSpread is the half-angle of the exhaust cone in radians.
const trailSpread = 0.35

// FrameEvents is what one UpdateSeconds call created.
type FrameEvents struct {
	Fired   int // Bullets spawned
	Spawned int // Enemies spawned
}

// TimeController advances a world through time: input forces, integration,
// expiry and the seeded enemy spawner.
type TimeController struct {
	cfg        config.RocketConfig
	boundary   core.Boundary
	difficulty *config.DifficultyManager
	rng        Source
	clock      float64 // Simulated seconds since the session began
	trailDebt  float64 // Fractional exhaust particles carried between frames
}

// NewTimeController creates a controller drawing from rng.
func NewTimeController(cfg config.RocketConfig, boundary core.Boundary, rng Source) *TimeController {
	return &TimeController{
		cfg:        cfg,
		boundary:   boundary,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
	}
}

// Clock returns the simulated time in seconds.
func (tc *TimeController) Clock() float64 {
	return tc.clock
}

// Level returns the current difficulty level for the given score.
func (tc *TimeController) Level(score int) float64 {
	return tc.difficulty.Level(score, tc.clock)
}

// UpdateSeconds advances state by dt seconds under the given controls.
// dt must already be validated as finite and non-negative.
func (tc *TimeController) UpdateSeconds(dt float64, actions Actions, state *GameState) FrameEvents {
	var ev FrameEvents
	w := &state.World

	tc.clock += dt
	w.Player.Cooldown = max(0, w.Player.Cooldown-dt)

	tc.stepParticles(w, dt)
	tc.stepPlayer(w, dt, actions)
	tc.stepBullets(w, dt)
	if actions.Shoot && w.Player.Cooldown <= 0 {
		tc.fire(w)
		ev.Fired++
	}
	tc.stepEnemies(w, dt, state.Score)
	if tc.maybeSpawn(w, dt, state.Score) {
		ev.Spawned++
	}
	return ev
}

func (tc *TimeController) stepParticles(w *World, dt float64) {
	alive := w.Particles[:0]
	for _, p := range w.Particles {
		p.integrate(dt)
		p.contain(w.Size, tc.boundary)
		p.TTL -= dt
		if !expired(p.TTL) {
			alive = append(alive, p)
		}
	}
	clear(w.Particles[len(alive):])
	w.Particles = alive
}

func (tc *TimeController) stepPlayer(w *World, dt float64, actions Actions) {
	p := &w.Player
	cfg := tc.cfg.Player

	if actions.RotateLeft {
		p.Heading -= cfg.RotateSpeed * dt
	}
	if actions.RotateRight {
		p.Heading += cfg.RotateSpeed * dt
	}
	p.Heading = core.NormalizeAngle(p.Heading)

	forward := core.FromAngle(p.Heading)
	p.Boosting = actions.Boost
	if actions.Boost {
		p.Vel = p.Vel.Add(forward.Scale(cfg.Acceleration * dt))
		tc.emitTrail(w, dt, forward)
	} else {
		tc.trailDebt = 0
	}

	p.Vel = p.Vel.Scale(max(0, 1-cfg.Drag*dt))
	if speed := p.Vel.Len(); speed > cfg.MaxSpeed {
		p.Vel = p.Vel.Scale(cfg.MaxSpeed / speed)
	}

	p.integrate(dt)
	p.contain(w.Size, tc.boundary)
}

// emitTrail spawns exhaust particles behind the ship at trail_rate per second.
func (tc *TimeController) emitTrail(w *World, dt float64, forward core.Vector) {
	pc := tc.cfg.Particles
	tc.trailDebt += tc.cfg.Player.TrailRate * dt
	n := int(tc.trailDebt)
	tc.trailDebt -= float64(n)

	tail := w.Player.Pos.Sub(forward.Scale(tc.cfg.Player.NoseOffset))
	for range n {
		spread := between(tc.rng, -trailSpread, trailSpread)
		vel := forward.Rotate(math.Pi + spread).Scale(pc.TrailSpeed)
		ttl := pc.TrailTTL * between(tc.rng, 0.5, 1)
		part := Particle{
			Body:  Body{Pos: tail, Vel: vel, Heading: core.NormalizeAngle(vel.Angle())},
			TTL:   ttl,
			Trail: true,
		}
		part.contain(w.Size, tc.boundary)
		w.Particles = append(w.Particles, part)
	}
}

func (tc *TimeController) stepBullets(w *World, dt float64) {
	alive := w.Bullets[:0]
	for _, b := range w.Bullets {
		b.integrate(dt)
		b.contain(w.Size, tc.boundary)
		b.TTL -= dt
		if !expired(b.TTL) {
			alive = append(alive, b)
		}
	}
	clear(w.Bullets[len(alive):])
	w.Bullets = alive
}

// fire spawns a bullet at the ship's nose, moving along its heading.
func (tc *TimeController) fire(w *World) {
	p := &w.Player
	forward := core.FromAngle(p.Heading)
	b := Bullet{
		Body: Body{
			Pos:     p.Pos.Add(forward.Scale(tc.cfg.Player.NoseOffset)),
			Vel:     forward.Scale(tc.cfg.Bullets.Speed),
			Heading: p.Heading,
		},
		TTL: tc.cfg.Bullets.Lifetime,
	}
	b.contain(w.Size, tc.boundary)
	w.Bullets = append(w.Bullets, b)
	p.Cooldown = tc.cfg.Bullets.FireCooldown
}

func (tc *TimeController) stepEnemies(w *World, dt float64, score int) {
	speed := tc.difficulty.EnemySpeed(tc.cfg.Enemies.Speed, score, tc.clock)
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if e.Behavior == BehaviorChase {
			tc.aim(w, e, speed)
		}
		e.integrate(dt)
		e.contain(w.Size, tc.boundary)
	}
}

// aim points a chasing enemy at the ship. Under wrap it takes the shorter
// way around the torus.
func (tc *TimeController) aim(w *World, e *Enemy, speed float64) {
	d := w.Player.Pos.Sub(e.Pos)
	if tc.boundary == core.BoundaryWrap {
		d.X = shortest(d.X, w.Size.Width)
		d.Y = shortest(d.Y, w.Size.Height)
	}
	if d.Len() == 0 {
		return
	}
	e.Vel = d.Normalize().Scale(speed)
	e.Heading = core.NormalizeAngle(e.Vel.Angle())
}

func shortest(d, span float64) float64 {
	if d > span/2 {
		return d - span
	}
	if d < -span/2 {
		return d + span
	}
	return d
}

// maybeSpawn runs one Poisson trial: with rate λ an enemy appears within dt
// with probability 1 - e^(-λ·dt).
func (tc *TimeController) maybeSpawn(w *World, dt float64, score int) bool {
	if len(w.Enemies) >= tc.cfg.Enemies.MaxCount || dt == 0 {
		return false
	}
	rate := tc.difficulty.SpawnRate(tc.cfg.Enemies.SpawnRate, score, tc.clock)
	if rate <= 0 {
		return false
	}
	if tc.rng.Float64() >= -math.Expm1(-rate*dt) {
		return false
	}
	tc.spawnEnemy(w, score)
	return true
}

func (tc *TimeController) spawnEnemy(w *World, score int) {
	ec := tc.cfg.Enemies
	var best core.Vector
	bestDist := -1.0
	for range spawnAttempts {
		c := core.Vec(tc.rng.Float64()*w.Size.Width, tc.rng.Float64()*w.Size.Height)
		d := c.Distance(w.Player.Pos)
		if d > bestDist {
			best, bestDist = c, d
		}
		if d >= ec.SpawnGrace {
			break
		}
	}

	speed := tc.difficulty.EnemySpeed(ec.Speed, score, tc.clock)
	e := Enemy{Body: Body{Pos: best}}
	if tc.rng.Float64() < ec.ChaseRatio {
		e.Behavior = BehaviorChase
		tc.aim(w, &e, speed)
	} else {
		e.Behavior = BehaviorDrift
		e.Heading = tc.rng.Float64() * 2 * math.Pi
		e.Vel = core.FromAngle(e.Heading).Scale(speed)
	}
	e.contain(w.Size, tc.boundary)
	w.Enemies = append(w.Enemies, e)
}
