// Package rocket adapts the rocket simulation to the arcade registry:
// it maps input frames onto the engine controls, steps it at the host
// tick rate and draws snapshots into a character screen.
package rocket

import (
	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
)

// Mode selects the ship collision policy of a registered game.
type Mode string

const (
	ModeClassic Mode = "classic" // One hit ends the run
	ModeEndless Mode = "endless" // Collisions only destroy the enemy
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// tuning is shared by every game created through the registry.
// Set it once at startup, before any game is created.
var tuning = config.DefaultRocketConfig()

// SetConfig replaces the tuning used by games created afterwards.
func SetConfig(cfg config.RocketConfig) {
	tuning = cfg
}

// Game runs one rocket engine inside the arcade platform.
type Game struct {
	mode   Mode
	cfg    config.RocketConfig
	rt     core.RuntimeConfig
	engine *sim.Engine
	snap   sim.Snapshot
	dt     float64
	paused bool
}

// New creates a classic-mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates an endless-mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("rocket", func() registry.Game {
		return New()
	})
	registry.Register("rocket_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "rocket_endless"
	}
	return "rocket"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Rocket (Endless)"
	}
	return "Rocket"
}

// Reset starts a new session sized to the screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.cfg = tuning
	switch g.mode {
	case ModeEndless:
		g.cfg.Player.OnCollision = config.OnCollisionSurvive
	default:
		g.cfg.Player.OnCollision = config.OnCollisionGameOver
	}

	tickRate := rt.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = 1 / float64(tickRate)
	g.paused = false
	g.engine = g.newEngine(rt.ScreenW, rt.ScreenH)
	g.snap = g.engine.Snapshot()
}

func (g *Game) newEngine(screenW, screenH int) *sim.Engine {
	w, h := g.ArenaSize(screenW, screenH)
	seed := sim.DefaultSeed
	if g.rt.Seed != 0 {
		seed = uint64(g.rt.Seed) //#nosec G115 -- intentional conversion for RNG seeding
	}

	e, err := sim.New(w, h, sim.WithConfig(g.cfg), sim.WithSeed(seed))
	if err != nil {
		// The arena is always positive, so only a bad tuning gets here.
		policy := g.cfg.Player.OnCollision
		g.cfg = config.DefaultRocketConfig()
		g.cfg.Player.OnCollision = policy
		e, _ = sim.New(w, h, sim.WithConfig(g.cfg), sim.WithSeed(seed))
	}
	return e
}

// ArenaSize converts a screen size in cells into arena units.
// The arena never collapses below one cell.
func (g *Game) ArenaSize(screenW, screenH int) (float64, float64) {
	cols := max(screenW, 1)
	rows := max(screenH-hudRows, 1)
	return float64(cols) * g.cfg.Arena.CellWidth, float64(rows) * g.cfg.Arena.CellHeight
}

// Resize swaps in a fresh engine for a new screen size, discarding the session.
func (g *Game) Resize(screenW, screenH int) {
	g.rt.ScreenW, g.rt.ScreenH = screenW, screenH
	if g.engine == nil {
		g.Reset(g.rt)
		return
	}
	w, h := g.ArenaSize(screenW, screenH)
	e, err := g.engine.Resize(w, h)
	if err != nil {
		return
	}
	g.engine = e
	g.snap = e.Snapshot()
}

// Step advances the engine by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.engine.SetAction(sim.ActionShoot, in.Has(core.ActionShoot))
	g.engine.SetAction(sim.ActionBoost, in.Has(core.ActionBoost))
	g.engine.SetAction(sim.ActionRotateLeft, in.Has(core.ActionTurnLeft))
	g.engine.SetAction(sim.ActionRotateRight, in.Has(core.ActionTurnRight))

	rep, err := g.engine.Update(g.dt)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	g.snap = g.engine.Snapshot()

	return core.StepResult{
		State: g.State(),
		Kills: rep.Kills,
		Hit:   rep.PlayerHits > 0,
	}
}

// State returns the host-facing status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		GameOver: g.snap.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the read-out taken after the last step.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}
