// Package sim is the rocket simulation engine: a deterministic, seeded,
// time-stepped world of one ship, enemies, bullets and particles.
//
// The engine performs no I/O, starts no goroutines and never renders.
// Hosts drive it with Update and read it back through Snapshot.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

var (
	// ErrInvalidArena is returned for non-finite or non-positive arena sizes.
	ErrInvalidArena = errors.New("sim: arena size must be finite and positive")
	// ErrInvalidElapsed is returned for negative or non-finite frame durations.
	ErrInvalidElapsed = errors.New("sim: elapsed time must be finite and non-negative")
	// ErrNonFinite is the panic value (wrapped) when debug.assert_finite catches a NaN or Inf.
	ErrNonFinite = errors.New("sim: non-finite coordinate")
)

type options struct {
	cfg    config.RocketConfig
	seed   uint64
	stream uint64
	source Source
}

// Option customizes New.
type Option func(*options)

// WithConfig replaces the default tuning.
func WithConfig(cfg config.RocketConfig) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithSeed seeds the built-in PCG32 generator.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithSource injects a random source instead of PCG32. The source is
// shared with engines produced by Resize.
func WithSource(src Source) Option {
	return func(o *options) { o.source = src }
}

// FrameReport describes what happened during one Update.
type FrameReport struct {
	Tick       uint64
	Fired      int
	Spawned    int
	Kills      int
	PlayerHits int
	Respawned  bool
	GameOver   bool
}

// Engine is one simulation session. It is not safe for concurrent use:
// callers must serialize Update, the toggles and Snapshot.
type Engine struct {
	opts       options
	state      *GameState
	actions    Actions
	rng        Source
	time       *TimeController
	collisions *CollisionsController
	tick       uint64
}

// New creates an engine for a width × height arena with the ship centred,
// no other entities and a score of zero.
func New(width, height float64, opts ...Option) (*Engine, error) {
	o := options{
		cfg:    config.DefaultRocketConfig(),
		seed:   DefaultSeed,
		stream: DefaultStream,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return newEngine(core.NewSize(width, height), o)
}

func newEngine(size core.Size, o options) (*Engine, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidArena, size.Width, size.Height)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	boundary, err := core.ParseBoundary(o.cfg.Arena.Boundary)
	if err != nil {
		return nil, err
	}

	rng := o.source
	if rng == nil {
		rng = NewPCG32(o.seed, o.stream)
	}

	return &Engine{
		opts:       o,
		state:      NewGameState(size),
		rng:        rng,
		time:       NewTimeController(o.cfg, boundary, rng),
		collisions: NewCollisionsController(o.cfg, boundary, rng),
	}, nil
}

// SetAction latches one control until it is changed again.
func (e *Engine) SetAction(a Action, on bool) {
	e.actions.Set(a, on)
}

// Actions returns the currently latched controls.
func (e *Engine) Actions() Actions {
	return e.actions
}

// ToggleShoot latches the shoot control; any nonzero value means pressed.
func (e *Engine) ToggleShoot(v int) { e.SetAction(ActionShoot, v != 0) }

// ToggleBoost latches the boost control; any nonzero value means pressed.
func (e *Engine) ToggleBoost(v int) { e.SetAction(ActionBoost, v != 0) }

// ToggleTurnLeft latches the rotate-left control; any nonzero value means pressed.
func (e *Engine) ToggleTurnLeft(v int) { e.SetAction(ActionRotateLeft, v != 0) }

// ToggleTurnRight latches the rotate-right control; any nonzero value means pressed.
func (e *Engine) ToggleTurnRight(v int) { e.SetAction(ActionRotateRight, v != 0) }

// Update advances the simulation by elapsed seconds: motion and spawning
// first, then collisions. Invalid durations are rejected before any state
// changes. Once the session is over, Update does nothing.
func (e *Engine) Update(elapsed float64) (FrameReport, error) {
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return FrameReport{Tick: e.tick}, fmt.Errorf("%w: %v", ErrInvalidElapsed, elapsed)
	}
	if e.state.GameOver {
		return FrameReport{Tick: e.tick, GameOver: true}, nil
	}

	e.tick++
	ev := e.time.UpdateSeconds(elapsed, e.actions, e.state)
	col := e.collisions.HandleCollisions(e.state)

	if e.opts.cfg.Debug.AssertFinite {
		e.assertFinite()
	}

	return FrameReport{
		Tick:       e.tick,
		Fired:      ev.Fired,
		Spawned:    ev.Spawned,
		Kills:      col.Kills,
		PlayerHits: col.PlayerHits,
		Respawned:  col.Respawned,
		GameOver:   e.state.GameOver,
	}, nil
}

func (e *Engine) assertFinite() {
	e.state.World.Each(func(k Kind, b *Body) {
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() || math.IsNaN(b.Heading) || math.IsInf(b.Heading, 0) {
			panic(fmt.Errorf("%w: %s at tick %d: pos=%v vel=%v", ErrNonFinite, k, e.tick, b.Pos, b.Vel))
		}
	})
}

// Resize returns a brand-new engine for the new arena with the same tuning
// and seed. The receiver is left untouched.
func (e *Engine) Resize(width, height float64) (*Engine, error) {
	return newEngine(core.NewSize(width, height), e.opts)
}

// Size returns the arena dimensions.
func (e *Engine) Size() core.Size {
	return e.state.World.Size
}

// Score returns the session score.
func (e *Engine) Score() int {
	return e.state.Score
}

// GameOver reports whether the game_over policy ended the session.
func (e *Engine) GameOver() bool {
	return e.state.GameOver
}

// Clock returns the simulated seconds since construction.
func (e *Engine) Clock() float64 {
	return e.time.Clock()
}

// Level returns the current difficulty level in [0, 1].
func (e *Engine) Level() float64 {
	return e.time.Level(e.state.Score)
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() config.RocketConfig {
	return e.opts.cfg
}
