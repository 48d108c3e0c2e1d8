package sim

import "math"

// Snapshot is an immutable read-out of an engine, taken after Update.
// Hosts render from it; the msgpack tags define the web wire format.
type Snapshot struct {
	Tick      uint64         `msgpack:"tick"`
	Clock     float64        `msgpack:"clock"`
	Score     int            `msgpack:"score"`
	GameOver  bool           `msgpack:"over"`
	Level     float64        `msgpack:"level"`
	Width     float64        `msgpack:"w"`
	Height    float64        `msgpack:"h"`
	Player    ShipView       `msgpack:"player"`
	Enemies   []EnemyView    `msgpack:"enemies"`
	Bullets   []BulletView   `msgpack:"bullets"`
	Particles []ParticleView `msgpack:"particles"`

	// Not sent over the wire; only part of Hash.
	RNGState uint64 `msgpack:"-"`
}

// ShipView is the ship as seen by a renderer.
type ShipView struct {
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Heading  float64 `msgpack:"heading"`
	Boosting bool    `msgpack:"boost"`
}

// Position implements core.Position.
func (v ShipView) Position() (float64, float64) { return v.X, v.Y }

// Direction implements core.Advance.
func (v ShipView) Direction() float64 { return v.Heading }

// EnemyView is an enemy as seen by a renderer.
type EnemyView struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Chase bool    `msgpack:"chase"`
}

// Position implements core.Position.
func (v EnemyView) Position() (float64, float64) { return v.X, v.Y }

// BulletView is a bullet as seen by a renderer.
type BulletView struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

// Position implements core.Position.
func (v BulletView) Position() (float64, float64) { return v.X, v.Y }

// ParticleView is a particle with its render size (size_factor × ttl).
type ParticleView struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Size  float64 `msgpack:"size"`
	Trail bool    `msgpack:"trail"`
}

// Position implements core.Position.
func (v ParticleView) Position() (float64, float64) { return v.X, v.Y }

// Snapshot copies the current state out of the engine.
func (e *Engine) Snapshot() Snapshot {
	w := &e.state.World
	snap := Snapshot{
		Tick:     e.tick,
		Clock:    e.time.Clock(),
		Score:    e.state.Score,
		GameOver: e.state.GameOver,
		Level:    e.Level(),
		Width:    w.Size.Width,
		Height:   w.Size.Height,
		Player: ShipView{
			X:        w.Player.Pos.X,
			Y:        w.Player.Pos.Y,
			Heading:  w.Player.Heading,
			Boosting: w.Player.Boosting,
		},
		Enemies:   make([]EnemyView, len(w.Enemies)),
		Bullets:   make([]BulletView, len(w.Bullets)),
		Particles: make([]ParticleView, len(w.Particles)),
	}
	for i, en := range w.Enemies {
		snap.Enemies[i] = EnemyView{X: en.Pos.X, Y: en.Pos.Y, Chase: en.Behavior == BehaviorChase}
	}
	for i, b := range w.Bullets {
		snap.Bullets[i] = BulletView{X: b.Pos.X, Y: b.Pos.Y}
	}
	size := e.opts.cfg.Particles.SizeFactor
	for i, p := range w.Particles {
		snap.Particles[i] = ParticleView{X: p.Pos.X, Y: p.Pos.Y, Size: size * p.TTL, Trail: p.Trail}
	}
	if s, ok := e.rng.(interface{ State() uint64 }); ok {
		snap.RNGState = s.State()
	}
	return snap
}

// Hash folds every field into one value for determinism checks.
// Floats are hashed by their bit patterns, so equal hashes mean bit-identical state.
func (snap *Snapshot) Hash() uint64 {
	var h uint64 = 17
	mix := func(v uint64) { h = h*31 + v }
	f := func(v float64) { mix(math.Float64bits(v)) }
	b := func(v bool) {
		if v {
			mix(1)
		} else {
			mix(0)
		}
	}

	mix(snap.Tick)
	f(snap.Clock)
	mix(uint64(snap.Score)) //#nosec G115 -- hash computation
	b(snap.GameOver)
	f(snap.Width)
	f(snap.Height)
	f(snap.Player.X)
	f(snap.Player.Y)
	f(snap.Player.Heading)
	b(snap.Player.Boosting)

	mix(uint64(len(snap.Enemies))) //#nosec G115 -- hash computation
	for _, e := range snap.Enemies {
		f(e.X)
		f(e.Y)
		b(e.Chase)
	}
	mix(uint64(len(snap.Bullets))) //#nosec G115 -- hash computation
	for _, bl := range snap.Bullets {
		f(bl.X)
		f(bl.Y)
	}
	mix(uint64(len(snap.Particles))) //#nosec G115 -- hash computation
	for _, p := range snap.Particles {
		f(p.X)
		f(p.Y)
		f(p.Size)
		b(p.Trail)
	}
	mix(snap.RNGState)
	return h
}
