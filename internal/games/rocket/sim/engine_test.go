package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

func TestNewEngineStartsEmpty(t *testing.T) {
	e := newTestEngine(t, 800, 600, config.DefaultRocketConfig())
	snap := e.Snapshot()

	if snap.Score != 0 || snap.GameOver {
		t.Errorf("fresh engine: score=%d over=%v", snap.Score, snap.GameOver)
	}
	if len(snap.Enemies)+len(snap.Bullets)+len(snap.Particles) != 0 {
		t.Errorf("fresh engine has entities: %d enemies, %d bullets, %d particles",
			len(snap.Enemies), len(snap.Bullets), len(snap.Particles))
	}
	if snap.Player.X != 400 || snap.Player.Y != 300 || snap.Player.Heading != 0 {
		t.Errorf("player = %+v, expected centred facing 0", snap.Player)
	}
}

func TestNewRejectsInvalidArena(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 600},
		{"negative height", 800, -1},
		{"nan", math.NaN(), 600},
		{"inf", 800, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.w, tc.h); !errors.Is(err, ErrInvalidArena) {
				t.Errorf("New(%v, %v) err = %v, expected ErrInvalidArena", tc.w, tc.h, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Player.OnCollision = "explode"
	if _, err := New(800, 600, WithConfig(cfg)); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, expected ErrInvalidConfig", err)
	}
}

func TestUpdateRejectsInvalidElapsed(t *testing.T) {
	e := newTestEngine(t, 800, 600, config.DefaultRocketConfig())
	step(t, e, 1.0/60)
	before := e.Snapshot()

	for _, dt := range []float64{-0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := e.Update(dt); !errors.Is(err, ErrInvalidElapsed) {
			t.Errorf("Update(%v) err = %v, expected ErrInvalidElapsed", dt, err)
		}
	}

	after := e.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("rejected updates mutated the engine")
	}
}

func TestUpdateZeroElapsed(t *testing.T) {
	e := newTestEngine(t, 800, 600, quietConfig())
	rep := step(t, e, 0)
	if rep.Tick != 1 {
		t.Errorf("tick = %d, expected 1", rep.Tick)
	}
	if snap := e.Snapshot(); snap.Player.X != 400 || snap.Clock != 0 {
		t.Errorf("zero-length frame moved things: %+v", snap.Player)
	}
}

func TestTogglesNormalizeNonzero(t *testing.T) {
	e := newTestEngine(t, 800, 600, quietConfig())

	e.ToggleShoot(7)
	e.ToggleBoost(-1)
	e.ToggleTurnLeft(1)
	e.ToggleTurnRight(0)
	want := Actions{Shoot: true, Boost: true, RotateLeft: true}
	if got := e.Actions(); got != want {
		t.Errorf("Actions() = %+v, expected %+v", got, want)
	}

	e.ToggleShoot(0)
	e.ToggleTurnRight(255)
	want = Actions{Boost: true, RotateLeft: true, RotateRight: true}
	if got := e.Actions(); got != want {
		t.Errorf("Actions() = %+v, expected %+v", got, want)
	}
}

func TestScenarioSingleShot(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.NoseOffset = 0
	e := newTestEngine(t, 800, 600, cfg, WithSeed(1234))

	e.ToggleShoot(1)
	rep := step(t, e, 1.0/60)
	e.ToggleShoot(0)

	if rep.Fired != 1 {
		t.Errorf("Fired = %d, expected 1", rep.Fired)
	}
	if n := len(e.state.World.Bullets); n != 1 {
		t.Fatalf("bullets = %d, expected exactly 1", n)
	}
	b := e.state.World.Bullets[0]
	if b.Pos != core.Vec(400, 300) {
		t.Errorf("bullet at %v, expected the spawn position (400, 300)", b.Pos)
	}
	if b.Vel != core.Vec(cfg.Bullets.Speed, 0) {
		t.Errorf("bullet velocity = %v, expected %v along heading 0", b.Vel, cfg.Bullets.Speed)
	}
}

func TestScenarioSingleShotFromNose(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, 800, 600, cfg)

	e.ToggleShoot(1)
	step(t, e, 1.0/60)

	snap := e.Snapshot()
	if len(snap.Bullets) != 1 {
		t.Fatalf("bullets = %d, expected 1", len(snap.Bullets))
	}
	if got := snap.Bullets[0]; got.X != 400+cfg.Player.NoseOffset || got.Y != 300 {
		t.Errorf("bullet at (%v, %v), expected the nose (%v, 300)", got.X, got.Y, 400+cfg.Player.NoseOffset)
	}
}

func TestFireCooldownCapsRate(t *testing.T) {
	cfg := quietConfig()
	cfg.Bullets.FireCooldown = 0.1
	e := newTestEngine(t, 800, 600, cfg)

	e.ToggleShoot(1)
	fired := 0
	for range 60 { // one second
		fired += step(t, e, 1.0/60).Fired
	}
	// One shot at t=0 and then at most one per 0.1s
	if fired < 9 || fired > 11 {
		t.Errorf("fired %d shots in one second with a 0.1s cooldown", fired)
	}
}

func TestScenarioBulletMeetsEnemy(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, 800, 600, cfg)
	at := core.Vec(100, 100)
	e.state.World.Enemies = append(e.state.World.Enemies, Enemy{Body: Body{Pos: at}})
	e.state.World.Bullets = append(e.state.World.Bullets, Bullet{Body: Body{Pos: at}, TTL: 1})

	rep := step(t, e, 1.0/60)

	w := e.state.World
	if len(w.Bullets) != 0 || len(w.Enemies) != 0 {
		t.Errorf("after impact: %d bullets, %d enemies, expected none", len(w.Bullets), len(w.Enemies))
	}
	if e.Score() != cfg.Scoring.PointsPerKill || rep.Kills != 1 {
		t.Errorf("score = %d kills = %d, expected %d and 1", e.Score(), rep.Kills, cfg.Scoring.PointsPerKill)
	}
	near := 0
	for _, p := range w.Particles {
		if vecNear(p.Pos, at, 1) {
			near++
		}
	}
	if near == 0 {
		t.Error("no explosion particle near the impact point")
	}
}

func TestScenarioResizeResets(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 20
	e := newTestEngine(t, 800, 600, cfg)
	e.ToggleShoot(1)
	e.ToggleBoost(1)
	for range 120 {
		step(t, e, 1.0/60)
	}
	e.state.Score += 50
	before := e.Snapshot()
	if len(before.Enemies)+len(before.Bullets)+len(before.Particles) == 0 {
		t.Fatal("engine should be populated before resizing")
	}

	r, err := e.Resize(400, 300)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	snap := r.Snapshot()
	if len(snap.Enemies) != 0 || len(snap.Bullets) != 0 || len(snap.Particles) != 0 {
		t.Errorf("resized engine has entities: %+v", snap)
	}
	if snap.Score != 0 {
		t.Errorf("resized score = %d, expected 0", snap.Score)
	}
	if snap.Width != 400 || snap.Height != 300 || snap.Player.X != 200 || snap.Player.Y != 150 {
		t.Errorf("resized arena/player = %vx%v at (%v, %v)", snap.Width, snap.Height, snap.Player.X, snap.Player.Y)
	}
	if r.Actions() != (Actions{}) {
		t.Errorf("resized engine kept controls %+v", r.Actions())
	}

	// The old engine is untouched
	if after := e.Snapshot(); after.Hash() != before.Hash() {
		t.Error("Resize mutated the original engine")
	}
}

func TestResizeRejectsInvalidArena(t *testing.T) {
	e := newTestEngine(t, 800, 600, quietConfig())
	if _, err := e.Resize(-4, 300); !errors.Is(err, ErrInvalidArena) {
		t.Errorf("err = %v, expected ErrInvalidArena", err)
	}
}

func TestResizeKeepsSeed(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 10
	a := newTestEngine(t, 800, 600, cfg, WithSeed(99))
	for range 30 {
		step(t, a, 1.0/60)
	}
	r, err := a.Resize(640, 480)
	if err != nil {
		t.Fatal(err)
	}
	fresh := newTestEngine(t, 640, 480, cfg, WithSeed(99))

	for range 120 {
		step(t, r, 1.0/60)
		step(t, fresh, 1.0/60)
	}
	rs, fs := r.Snapshot(), fresh.Snapshot()
	if rs.Hash() != fs.Hash() {
		t.Error("resized engine diverged from a fresh engine with the same seed")
	}
}

func inputAt(i int) Actions {
	return Actions{
		Shoot:       i%7 < 4,
		Boost:       i%23 < 11,
		RotateLeft:  i%31 < 8,
		RotateRight: i%17 > 12,
	}
}

func apply(e *Engine, a Actions) {
	e.SetAction(ActionShoot, a.Shoot)
	e.SetAction(ActionBoost, a.Boost)
	e.SetAction(ActionRotateLeft, a.RotateLeft)
	e.SetAction(ActionRotateRight, a.RotateRight)
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 4
	cfg.Player.OnCollision = config.OnCollisionRespawn

	e1 := newTestEngine(t, 800, 600, cfg, WithSeed(12345))
	e2 := newTestEngine(t, 800, 600, cfg, WithSeed(12345))

	for i := range 900 {
		dt := 1.0 / float64(30+i%40) // uneven frame pacing
		a := inputAt(i)
		apply(e1, a)
		apply(e2, a)
		r1 := step(t, e1, dt)
		r2 := step(t, e2, dt)
		if r1 != r2 {
			t.Fatalf("frame %d: reports differ: %+v vs %+v", i, r1, r2)
		}
		s1, s2 := e1.Snapshot(), e2.Snapshot()
		if s1.Hash() != s2.Hash() {
			t.Fatalf("frame %d: snapshots differ", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 10

	e1 := newTestEngine(t, 800, 600, cfg, WithSeed(1))
	e2 := newTestEngine(t, 800, 600, cfg, WithSeed(2))
	for range 300 {
		step(t, e1, 1.0/60)
		step(t, e2, 1.0/60)
	}
	s1, s2 := e1.Snapshot(), e2.Snapshot()
	if s1.Hash() == s2.Hash() {
		t.Error("different seeds produced identical worlds")
	}
}

func TestContainmentUnderLoad(t *testing.T) {
	for _, boundary := range []string{"wrap", "clamp"} {
		t.Run(boundary, func(t *testing.T) {
			cfg := config.DefaultRocketConfig()
			cfg.Arena.Boundary = boundary
			cfg.Enemies.SpawnRate = 8
			cfg.Player.OnCollision = config.OnCollisionSurvive
			cfg.Player.Acceleration = 2000
			cfg.Player.MaxSpeed = 900
			cfg.Debug.AssertFinite = true
			e := newTestEngine(t, 320, 200, cfg, WithSeed(7))

			for i := range 2000 {
				apply(e, inputAt(i))
				step(t, e, 1.0/float64(20+i%50))
				assertContained(t, e)
			}
		})
	}
}

func TestScoreMonotonic(t *testing.T) {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 6
	cfg.Enemies.ChaseRatio = 1
	cfg.Player.OnCollision = config.OnCollisionRespawn
	e := newTestEngine(t, 600, 400, cfg, WithSeed(3))
	e.ToggleShoot(1)
	e.ToggleTurnRight(1)

	prev := 0
	kills := 0
	for range 3000 {
		rep := step(t, e, 1.0/60)
		score := e.Score()
		if score < prev {
			t.Fatalf("score dropped from %d to %d", prev, score)
		}
		if score-prev != rep.Kills*cfg.Scoring.PointsPerKill {
			t.Fatalf("score grew by %d for %d kills", score-prev, rep.Kills)
		}
		kills += rep.Kills
		prev = score
	}
	if kills == 0 {
		t.Error("expected the spinning ship to hit something in 50 seconds")
	}
}

func TestGameOverFreezesEngine(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.OnCollision = config.OnCollisionGameOver
	e := newTestEngine(t, 800, 600, cfg)
	e.state.World.Enemies = append(e.state.World.Enemies, Enemy{Body: Body{Pos: core.Vec(400, 300)}})

	rep := step(t, e, 1.0/60)
	if !rep.GameOver || !e.GameOver() {
		t.Fatal("expected game over after the ship was hit")
	}
	frozen := e.Snapshot()

	e.ToggleBoost(1)
	rep = step(t, e, 1.0/60)
	if !rep.GameOver || rep.Tick != frozen.Tick {
		t.Errorf("update after game over: %+v", rep)
	}
	if after := e.Snapshot(); after.Hash() != frozen.Hash() {
		t.Error("engine changed after game over")
	}
}

func TestAssertFinitePanics(t *testing.T) {
	cfg := quietConfig()
	e := newTestEngine(t, 800, 600, cfg)
	e.state.World.Player.Vel = core.Vec(math.NaN(), 0)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNonFinite) {
			t.Errorf("recovered %v, expected ErrNonFinite", r)
		}
	}()
	_, _ = e.Update(1.0 / 60)
	t.Error("Update should have panicked")
}

func TestWithSourceIsUsed(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.SpawnRate = 1000
	cfg.Enemies.MaxCount = 1
	cfg.Enemies.ChaseRatio = 0.5
	// trial, candidate (200, 75), behaviour roll (drift), heading
	src := &scriptedSource{vals: []float64{0, 0.25, 0.125, 0.9, 0.25}}
	e := newTestEngine(t, 800, 600, cfg, WithSource(src))

	rep := step(t, e, 1.0/60)
	if rep.Spawned != 1 {
		t.Fatalf("spawned = %d, expected 1", rep.Spawned)
	}
	en := e.state.World.Enemies[0]
	if en.Pos != core.Vec(200, 75) || en.Behavior != BehaviorDrift {
		t.Errorf("enemy = %+v, expected drifting at (200, 75)", en)
	}
}
