package rocket

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

// useTuning swaps the package tuning for the duration of a test.
func useTuning(t *testing.T, cfg config.RocketConfig) {
	t.Helper()
	prev := tuning
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
}

// swarm makes chasing enemies appear right next to the ship.
func swarm() config.RocketConfig {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 5
	cfg.Enemies.ChaseRatio = 1
	cfg.Enemies.SpawnGrace = 0
	return cfg
}

func inputFor(i int) core.InputFrame {
	in := core.NewInputFrame()
	if i%5 < 3 {
		in.Set(core.ActionShoot)
	}
	if i%40 < 15 {
		in.Set(core.ActionBoost)
	}
	if i%60 < 20 {
		in.Set(core.ActionTurnLeft)
	}
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"rocket", "rocket_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	g1, g2 := New(), New()
	g1.Reset(testRuntime())
	g2.Reset(testRuntime())

	for i := range 600 {
		in := inputFor(i)
		r1 := g1.Step(in)
		r2 := g2.Step(in)
		if r1 != r2 {
			t.Fatalf("tick %d: results differ: %+v vs %+v", i, r1, r2)
		}
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
}

func TestResetSizesArenaToScreen(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	snap := g.Snapshot()
	cfg := config.DefaultRocketConfig()
	if snap.Width != 80*cfg.Arena.CellWidth || snap.Height != 23*cfg.Arena.CellHeight {
		t.Errorf("arena = %vx%v", snap.Width, snap.Height)
	}
	if st := g.State(); st.Score != 0 || st.GameOver || st.Paused {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestPauseToggle(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if !g.Step(pause).State.Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	g.Step(inputFor(0))
	if after := g.Snapshot(); after.Hash() != before.Hash() {
		t.Error("simulation advanced while paused")
	}

	if g.Step(pause).State.Paused {
		t.Error("expected resumed")
	}
}

func TestClassicModeEndsOnHit(t *testing.T) {
	useTuning(t, swarm())
	g := New()
	g.Reset(testRuntime())

	for range 60 * 60 {
		if g.Step(core.NewInputFrame()).State.GameOver {
			return
		}
	}
	t.Error("a motionless ship in a swarm of chasers should be hit within a minute")
}

func TestEndlessModeSurvives(t *testing.T) {
	useTuning(t, swarm())
	g := NewEndless()
	g.Reset(testRuntime())

	hits := 0
	for range 60 * 30 {
		res := g.Step(core.NewInputFrame())
		if res.State.GameOver {
			t.Fatal("endless mode must never end")
		}
		if res.Hit {
			hits++
		}
	}
	if hits == 0 {
		t.Error("expected the swarm to ram the ship at least once")
	}
}

func TestResizeStartsFreshSession(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	for i := range 300 {
		g.Step(inputFor(i))
	}

	g.Resize(100, 30)
	snap := g.Snapshot()
	cfg := config.DefaultRocketConfig()
	if snap.Width != 100*cfg.Arena.CellWidth || snap.Height != 29*cfg.Arena.CellHeight {
		t.Errorf("arena after resize = %vx%v", snap.Width, snap.Height)
	}
	if snap.Score != 0 || len(snap.Bullets) != 0 || len(snap.Enemies) != 0 || len(snap.Particles) != 0 {
		t.Errorf("resize kept state: score=%d bullets=%d enemies=%d particles=%d",
			snap.Score, len(snap.Bullets), len(snap.Enemies), len(snap.Particles))
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{3 * math.Pi / 2, '↑'},
		{-math.Pi / 4, '↗'},
		{2*math.Pi - 0.1, '→'},
	}
	for _, tc := range tests {
		if got := ShipGlyph(tc.heading); got != tc.want {
			t.Errorf("ShipGlyph(%v) = %q, expected %q", tc.heading, got, tc.want)
		}
	}
}

func TestRenderDrawsShipAndHUD(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	// Ship starts centred: column 40, row 1 + 11
	if c := screen.GetCell(40, 12); c.Rune != '→' || c.Color != core.ColorShip {
		t.Errorf("ship cell = %+v, expected a ship arrow", c)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 4, TickRate: 60})
	screen := core.NewScreen(10, 4)

	g.Render(screen)

	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected a too-small notice, got %q", screen.String())
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	useTuning(t, swarm())
	g := New()
	g.Reset(testRuntime())
	for range 60 * 60 {
		if g.Step(core.NewInputFrame()).State.GameOver {
			break
		}
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}
