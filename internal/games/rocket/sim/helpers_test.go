package sim

import (
	"testing"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// quietConfig disables spawning and difficulty so tests control every entity.
func quietConfig() config.RocketConfig {
	cfg := config.DefaultRocketConfig()
	cfg.Enemies.SpawnRate = 0
	cfg.Difficulty.Enabled = false
	cfg.Debug.AssertFinite = true
	return cfg
}

func newTestEngine(t *testing.T, w, h float64, cfg config.RocketConfig, opts ...Option) *Engine {
	t.Helper()
	e, err := New(w, h, append([]Option{WithConfig(cfg)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", w, h, err)
	}
	return e
}

func step(t *testing.T, e *Engine, dt float64) FrameReport {
	t.Helper()
	rep, err := e.Update(dt)
	if err != nil {
		t.Fatalf("Update(%v): %v", dt, err)
	}
	return rep
}

// scriptedSource replays a fixed list of values, cycling when exhausted.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *scriptedSource) Uint32() uint32 {
	return uint32(s.Float64() * (1 << 32))
}

func assertContained(t *testing.T, e *Engine) {
	t.Helper()
	size := e.Size()
	e.state.World.Each(func(k Kind, b *Body) {
		if !size.Contains(b.Pos) {
			t.Fatalf("tick %d: %s at %v escaped %vx%v arena", e.tick, k, b.Pos, size.Width, size.Height)
		}
	})
}

func vecNear(a, b core.Vector, tol float64) bool {
	return a.Distance(b) <= tol
}
