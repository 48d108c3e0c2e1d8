package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

// fakeGame scores 10 per step and ends after endAfter steps.
type fakeGame struct {
	endAfter int
	steps    int
	resets   int
	resizes  int
	last     core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *fakeGame) Resize(int, int) {
	g.resizes++
	g.steps = 0
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			g.last.Set(a)
		}
	}
	kills := 0
	if !g.State().GameOver {
		g.steps++
		kills = 1
	}
	return core.StepResult{State: g.State(), Kills: kills}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.endAfter > 0 && g.steps >= g.endAfter}
}

func newTestModel(t *testing.T, g *fakeGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 7})
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelTickAppliesLatches(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{})
	if !g.last.Has(core.ActionBoost) {
		t.Error("held boost did not reach the game")
	}

	for range DefaultHoldTicks {
		m = update(t, m, TickMsg{})
	}
	if g.last.Has(core.ActionBoost) {
		t.Error("boost still held after the latch expired")
	}
}

func TestModelSavesRunOnceOnGameOver(t *testing.T) {
	g := &fakeGame{endAfter: 3}
	m, store := newTestModel(t, g)

	for range 6 {
		m = update(t, m, TickMsg{})
	}

	runs, err := store.TopRuns("fake", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.Score != 30 || r.Ticks != 3 || r.Seed != 7 {
		t.Errorf("saved run = %+v", r)
	}
	if r.Kills != 3 {
		t.Errorf("Kills = %d, want 3", r.Kills)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	g := &fakeGame{}
	m, store := newTestModel(t, g)

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2 (init + restart)", g.resets)
	}
	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 1 || runs[0].Score != 20 {
		t.Errorf("runs after restart = %+v", runs)
	}
}

func TestModelResizeUsesResizer(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if g.resizes != 0 {
		t.Error("same size should not rebuild the game")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resizes != 1 {
		t.Errorf("resizes = %d, want 1", g.resizes)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	back := update(t, m, runeKey('b'))
	if !back.IsGoingBack() || back.View() != "" {
		t.Error("b should leave for the menu")
	}

	quit := update(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(t, g)

	if !strings.Contains(m.View(), "fake") {
		t.Error("View() did not render the game")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorShip)
	s.DrawTextColor(2, 0, "cd", core.ColorAlert)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
