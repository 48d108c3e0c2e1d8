package headless

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
)

// Options tune a run beyond what the script says.
type Options struct {
	// Config is the simulation configuration.
	Config config.RocketConfig

	// Stream, if set, receives one msgpack-encoded snapshot every
	// StreamEvery frames (every frame when StreamEvery <= 1).
	Stream      io.Writer
	StreamEvery int

	// Logger receives per-frame events at debug level. May be nil.
	Logger *log.Logger
}

// Summary is the outcome of a run.
type Summary struct {
	Frames     int
	Clock      float64
	Score      int
	Kills      int
	Fired      int
	Spawned    int
	PlayerHits int
	Respawns   int
	GameOver   bool
	Enemies    int
	Bullets    int
	Particles  int
	Hash       uint64
}

// Run executes script and returns its summary. The run stops early when
// the game ends or ctx is cancelled; in the latter case the partial
// summary is returned with ctx's error.
func Run(ctx context.Context, script Script, opts Options) (Summary, error) {
	if err := script.Validate(); err != nil {
		return Summary{}, err
	}

	engine, err := sim.New(script.Width, script.Height,
		sim.WithConfig(opts.Config),
		sim.WithSeed(script.Seed),
	)
	if err != nil {
		return Summary{}, err
	}

	var enc *msgpack.Encoder
	if opts.Stream != nil {
		enc = msgpack.NewEncoder(opts.Stream)
	}
	every := max(opts.StreamEvery, 1)

	var sum Summary
	next := 0
	for frame := range script.Frames {
		if err := ctx.Err(); err != nil {
			return sum.finish(engine), err
		}

		for next < len(script.Inputs) && script.Inputs[next].At == frame {
			apply(engine, script.Inputs[next])
			next++
		}

		rep, err := engine.Update(script.DT)
		if err != nil {
			return sum.finish(engine), err
		}
		sum.Frames++
		sum.Kills += rep.Kills
		sum.Fired += rep.Fired
		sum.Spawned += rep.Spawned
		sum.PlayerHits += rep.PlayerHits
		if rep.Respawned {
			sum.Respawns++
		}
		if opts.Logger != nil && (rep.Kills > 0 || rep.PlayerHits > 0) {
			opts.Logger.Debug("frame", "tick", rep.Tick, "kills", rep.Kills, "hits", rep.PlayerHits)
		}

		if enc != nil && (frame%every == 0 || rep.GameOver) {
			snap := engine.Snapshot()
			if err := enc.Encode(&snap); err != nil {
				return sum.finish(engine), fmt.Errorf("headless: write snapshot: %w", err)
			}
		}
		if rep.GameOver {
			break
		}
	}
	return sum.finish(engine), nil
}

// apply releases then presses the named controls. Names were checked by Validate.
func apply(e *sim.Engine, in Input) {
	for _, name := range in.Release {
		if a, ok := sim.ParseAction(name); ok {
			e.SetAction(a, false)
		}
	}
	for _, name := range in.Press {
		if a, ok := sim.ParseAction(name); ok {
			e.SetAction(a, true)
		}
	}
}

func (s Summary) finish(e *sim.Engine) Summary {
	snap := e.Snapshot()
	s.Clock = snap.Clock
	s.Score = snap.Score
	s.GameOver = snap.GameOver
	s.Enemies = len(snap.Enemies)
	s.Bullets = len(snap.Bullets)
	s.Particles = len(snap.Particles)
	s.Hash = snap.Hash()
	return s
}

// ReadStream decodes a snapshot stream written by Run.
func ReadStream(r io.Reader) ([]sim.Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	var out []sim.Snapshot
	for {
		var snap sim.Snapshot
		if err := dec.Decode(&snap); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("headless: read snapshot %d: %w", len(out), err)
		}
		out = append(out, snap)
	}
}
