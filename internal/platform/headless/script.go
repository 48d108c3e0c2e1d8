// Package headless runs the simulation without a screen: a fixed number
// of frames at a fixed step, driven by a YAML input script.
package headless

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
)

// ErrInvalidScript is wrapped by every script validation failure.
var ErrInvalidScript = errors.New("invalid script")

// Script describes one headless run.
type Script struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Seed   uint64  `yaml:"seed"`
	DT     float64 `yaml:"dt"`
	Frames int     `yaml:"frames"`
	Inputs []Input `yaml:"inputs"`
}

// Input changes the held controls at the start of frame At (0-based).
// Releases apply before presses.
type Input struct {
	At      int      `yaml:"at"`
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
}

// DefaultScript is ten idle seconds at 60 Hz on an 800x600 arena.
func DefaultScript() Script {
	return Script{
		Width:  800,
		Height: 600,
		Seed:   sim.DefaultSeed,
		DT:     1.0 / 60,
		Frames: 600,
	}
}

// LoadScript reads a script file. Missing fields keep DefaultScript values.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes YAML over DefaultScript and validates the result.
func ParseScript(data []byte) (Script, error) {
	s := DefaultScript()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, err
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks frame counts, the step and every input entry.
func (s Script) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidScript, s.Frames)
	}
	if !(s.DT > 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidScript, s.DT)
	}
	last := -1
	for i, in := range s.Inputs {
		if in.At < 0 || in.At >= s.Frames {
			return fmt.Errorf("%w: inputs[%d]: frame %d outside [0, %d)", ErrInvalidScript, i, in.At, s.Frames)
		}
		if in.At < last {
			return fmt.Errorf("%w: inputs[%d]: frame %d before frame %d", ErrInvalidScript, i, in.At, last)
		}
		last = in.At
		for _, name := range append(append([]string(nil), in.Release...), in.Press...) {
			if _, ok := sim.ParseAction(name); !ok {
				return fmt.Errorf("%w: inputs[%d]: unknown action %q", ErrInvalidScript, i, name)
			}
		}
	}
	return nil
}
