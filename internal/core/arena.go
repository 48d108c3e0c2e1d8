package core

import (
	"fmt"
	"math"
)

// Boundary selects what happens to an entity that leaves the arena.
type Boundary int

const (
	BoundaryWrap  Boundary = iota // Toroidal: exit one edge, re-enter the opposite one
	BoundaryClamp                 // Stop at the edge
)

// String returns the config name of the boundary policy.
func (b Boundary) String() string {
	switch b {
	case BoundaryWrap:
		return "wrap"
	case BoundaryClamp:
		return "clamp"
	default:
		return "unknown"
	}
}

// ParseBoundary converts a config name into a Boundary.
// An empty name selects wrap.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "", "wrap":
		return BoundaryWrap, nil
	case "clamp":
		return BoundaryClamp, nil
	default:
		return BoundaryWrap, fmt.Errorf("unknown boundary %q", name)
	}
}

// Size is the width × height of the arena.
type Size struct {
	Width  float64
	Height float64
}

// NewSize creates an arena size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Valid reports whether both dimensions are finite and positive.
func (s Size) Valid() bool {
	return isFinite(s.Width) && isFinite(s.Height) && s.Width > 0 && s.Height > 0
}

// Center returns the middle of the arena.
func (s Size) Center() Vector {
	return Vector{X: s.Width / 2, Y: s.Height / 2}
}

// Contains reports whether p lies in [0, width) × [0, height).
func (s Size) Contains(p Vector) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Contain maps p back into the arena under the given policy.
// hitX/hitY report whether clamping stopped the point on that axis;
// wrapping never reports a hit.
func (s Size) Contain(p Vector, b Boundary) (out Vector, hitX, hitY bool) {
	if b == BoundaryClamp {
		out.X, hitX = clampHalfOpen(p.X, s.Width)
		out.Y, hitY = clampHalfOpen(p.Y, s.Height)
		return out, hitX, hitY
	}
	return Vector{X: wrap(p.X, s.Width), Y: wrap(p.Y, s.Height)}, false, false
}

// wrap maps v into [0, limit).
func wrap(v, limit float64) float64 {
	if v >= 0 && v < limit {
		return v
	}
	m := math.Mod(v, limit)
	if m < 0 {
		m += limit
	}
	// m+limit can round up to exactly limit for tiny negative inputs
	if m >= limit {
		m = 0
	}
	return m
}

// clampHalfOpen restricts v to [0, limit).
func clampHalfOpen(v, limit float64) (float64, bool) {
	if v < 0 {
		return 0, true
	}
	if v >= limit {
		return math.Nextafter(limit, 0), true
	}
	return v, false
}
