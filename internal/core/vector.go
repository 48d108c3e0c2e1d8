package core

import "math"

// Vector is a 2D vector in arena units. It doubles as a position.
type Vector struct {
	X, Y float64
}

// Vec creates a vector from its components.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromAngle returns the unit vector pointing along the given heading.
// Heading 0 points along +X; positive angles turn clockwise on a y-down screen.
func FromAngle(angle float64) Vector {
	return Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k (typically a speed or Δt).
func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Len returns the magnitude.
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector with the same direction.
// The zero vector stays zero.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Rotate turns the vector by angle radians (clockwise on screen).
func (v Vector) Rotate(angle float64) Vector {
	sin, cos := math.Sincos(angle)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Distance returns the Euclidean distance between two points.
func (v Vector) Distance(o Vector) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Angle returns the heading of the vector in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// IsFinite reports whether neither component is NaN or ±Inf.
func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// NormalizeAngle maps any angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	const full = 2 * math.Pi
	a = math.Mod(a, full)
	if a < 0 {
		a += full
	}
	if a >= full {
		a = 0
	}
	return a
}

// Position is implemented by anything that sits somewhere in the arena.
type Position interface {
	Position() (x, y float64)
}

// Advance is implemented by entities that also face a direction.
type Advance interface {
	Position
	Direction() float64
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
