package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVectorArithmetic(t *testing.T) {
	a := Vec(3, 4)
	b := Vec(1, -2)

	if got := a.Add(b); got != Vec(4, 2) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != Vec(2, 6) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(0.5); got != Vec(1.5, 2) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v, expected 5", got)
	}
	if got := Vec(0, 0).Distance(a); got != 5 {
		t.Errorf("Distance = %v, expected 5", got)
	}
}

func TestVectorNormalize(t *testing.T) {
	n := Vec(10, 0).Normalize()
	if !near(n.X, 1) || !near(n.Y, 0) {
		t.Errorf("Normalize(10,0) = %v", n)
	}
	if z := (Vector{}).Normalize(); z != (Vector{}) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestFromAngleHeadings(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Vector
	}{
		{"east", 0, Vec(1, 0)},
		{"south on screen", math.Pi / 2, Vec(0, 1)},
		{"west", math.Pi, Vec(-1, 0)},
		{"north on screen", 3 * math.Pi / 2, Vec(0, -1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromAngle(tc.angle)
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Errorf("FromAngle(%v) = %v, expected %v", tc.angle, got, tc.want)
			}
		})
	}
}

func TestVectorRotate(t *testing.T) {
	got := Vec(1, 0).Rotate(math.Pi / 2)
	if !near(got.X, 0) || !near(got.Y, 1) {
		t.Errorf("Rotate quarter turn = %v, expected (0,1)", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-1e-18, 0},
	}
	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if !near(got, tc.want) {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.want)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", tc.in, got)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !Vec(1, 2).IsFinite() {
		t.Error("(1,2) should be finite")
	}
	if Vec(math.NaN(), 0).IsFinite() || Vec(0, math.Inf(-1)).IsFinite() {
		t.Error("NaN/Inf components should not be finite")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp int above = %d", got)
	}
	if got := Clamp(-5.5, 0.0, 10.0); got != 0 {
		t.Errorf("Clamp float below = %v", got)
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp = %v, expected 3", got)
	}
}
