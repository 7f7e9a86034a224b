package core

import (
	"math"
	"testing"
)

func TestVecNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero stays zero", V(0, 0), V(0, 0)},
		{"axis aligned", V(0, -7), V(0, -1)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if math.Abs(got.X-tc.want.X) > 1e-12 || math.Abs(got.Y-tc.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDistAndPolar(t *testing.T) {
	if d := Dist(V(1, 1), V(4, 5)); d != 5 {
		t.Errorf("Dist() = %f, expected 5", d)
	}

	origin := V(100, 200)
	for _, angle := range []float64{0, 1, math.Pi, 4.5} {
		p := Polar(origin, angle, 500)
		if d := Dist(origin, p); math.Abs(d-500) > 1e-9 {
			t.Errorf("Polar(angle=%f) distance = %f, expected 500", angle, d)
		}
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

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{150, 0.0, 100.0, 100.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if Clamp(-3, 0, 4) != 0 || Clamp(9, 0, 4) != 4 {
		t.Error("Clamp should bound integers to [min, max]")
	}
}
