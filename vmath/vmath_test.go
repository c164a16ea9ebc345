package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"Zero vector", Vec2{0, 0}, Vec2{0, 0}},
		{"Unit X", Vec2{1, 0}, Vec2{1, 0}},
		{"Diagonal", Vec2{3, 4}, Vec2{0.6, 0.8}},
		{"Negative", Vec2{0, -2}, Vec2{0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Normalized(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLen(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want float64
	}{
		{"Zero", Vec2{0, 0}, 0},
		{"Pythagorean", Vec2{3, 4}, 5},
		{"Negative components", Vec2{-3, -4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Len(); !almostEqual(got, tt.want) {
				t.Errorf("Len(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got := tt.in.LenSq(); !almostEqual(got, tt.want*tt.want) {
				t.Errorf("LenSq(%v) = %v, want %v", tt.in, got, tt.want*tt.want)
			}
		})
	}
}

func TestRotated(t *testing.T) {
	v := Vec2{1, 0}

	quarter := v.Rotated(math.Pi / 2)
	if !almostEqual(quarter.X, 0) || !almostEqual(quarter.Y, 1) {
		t.Errorf("Rotated 90° = %v, want (0,1)", quarter)
	}

	full := v.Rotated(2 * math.Pi)
	if !almostEqual(full.X, 1) || !almostEqual(full.Y, 0) {
		t.Errorf("Rotated 360° = %v, want (1,0)", full)
	}
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		max     float64
		wantLen float64
	}{
		{"Under limit unchanged", 1, 0, 5, 1},
		{"Over limit clamped", 30, 40, 5, 5},
		{"Zero stays zero", 0, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := ClampMagnitude(tt.x, tt.y, tt.max)
			if got := Magnitude(cx, cy); !almostEqual(got, tt.wantLen) {
				t.Errorf("ClampMagnitude(%v,%v,%v) length = %v, want %v",
					tt.x, tt.y, tt.max, got, tt.wantLen)
			}
		})
	}
}

func TestDot(t *testing.T) {
	if got := (Vec2{1, 2}).Dot(Vec2{3, 4}); !almostEqual(got, 11) {
		t.Errorf("Dot = %v, want 11", got)
	}
	// Perpendicular vectors have zero dot product
	v := Vec2{2, 5}
	if got := v.Dot(v.Perpendicular()); !almostEqual(got, 0) {
		t.Errorf("Dot with perpendicular = %v, want 0", got)
	}
}

func TestFiniteOr(t *testing.T) {
	if got := FiniteOr(math.NaN(), 7); got != 7 {
		t.Errorf("FiniteOr(NaN) = %v, want 7", got)
	}
	if got := FiniteOr(math.Inf(1), 0); got != 0 {
		t.Errorf("FiniteOr(+Inf) = %v, want 0", got)
	}
	if got := FiniteOr(3.5, 0); got != 3.5 {
		t.Errorf("FiniteOr(3.5) = %v, want 3.5", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vec2{1, 2}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec2{math.NaN(), 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec2{0, math.Inf(-1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
