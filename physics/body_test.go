package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/gravity-well/vmath"
)

func TestDensityLaw(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		name string
		mass float64
	}{
		{"Unit mass", 1},
		{"Typical body", 100},
		{"Planet", 1e6},
		{"Dust", 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RadiusForMass(tt.mass, tun.DensityK)
			if r <= 0 {
				t.Fatalf("RadiusForMass(%v) = %v, want > 0", tt.mass, r)
			}
			// radius²·k must recover the mass
			back := MassForRadius(r, tun.DensityK)
			if math.Abs(back-tt.mass) > tt.mass*1e-12 {
				t.Errorf("round trip mass = %v, want %v", back, tt.mass)
			}
		})
	}
}

func TestDensityLawDegenerateInputs(t *testing.T) {
	if r := RadiusForMass(-1, 1); r != 0 {
		t.Errorf("RadiusForMass(-1) = %v, want 0", r)
	}
	if r := RadiusForMass(1, 0); r != 0 {
		t.Errorf("RadiusForMass with k=0 = %v, want 0", r)
	}
	if m := MassForRadius(-1, 1); m != 0 {
		t.Errorf("MassForRadius(-1) = %v, want 0", m)
	}
}

func TestTrailBoundedAndDistanceGated(t *testing.T) {
	tun := DefaultTuning()
	tun.TrailMaxLen = 4
	tun.TrailMinDistSq = 1.0

	b := NewBody(vmath.Vec2{}, vmath.Vec2{}, 100, tun)

	// First sample always lands
	b.RecordTrail(tun)
	if len(b.Trail) != 1 {
		t.Fatalf("trail length = %d, want 1", len(b.Trail))
	}

	// Sub-threshold movement is not sampled
	b.Pos = vmath.Vec2{X: 0.5}
	b.RecordTrail(tun)
	if len(b.Trail) != 1 {
		t.Errorf("sub-threshold move sampled, trail length = %d", len(b.Trail))
	}

	// Long march: trail stays capped and keeps the newest samples
	for i := 1; i <= 10; i++ {
		b.Pos = vmath.Vec2{X: float64(i) * 2}
		b.RecordTrail(tun)
	}
	if len(b.Trail) != tun.TrailMaxLen {
		t.Fatalf("trail length = %d, want cap %d", len(b.Trail), tun.TrailMaxLen)
	}
	newest := b.Trail[len(b.Trail)-1]
	if newest.X != 20 {
		t.Errorf("newest trail sample = %v, want x=20", newest)
	}
}

func TestOverlaps(t *testing.T) {
	tun := DefaultTuning()
	a := NewBody(vmath.Vec2{}, vmath.Vec2{}, 100, tun)
	b := NewBody(vmath.Vec2{X: a.Radius * 2.1}, vmath.Vec2{}, 100, tun)

	if a.Overlaps(b) {
		t.Error("separated bodies report overlap")
	}
	b.Pos.X = a.Radius * 1.9
	if !a.Overlaps(b) {
		t.Error("intersecting bodies report no overlap")
	}
}
