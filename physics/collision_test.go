package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/gravity-well/vmath"
)

// pairAtContact builds two bodies with explicit mass/radius, centers
// separated along x by the sum of the radii, closing at the given speed.
func pairAtContact(mA, rA, mB, rB, closing float64) (*Body, *Body) {
	a := &Body{Pos: vmath.Vec2{X: 0}, Vel: vmath.Vec2{X: closing / 2}, Mass: mA, Radius: rA}
	b := &Body{Pos: vmath.Vec2{X: rA + rB}, Vel: vmath.Vec2{X: -closing / 2}, Mass: mB, Radius: rB}
	return a, b
}

func totalMass(bodies []*Body) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += b.Mass
	}
	return sum
}

// Scenario: two 100-mass bodies touching, closing slowly. Must merge into a
// single body with exact mass conservation, midpoint position, and
// mass-weighted (here zero) velocity.
func TestSlowImpactMerges(t *testing.T) {
	tun := DefaultTuning()
	a, b := pairAtContact(100, 8, 100, 8, 0.5)

	out := ComputeOutcome(a, b, 0, tun)
	if len(out) != 1 {
		t.Fatalf("outcome count = %d, want 1 (merge)", len(out))
	}
	m := out[0]
	if m.Mass != 200 {
		t.Errorf("merged mass = %v, want exactly 200", m.Mass)
	}
	if math.Abs(m.Pos.X-8) > 1e-9 || math.Abs(m.Pos.Y) > 1e-9 {
		t.Errorf("merged pos = %v, want midpoint (8,0)", m.Pos)
	}
	if m.Vel.Len() > 1e-9 {
		t.Errorf("merged vel = %v, want ~(0,0)", m.Vel)
	}
	if math.Abs(MassForRadius(m.Radius, tun.DensityK)-m.Mass) > 1e-9 {
		t.Errorf("merged radius %v violates density law for mass %v", m.Radius, m.Mass)
	}
}

// Scenario: same pair closing fast. Comparable masses at high energy must
// mutually fragment, with mass genuinely lost (unless vaporized entirely).
func TestFastImpactFragmentsAndLosesMass(t *testing.T) {
	tun := DefaultTuning()
	a, b := pairAtContact(100, 8, 100, 8, 200)

	out := ComputeOutcome(a, b, 0, tun)
	if len(out) == 0 {
		// Full vaporization is a legal high-energy result
		return
	}
	if len(out) < 2 {
		t.Fatalf("outcome count = %d, want >= 2 (fragmentation)", len(out))
	}
	if got := totalMass(out); got >= 200 {
		t.Errorf("total outcome mass = %v, want < 200 (mass lost)", got)
	}
}

// Scenario: 5000:1 mass ratio merges at any speed.
func TestExtremeMassRatioAlwaysMerges(t *testing.T) {
	tun := DefaultTuning()
	for _, closing := range []float64{0.1, 10, 500, 5000} {
		a, b := pairAtContact(1e6, 1000, 200, 14, closing)
		out := ComputeOutcome(a, b, 0, tun)
		if len(out) != 1 {
			t.Fatalf("closing %v: outcome count = %d, want 1", closing, len(out))
		}
		if out[0].Mass != 1e6+200 {
			t.Errorf("closing %v: merged mass = %v, want %v", closing, out[0].Mass, 1e6+200)
		}
	}
}

// For fixed equal bodies the merge→fragment transition must be monotone in
// relative speed: once an impact stops merging, no faster impact merges.
func TestClassificationMonotonicInRelativeSpeed(t *testing.T) {
	tun := DefaultTuning()

	merged := 0
	transitioned := false
	for closing := 1.0; closing <= 400; closing += 1 {
		a, b := pairAtContact(100, 8, 100, 8, closing)
		out := ComputeOutcome(a, b, 0, tun)
		if len(out) == 1 {
			if transitioned {
				t.Fatalf("merge at closing %v after fragmentation began", closing)
			}
			merged++
		} else {
			transitioned = true
		}
	}
	if merged == 0 {
		t.Error("no merge at any speed; threshold missing")
	}
	if !transitioned {
		t.Error("no fragmentation at any speed; threshold missing")
	}
}

func TestCraterKeepsHeavyCore(t *testing.T) {
	tun := DefaultTuning()
	// Ratio 50:1, inside crater range, outside extreme-ratio shortcut
	a, b := pairAtContact(5000, 70, 100, 10, 400)

	out := ComputeOutcome(a, b, 0, tun)
	if len(out) < 2 {
		t.Fatalf("outcome count = %d, want core + debris", len(out))
	}

	core := out[0]
	if core.IsDebris {
		t.Error("first outcome entry should be the surviving core")
	}
	if core.Mass >= 5000 || core.Mass < 5000*(1-tun.CraterMaxLoss) {
		t.Errorf("core mass = %v, want reduced but above loss cap floor", core.Mass)
	}
	if core.Name != a.Name || core.Pos != a.Pos {
		t.Error("core should keep the heavy body's identity and position")
	}
	for _, d := range out[1:] {
		if !d.IsDebris {
			t.Error("crater ejecta must be debris-tagged")
		}
		if len(d.Shape) < 3 {
			t.Errorf("debris shape has %d points, want >= 3", len(d.Shape))
		}
		if d.CooldownUntil <= 0 {
			t.Error("debris must get a collision cooldown")
		}
	}
}

func TestVaporizeReturnsNothing(t *testing.T) {
	tun := DefaultTuning()
	a, b := pairAtContact(100, 8, 100, 8, 0)
	// Force alpha far past the vaporize threshold
	vEsc := math.Sqrt(2 * tun.G * 200 / (8 + tun.Softening))
	a.Vel.X = vEsc * tun.VaporizeAlpha
	b.Vel.X = -vEsc * tun.VaporizeAlpha

	if out := ComputeOutcome(a, b, 0, tun); len(out) != 0 {
		t.Errorf("outcome count = %d, want 0 (vaporized)", len(out))
	}
}

func TestOutcomeBoundsAndSanity(t *testing.T) {
	tun := DefaultTuning()

	tests := []struct {
		name           string
		mA, rA, mB, rB float64
		closing        float64
	}{
		{"Equal slow", 100, 8, 100, 8, 0.5},
		{"Equal fast", 100, 8, 100, 8, 150},
		{"Crater", 10000, 100, 300, 17, 600},
		{"Extreme", 1e6, 1000, 5, 2.3, 100},
		{"Tiny", 0.2, 0.45, 0.2, 0.45, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := pairAtContact(tt.mA, tt.rA, tt.mB, tt.rB, tt.closing)
			out := ComputeOutcome(a, b, 0, tun)

			if len(out) > tun.MaxFragments+2 {
				t.Fatalf("outcome count = %d, exceeds fragment cap + cores", len(out))
			}
			for i, o := range out {
				if o.Mass <= 0 || math.IsNaN(o.Mass) || math.IsInf(o.Mass, 0) {
					t.Errorf("entry %d: mass = %v", i, o.Mass)
				}
				if o.Radius <= 0 || math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) {
					t.Errorf("entry %d: radius = %v", i, o.Radius)
				}
				if !o.Pos.IsFinite() || !o.Vel.IsFinite() {
					t.Errorf("entry %d: non-finite state pos=%v vel=%v", i, o.Pos, o.Vel)
				}
			}
		})
	}
}

func TestComputeOutcomeDoesNotMutateInputs(t *testing.T) {
	tun := DefaultTuning()
	a, b := pairAtContact(100, 8, 100, 8, 200)
	aPos, aVel, aMass, aRadius := a.Pos, a.Vel, a.Mass, a.Radius
	bPos, bVel, bMass, bRadius := b.Pos, b.Vel, b.Mass, b.Radius

	ComputeOutcome(a, b, 0, tun)

	if a.Pos != aPos || a.Vel != aVel || a.Mass != aMass || a.Radius != aRadius {
		t.Error("resolver mutated body a")
	}
	if b.Pos != bPos || b.Vel != bVel || b.Mass != bMass || b.Radius != bRadius {
		t.Error("resolver mutated body b")
	}
}

func TestZeroCombinedMassYieldsEmptyOutcome(t *testing.T) {
	tun := DefaultTuning()
	a := &Body{}
	b := &Body{}
	if out := ComputeOutcome(a, b, 0, tun); out != nil {
		t.Errorf("outcome = %v, want nil", out)
	}
}

func TestCoincidentCentersUseFallbackAxis(t *testing.T) {
	tun := DefaultTuning()
	a := &Body{Pos: vmath.Vec2{X: 3, Y: 3}, Mass: 100, Radius: 8, Vel: vmath.Vec2{X: 100}}
	b := &Body{Pos: vmath.Vec2{X: 3, Y: 3}, Mass: 100, Radius: 8, Vel: vmath.Vec2{X: -100}}

	out := ComputeOutcome(a, b, 0, tun)
	for i, o := range out {
		if !o.Pos.IsFinite() || !o.Vel.IsFinite() {
			t.Errorf("entry %d non-finite with coincident centers: %+v", i, o)
		}
	}
}
