package physics

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravity-well/vmath"
)

// Body is a point mass. Pos/Vel/Acc are mutated in place by the integrator;
// Acc is transient and recomputed every tick. Mass and Radius stay coupled
// through the density law mass = DensityK·r².
type Body struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
	Acc vmath.Vec2

	Mass   float64
	Radius float64

	// Cosmetic
	Color colorful.Color
	Name  string

	// Trail is a bounded, interval-sampled position history for rendering.
	// Oldest sample first.
	Trail        []vmath.Vec2
	lastTrailPos vmath.Vec2
	trailSampled bool

	// Debris shards carry a polygon shape in local space
	IsDebris bool
	Shape    []vmath.Vec2

	// CooldownUntil is the sim time before which this body is skipped by the
	// destructive collision pass
	CooldownUntil float64
}

// RadiusForMass inverts the density law mass = k·r²
func RadiusForMass(mass, k float64) float64 {
	if mass <= 0 || k <= 0 {
		return 0
	}
	return math.Sqrt(mass / k)
}

// MassForRadius applies the density law mass = k·r²
func MassForRadius(radius, k float64) float64 {
	if radius <= 0 || k <= 0 {
		return 0
	}
	return k * radius * radius
}

// NewBody creates a body at pos with the given mass, radius derived from the
// density law
func NewBody(pos, vel vmath.Vec2, mass float64, tun Tuning) *Body {
	return &Body{
		Pos:    pos,
		Vel:    vel,
		Mass:   mass,
		Radius: RadiusForMass(mass, tun.DensityK),
	}
}

// RecordTrail appends the current position to the trail if the body has
// moved far enough since the last sample, dropping the oldest entry past
// the cap. Callers gate the sampling interval.
func (b *Body) RecordTrail(tun Tuning) {
	if b.trailSampled {
		d := b.Pos.Sub(b.lastTrailPos)
		if d.LenSq() < tun.TrailMinDistSq {
			return
		}
	}
	b.Trail = append(b.Trail, b.Pos)
	if len(b.Trail) > tun.TrailMaxLen {
		// Shift instead of re-slice so the backing array stays bounded
		copy(b.Trail, b.Trail[1:])
		b.Trail = b.Trail[:tun.TrailMaxLen]
	}
	b.lastTrailPos = b.Pos
	b.trailSampled = true
}

// Overlaps reports exact circle-circle intersection
func (b *Body) Overlaps(o *Body) bool {
	rr := b.Radius + o.Radius
	return b.Pos.Sub(o.Pos).LenSq() < rr*rr
}
