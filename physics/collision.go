package physics

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravity-well/vmath"
)

// ComputeOutcome classifies a destructive collision between a and b and
// synthesizes the 0..K replacement bodies. Pure: inputs are never mutated
// and no world-level state is touched. The caller owns killing the inputs,
// discarding non-viable outputs, and inserting the rest.
//
// Classification, in order:
//   - extreme mass ratio → merge, regardless of impact energy
//   - α below MergeAlpha → merge
//   - α above VaporizeAlpha → total destruction, empty outcome
//   - mass ratio above CraterMassRatio → crater (heavy core + debris cone)
//   - otherwise → mutual fragmentation (cores if viable + debris ring)
//
// where α = relative speed / escape velocity of the combined pair.
func ComputeOutcome(a, b *Body, now float64, tun Tuning) []*Body {
	combined := a.Mass + b.Mass
	if combined <= 0 {
		return nil
	}

	// Impact normal a→b; coincident centers fall back to the X axis
	normal := b.Pos.Sub(a.Pos).Normalized()
	if normal.LenSq() == 0 {
		normal = vmath.Vec2{X: 1}
	}

	relSpeed := b.Vel.Sub(a.Vel).Len()
	comVel := a.Vel.Scale(a.Mass / combined).Add(b.Vel.Scale(b.Mass / combined))

	heavy, light := a, b
	if b.Mass > a.Mass {
		heavy, light = b, a
		normal = normal.Scale(-1) // keep normal pointing heavy→light
	}
	ratio := math.Inf(1)
	if light.Mass > 0 {
		ratio = heavy.Mass / light.Mass
	}

	maxR := math.Max(a.Radius, b.Radius)
	vEsc := math.Sqrt(2 * tun.G * combined / (maxR + tun.Softening))
	alpha := 0.0
	if vEsc > 1e-12 {
		alpha = relSpeed / vEsc
	}
	alpha = vmath.FiniteOr(alpha, 0)

	// Extreme mass ratio swallows the impactor no matter how hot
	if ratio >= tun.ExtremeMassRatio {
		return []*Body{merge(a, b, comVel, tun)}
	}
	if alpha < tun.MergeAlpha {
		return []*Body{merge(a, b, comVel, tun)}
	}
	if alpha >= tun.VaporizeAlpha {
		return nil
	}
	if ratio > tun.CraterMassRatio {
		return crater(heavy, light, normal, comVel, alpha, vEsc, now, tun)
	}
	return fragment(a, b, normal, comVel, alpha, vEsc, now, tun)
}

// merge produces one body carrying the full combined mass at the
// mass-weighted position and velocity. Cosmetics come from the dominant
// parent.
func merge(a, b *Body, comVel vmath.Vec2, tun Tuning) *Body {
	combined := a.Mass + b.Mass
	pos := a.Pos.Scale(a.Mass / combined).Add(b.Pos.Scale(b.Mass / combined))

	dominant := a
	if b.Mass > a.Mass {
		dominant = b
	}
	return &Body{
		Pos:    pos,
		Vel:    comVel,
		Mass:   combined,
		Radius: RadiusForMass(combined, tun.DensityK),
		Color:  dominant.Color,
		Name:   dominant.Name,
	}
}

// crater keeps the heavy body as a reduced-mass core and converts the
// light body plus the chipped mass into a cone of debris launched from the
// contact point on the heavy surface
func crater(heavy, light *Body, normal, comVel vmath.Vec2, alpha, vEsc, now float64, tun Tuning) []*Body {
	lossFrac := math.Min(tun.CraterMaxLoss, tun.CraterLossBase*alpha)
	chipped := heavy.Mass * lossFrac
	coreMass := heavy.Mass - chipped

	out := make([]*Body, 0, tun.MaxFragments+1)
	out = append(out, &Body{
		Pos:           heavy.Pos,
		Vel:           heavy.Vel,
		Mass:          coreMass,
		Radius:        RadiusForMass(coreMass, tun.DensityK),
		Color:         heavy.Color,
		Name:          heavy.Name,
		CooldownUntil: now + tun.DebrisCooldown,
	})

	debrisMass := (light.Mass + chipped) * tun.DebrisMassShare
	contact := heavy.Pos.Add(normal.Scale(heavy.Radius))
	out = append(out, spawnDebris(debrisMass, contact, comVel, normal, tun.CraterSpread, alpha, vEsc, light.Color, now, tun)...)
	return out
}

// fragment destroys both comparable-mass bodies into cores (when a core
// remains viable) and a ring of debris around the contact midpoint
func fragment(a, b *Body, normal, comVel vmath.Vec2, alpha, vEsc, now float64, tun Tuning) []*Body {
	combined := a.Mass + b.Mass
	totalLoss := combined * math.Min(tun.FragMaxLoss, tun.FragLossBase*alpha)

	// Asymmetric vulnerability: damage ∝ otherMass / ownMass^1.5, so the
	// lighter partner of the pair shatters first
	wa := vulnerability(b.Mass, a.Mass)
	wb := vulnerability(a.Mass, b.Mass)
	wSum := wa + wb
	if wSum <= 0 {
		return nil
	}
	lossA := math.Min(a.Mass, totalLoss*wa/wSum)
	lossB := math.Min(b.Mass, totalLoss*wb/wSum)

	out := make([]*Body, 0, tun.MaxFragments+2)
	lost := 0.0
	for _, p := range [2]struct {
		body *Body
		loss float64
	}{{a, lossA}, {b, lossB}} {
		core := p.body.Mass - p.loss
		if core >= p.body.Mass*tun.MinCoreFraction && core > 0 {
			out = append(out, &Body{
				Pos:           p.body.Pos,
				Vel:           p.body.Vel,
				Mass:          core,
				Radius:        RadiusForMass(core, tun.DensityK),
				Color:         p.body.Color,
				Name:          p.body.Name,
				CooldownUntil: now + tun.DebrisCooldown,
			})
			lost += p.loss
		} else {
			lost += p.body.Mass
		}
	}

	mid := a.Pos.Add(b.Pos).Scale(0.5)
	dominant := a
	if b.Mass > a.Mass {
		dominant = b
	}
	debrisMass := lost * tun.DebrisMassShare
	out = append(out, spawnDebris(debrisMass, mid, comVel, normal, math.Pi, alpha, vEsc, dominant.Color, now, tun)...)
	return out
}

// darken dims a parent color for its debris
func darken(c colorful.Color) colorful.Color {
	return colorful.Color{R: c.R * 0.6, G: c.G * 0.6, B: c.B * 0.6}
}

// vulnerability is the damage weight for a body of ownMass hit by otherMass
func vulnerability(otherMass, ownMass float64) float64 {
	if ownMass <= 0 {
		return 0
	}
	return vmath.FiniteOr(otherMass/math.Pow(ownMass, 1.5), 0)
}

// spawnDebris splits debrisMass into equal fragments distributed around
// origin within ±spread of the normal direction, each launched outward and
// given a shard shape and collision immunity. The fragment count is bounded
// by MaxFragments and floored by MinFragmentRadius; leftover mass vanishes.
func spawnDebris(debrisMass float64, origin, comVel, normal vmath.Vec2, spread, alpha, vEsc float64, tint colorful.Color, now float64, tun Tuning) []*Body {
	minMass := MassForRadius(tun.MinFragmentRadius, tun.DensityK)
	if debrisMass < minMass {
		return nil
	}

	n := 3 + int(alpha)
	if n > tun.MaxFragments {
		n = tun.MaxFragments
	}
	if limit := int(debrisMass / minMass); n > limit {
		n = limit
	}
	if n <= 0 {
		return nil
	}

	fragMass := debrisMass / float64(n)
	fragRadius := RadiusForMass(fragMass, tun.DensityK)
	shards := GenerateShards(fragRadius, n)

	speed := vEsc * 0.4
	out := make([]*Body, 0, n)
	for i := 0; i < n; i++ {
		// Even angular distribution with per-fragment jitter
		frac := 0.5
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		angle := (frac*2 - 1) * spread
		angle += (rand.Float64() - 0.5) * spread / float64(n)
		dir := normal.Rotated(angle)

		f := &Body{
			Pos:           origin.Add(dir.Scale(fragRadius * 2)),
			Vel:           comVel.Add(dir.Scale(speed * (0.7 + 0.6*rand.Float64()))),
			Mass:          fragMass,
			Radius:        fragRadius,
			Color:         darken(tint),
			IsDebris:      true,
			Shape:         shards[i%len(shards)],
			CooldownUntil: now + tun.DebrisCooldown,
		}
		if !f.Pos.IsFinite() || !f.Vel.IsFinite() {
			f.Pos = origin
			f.Vel = comVel
		}
		out = append(out, f)
	}
	return out
}
