// Package scenario seeds body populations for the simulation. Generators
// only produce bodies; the caller feeds them through World.AddBody and owns
// capacity handling.
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/gravity-well/physics"
	"github.com/lixenwraith/gravity-well/vmath"
)

// BinaryPair returns two equal heavy bodies on a mutual circular orbit
func BinaryPair(tun physics.Tuning) []*physics.Body {
	const mass = 5e4
	const sep = 260.0

	// Each orbits the barycenter at r = sep/2 against the other's pull
	v := math.Sqrt(tun.G * mass / (2 * sep))

	a := physics.NewBody(vmath.Vec2{X: -sep / 2}, vmath.Vec2{Y: -v}, mass, tun)
	b := physics.NewBody(vmath.Vec2{X: sep / 2}, vmath.Vec2{Y: v}, mass, tun)
	a.Name, b.Name = "Castor", "Pollux"
	a.Color = bodyColor(0, 2)
	b.Color = bodyColor(1, 2)
	return []*physics.Body{a, b}
}

// OrbitalDisk returns a heavy central body with n satellites on near
// circular orbits at randomized radii, the classic accretion-disk seed
func OrbitalDisk(n int, tun physics.Tuning) []*physics.Body {
	const centralMass = 2e6
	const innerR, outerR = 150.0, 900.0

	bodies := make([]*physics.Body, 0, n+1)
	sun := physics.NewBody(vmath.Vec2{}, vmath.Vec2{}, centralMass, tun)
	sun.Name = "Primary"
	sun.Color = colorful.Color{R: 1, G: 0.85, B: 0.4}
	bodies = append(bodies, sun)

	for i := 0; i < n; i++ {
		r := innerR + (outerR-innerR)*math.Sqrt(rand.Float64())
		angle := rand.Float64() * 2 * math.Pi
		pos := vmath.Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}

		// Tangential velocity for a circular orbit, slightly perturbed so
		// collisions eventually happen
		v := math.Sqrt(tun.G*centralMass/r) * (0.95 + 0.1*rand.Float64())
		vel := pos.Normalized().Perpendicular().Scale(v)

		mass := 20 + rand.Float64()*180
		b := physics.NewBody(pos, vel, mass, tun)
		b.Name = fmt.Sprintf("D-%03d", i+1)
		b.Color = bodyColor(i, n)
		bodies = append(bodies, b)
	}
	return bodies
}

// RandomCloud returns n bodies scattered in a disk with small random
// velocities; it collapses chaotically under self-gravity
func RandomCloud(n int, tun physics.Tuning) []*physics.Body {
	const extent = 700.0

	bodies := make([]*physics.Body, 0, n)
	for i := 0; i < n; i++ {
		r := extent * math.Sqrt(rand.Float64())
		angle := rand.Float64() * 2 * math.Pi
		pos := vmath.Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
		vel := vmath.Vec2{
			X: (rand.Float64() - 0.5) * 10,
			Y: (rand.Float64() - 0.5) * 10,
		}

		mass := 10 + math.Abs(rand.NormFloat64())*150
		b := physics.NewBody(pos, vel, mass, tun)
		b.Name = fmt.Sprintf("C-%03d", i+1)
		b.Color = bodyColor(i, n)
		bodies = append(bodies, b)
	}
	return bodies
}

// bodyColor spreads hues evenly around the HCL wheel, which keeps adjacent
// bodies visually distinct at terminal color depth
func bodyColor(i, n int) colorful.Color {
	if n < 1 {
		n = 1
	}
	hue := float64(i) / float64(n) * 360
	return colorful.Hcl(hue, 0.5, 0.7).Clamped()
}
