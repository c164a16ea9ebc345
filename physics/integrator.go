package physics

// Velocity Verlet split across the tick:
//
//	stage 1: p += v·dt + ½a·dt²; v += ½a·dt   (old acceleration)
//	        ... forces recomputed at new positions ...
//	stage 2: v += ½a·dt                        (new acceleration)
//
// The half-kick after the force update is what keeps the scheme symplectic;
// energy drift stays bounded over indefinite run time, unlike naive Euler.

// IntegratePositions performs Verlet stage 1 on every body and optionally
// samples trails. Callers gate recordTrail to every few ticks.
func IntegratePositions(bodies []*Body, dt float64, recordTrail bool, tun Tuning) {
	half := 0.5 * dt * dt
	for _, b := range bodies {
		b.Pos.X += b.Vel.X*dt + b.Acc.X*half
		b.Pos.Y += b.Vel.Y*dt + b.Acc.Y*half
		b.Vel.X += 0.5 * b.Acc.X * dt
		b.Vel.Y += 0.5 * b.Acc.Y * dt
		if recordTrail {
			b.RecordTrail(tun)
		}
	}
}

// ApplyGravity rebuilds the gravity tree over bounds and accumulates each
// body's tree-approximated acceleration. Bodies under MinGravityMass do not
// exert force through the tree but still feel it.
func ApplyGravity(bodies []*Body, tree *QuadTree, bounds Bounds, tun Tuning) {
	for _, b := range bodies {
		b.Acc.X = 0
		b.Acc.Y = 0
	}

	tree.Reset(bounds)
	for _, b := range bodies {
		if b.Mass >= tun.MinGravityMass {
			tree.Insert(b)
		}
	}

	for _, b := range bodies {
		a := tree.Accel(b, tun.G, tun.Softening, tun.Theta)
		b.Acc.X += a.X
		b.Acc.Y += a.Y
	}
}

// IntegrateVelocities performs Verlet stage 2 using the acceleration
// recomputed after the position update
func IntegrateVelocities(bodies []*Body, dt float64) {
	for _, b := range bodies {
		b.Vel.X += 0.5 * b.Acc.X * dt
		b.Vel.Y += 0.5 * b.Acc.Y * dt
	}
}

// ComputeBounds returns the body population's bounding box expanded by
// padding on every side. Zero-value bounds for an empty slice.
func ComputeBounds(bodies []*Body, padding float64) Bounds {
	if len(bodies) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: bodies[0].Pos.X, MaxX: bodies[0].Pos.X,
		MinY: bodies[0].Pos.Y, MaxY: bodies[0].Pos.Y,
	}
	for _, body := range bodies[1:] {
		if body.Pos.X < b.MinX {
			b.MinX = body.Pos.X
		}
		if body.Pos.X > b.MaxX {
			b.MaxX = body.Pos.X
		}
		if body.Pos.Y < b.MinY {
			b.MinY = body.Pos.Y
		}
		if body.Pos.Y > b.MaxY {
			b.MaxY = body.Pos.Y
		}
	}
	b.MinX -= padding
	b.MinY -= padding
	b.MaxX += padding
	b.MaxY += padding
	return b
}
