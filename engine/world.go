package engine

import (
	"github.com/lixenwraith/gravity-well/physics"
)

// World owns the live body population and advances it one fixed tick at a
// time. Single-threaded: callers drive Step from one loop and must not call
// it reentrantly. A tick is atomic to observers — the collision pass works
// on a stable snapshot and all removal/insertion is deferred to tick end.
type World struct {
	cfg Config

	bodies     []*physics.Body
	elapsed    float64
	collisions int64
	tick       int64

	// Separate trees: the gravity tree excludes sub-threshold masses to
	// stay small, the collision tree must see everything
	gravityTree   *physics.QuadTree
	collisionTree *physics.QuadTree

	events EventQueue

	// Scratch reused across ticks to keep Step allocation-free at steady
	// state
	dead      map[*physics.Body]bool
	generated []*physics.Body
}

// NewWorld creates an empty world with the given configuration
func NewWorld(cfg Config) *World {
	return &World{
		cfg:           cfg,
		gravityTree:   physics.NewQuadTree(cfg.Tuning.MaxDepth),
		collisionTree: physics.NewQuadTree(cfg.Tuning.MaxDepth),
		dead:          make(map[*physics.Body]bool),
	}
}

// Config returns the immutable configuration the world was built with
func (w *World) Config() Config {
	return w.cfg
}

// Bodies returns the live body list. The slice and its bodies are owned by
// the world; callers read, they do not mutate or retain across Step.
func (w *World) Bodies() []*physics.Body {
	return w.bodies
}

// Time returns elapsed simulation time in seconds
func (w *World) Time() float64 {
	return w.elapsed
}

// Collisions returns the lifetime resolved-collision counter
func (w *World) Collisions() int64 {
	return w.collisions
}

// Events exposes the notification queue for UI collaborators
func (w *World) Events() *EventQueue {
	return &w.events
}

// AddBody inserts a body, returning false when the world is at capacity.
// The body must already satisfy mass > 0 and the density law; producing
// that is the caller's job via the physics helpers.
func (w *World) AddBody(b *physics.Body) bool {
	if len(w.bodies) >= w.cfg.MaxBodies {
		return false
	}
	w.bodies = append(w.bodies, b)
	w.events.Push(Event{
		Type:      EventBodyAdded,
		A:         b,
		BodyCount: len(w.bodies),
		Time:      w.elapsed,
	})
	return true
}

// RemoveBody detaches a body, returning false for a stale reference.
// Removal preserves the order of the remaining bodies.
func (w *World) RemoveBody(b *physics.Body) bool {
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			w.events.Push(Event{
				Type:      EventBodyRemoved,
				A:         b,
				BodyCount: len(w.bodies),
				Time:      w.elapsed,
			})
			return true
		}
	}
	return false
}

// Clear empties the world and resets time and counters
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	w.elapsed = 0
	w.collisions = 0
	w.tick = 0
	w.events.Push(Event{Type: EventWorldCleared})
}

// Step advances exactly one fixed tick. dt <= 0 is a no-op; an empty world
// just advances time. Pipeline: integrate positions → rebuild gravity tree
// → apply gravity → integrate velocities → rebuild collision tree → resolve
// collisions → compact → advance time.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if len(w.bodies) == 0 {
		w.elapsed += dt
		return
	}

	tun := w.cfg.Tuning
	recordTrail := w.tick%int64(w.cfg.TrailInterval) == 0

	physics.IntegratePositions(w.bodies, dt, recordTrail, tun)

	bounds := physics.ComputeBounds(w.bodies, w.cfg.BoundsPadding)
	physics.ApplyGravity(w.bodies, w.gravityTree, bounds, tun)
	physics.IntegrateVelocities(w.bodies, dt)

	w.collisionTree.Reset(bounds)
	for _, b := range w.bodies {
		w.collisionTree.Insert(b)
	}

	w.resolveCollisions()
	w.compact()

	w.elapsed += dt
	w.tick++

	w.events.Push(Event{
		Type:       EventStepDone,
		BodyCount:  len(w.bodies),
		Collisions: w.collisions,
		Time:       w.elapsed,
	})
}

// resolveCollisions runs the broad phase over a stable snapshot. Each
// alive, non-debris body resolves at most one collision per tick: the first
// exactly-overlapping partner that is alive, off cooldown, and not a
// debris-debris pairing.
func (w *World) resolveCollisions() {
	now := w.elapsed
	snapshot := w.bodies

	for _, b := range snapshot {
		if w.dead[b] || b.IsDebris || now < b.CooldownUntil {
			continue
		}

		var hit *physics.Body
		w.collisionTree.QueryCircle(b.Pos.X, b.Pos.Y, b.Radius+w.cfg.CollisionPadding, func(o *physics.Body) {
			if hit != nil || o == b || w.dead[o] {
				return
			}
			if now < o.CooldownUntil {
				return
			}
			if !b.Overlaps(o) {
				return
			}
			hit = o
		})
		if hit == nil {
			continue
		}

		out := physics.ComputeOutcome(b, hit, now, w.cfg.Tuning)
		w.dead[b] = true
		w.dead[hit] = true
		for _, nb := range out {
			if nb.Mass >= w.cfg.Tuning.MinBodyMass {
				w.generated = append(w.generated, nb)
			}
		}
		w.collisions++

		w.events.Push(Event{
			Type:       EventCollision,
			A:          b,
			B:          hit,
			Generated:  len(out),
			Collisions: w.collisions,
			Time:       now,
		})
	}
}

// compact removes dead bodies preserving order, then appends generated
// bodies up to the global cap; excess newborns are silently dropped.
func (w *World) compact() {
	if len(w.dead) > 0 {
		alive := w.bodies[:0]
		for _, b := range w.bodies {
			if !w.dead[b] {
				alive = append(alive, b)
			}
		}
		// Release dropped tails so the dead bodies can be collected
		for i := len(alive); i < len(w.bodies); i++ {
			w.bodies[i] = nil
		}
		w.bodies = alive
		clear(w.dead)
	}

	for _, nb := range w.generated {
		if len(w.bodies) >= w.cfg.MaxBodies {
			break
		}
		w.bodies = append(w.bodies, nb)
	}
	w.generated = w.generated[:0]
}
