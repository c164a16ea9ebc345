package physics

import (
	"math"

	"github.com/lixenwraith/gravity-well/vmath"
)

// nodeKind makes the empty/leaf/internal states explicit. Switches over it
// are exhaustive; there is no nil-child probing.
type nodeKind uint8

const (
	nodeEmpty nodeKind = iota
	nodeLeaf
	nodeInternal
)

// qnode is a square region with aggregate mass and mass-weighted center.
// Children are arena indices, valid only when kind == nodeInternal.
type qnode struct {
	x, y, size float64

	mass       float64
	comX, comY float64

	body     *Body
	kind     nodeKind
	depth    int
	children [4]int32
}

// Bounds is an axis-aligned rectangle
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// QuadTree is a Barnes-Hut quadtree rebuilt from scratch every tick.
// Nodes live in a reusable arena slice; Reset truncates it instead of
// freeing, so steady-state rebuilds allocate nothing.
type QuadTree struct {
	nodes    []qnode
	maxDepth int
}

// NewQuadTree creates an empty tree. maxDepth bounds subdivision; mass
// inserted past it is absorbed into the deepest leaf's aggregate.
func NewQuadTree(maxDepth int) *QuadTree {
	return &QuadTree{maxDepth: maxDepth}
}

// Reset discards the prior structure and re-roots the tree at the smallest
// square covering bounds
func (t *QuadTree) Reset(b Bounds) {
	t.nodes = t.nodes[:0]

	w := b.MaxX - b.MinX
	h := b.MaxY - b.MinY
	size := math.Max(w, h)
	if size <= 0 {
		size = 1
	}
	// Center the square on the bounds
	cx := (b.MinX + b.MaxX) / 2
	cy := (b.MinY + b.MaxY) / 2

	t.alloc(cx-size/2, cy-size/2, size, 0)
}

// alloc appends a fresh empty node to the arena and returns its index
func (t *QuadTree) alloc(x, y, size float64, depth int) int32 {
	t.nodes = append(t.nodes, qnode{x: x, y: y, size: size, depth: depth, kind: nodeEmpty})
	return int32(len(t.nodes) - 1)
}

// Insert adds a body, folding its mass into the aggregate of every node on
// the descent path. Bodies outside the root square are clamped into it by
// quadrant selection; Reset bounds are expected to cover all insertions.
func (t *QuadTree) Insert(b *Body) {
	if len(t.nodes) == 0 || b == nil || b.Mass <= 0 {
		return
	}
	t.insert(0, b)
}

func (t *QuadTree) insert(idx int32, b *Body) {
	n := &t.nodes[idx]
	switch n.kind {
	case nodeEmpty:
		n.kind = nodeLeaf
		n.body = b
		n.mass = b.Mass
		n.comX = b.Pos.X
		n.comY = b.Pos.Y

	case nodeLeaf:
		if n.depth >= t.maxDepth {
			// Depth bound reached: absorb mass only, keep the stored body
			foldMass(n, b)
			return
		}
		old := n.body
		n.body = nil
		n.kind = nodeInternal
		t.subdivide(idx)

		// Re-acquire after subdivide: alloc may have moved the arena
		n = &t.nodes[idx]
		t.insert(n.children[t.quadrant(n, old.Pos)], old)

		n = &t.nodes[idx]
		foldMass(n, b)
		t.insert(n.children[t.quadrant(n, b.Pos)], b)

	case nodeInternal:
		foldMass(n, b)
		child := n.children[t.quadrant(n, b.Pos)]
		t.insert(child, b)
	}
}

// foldMass merges a body into a node's aggregate mass and center of mass
func foldMass(n *qnode, b *Body) {
	total := n.mass + b.Mass
	n.comX = (n.comX*n.mass + b.Pos.X*b.Mass) / total
	n.comY = (n.comY*n.mass + b.Pos.Y*b.Mass) / total
	n.mass = total
}

// subdivide allocates 4 equal child quadrants for the node at idx
func (t *QuadTree) subdivide(idx int32) {
	x, y, size, depth := t.nodes[idx].x, t.nodes[idx].y, t.nodes[idx].size, t.nodes[idx].depth
	half := size / 2
	c0 := t.alloc(x, y, half, depth+1)           // SW (low x, low y)
	c1 := t.alloc(x+half, y, half, depth+1)      // SE
	c2 := t.alloc(x, y+half, half, depth+1)      // NW
	c3 := t.alloc(x+half, y+half, half, depth+1) // NE
	n := &t.nodes[idx]
	n.children = [4]int32{c0, c1, c2, c3}
}

// quadrant selects the child index for a position. Ties on the midpoint
// resolve to the higher quadrant on each axis.
func (t *QuadTree) quadrant(n *qnode, p vmath.Vec2) int {
	half := n.size / 2
	q := 0
	if p.X >= n.x+half {
		q |= 1
	}
	if p.Y >= n.y+half {
		q |= 2
	}
	return q
}

// Accel returns the gravitational acceleration on b from the whole tree.
// A node is treated as one aggregate point mass when it is a leaf (other
// than b itself) or when size/distance < theta; otherwise its children are
// visited. Softening keeps the closed form finite at zero separation.
func (t *QuadTree) Accel(b *Body, g, softening, theta float64) vmath.Vec2 {
	if len(t.nodes) == 0 {
		return vmath.Vec2{}
	}
	ax, ay := t.accel(0, b, g, softening*softening, theta)
	return vmath.Vec2{X: vmath.FiniteOr(ax, 0), Y: vmath.FiniteOr(ay, 0)}
}

func (t *QuadTree) accel(idx int32, b *Body, g, soft2, theta float64) (ax, ay float64) {
	n := &t.nodes[idx]
	if n.kind == nodeEmpty || n.mass == 0 {
		return 0, 0
	}
	if n.kind == nodeLeaf && n.body == b {
		return 0, 0
	}

	dx := n.comX - b.Pos.X
	dy := n.comY - b.Pos.Y
	distSq := dx*dx + dy*dy
	dist := math.Sqrt(distSq)

	if n.kind == nodeLeaf || (dist > 0 && n.size/dist < theta) {
		// accel = G·m·r̂ / (r² + ε²)^1.5
		denom := math.Pow(distSq+soft2, 1.5)
		if denom == 0 {
			return 0, 0
		}
		f := g * n.mass / denom
		return f * dx, f * dy
	}

	for _, c := range n.children {
		cx, cy := t.accel(c, b, g, soft2, theta)
		ax += cx
		ay += cy
	}
	return ax, ay
}

// QueryCircle visits every stored body whose node square intersects the
// bounding box of the query circle. The test is coarse; callers re-filter
// with an exact overlap check.
func (t *QuadTree) QueryCircle(cx, cy, r float64, visit func(*Body)) {
	if len(t.nodes) == 0 {
		return
	}
	t.query(0, cx-r, cy-r, cx+r, cy+r, visit)
}

func (t *QuadTree) query(idx int32, minX, minY, maxX, maxY float64, visit func(*Body)) {
	n := &t.nodes[idx]
	if n.kind == nodeEmpty {
		return
	}
	if n.x > maxX || n.x+n.size < minX || n.y > maxY || n.y+n.size < minY {
		return
	}
	if n.kind == nodeLeaf {
		visit(n.body)
		return
	}
	for _, c := range n.children {
		t.query(c, minX, minY, maxX, maxY, visit)
	}
}

// Root returns the tree's aggregate mass and center of mass, zero when empty
func (t *QuadTree) Root() (mass, comX, comY float64) {
	if len(t.nodes) == 0 {
		return 0, 0, 0
	}
	n := &t.nodes[0]
	return n.mass, n.comX, n.comY
}

// NodeCount reports the number of nodes in the current build
func (t *QuadTree) NodeCount() int {
	return len(t.nodes)
}
