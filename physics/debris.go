package physics

import (
	"math"
	"math/rand"

	"github.com/fogleman/delaunay"

	"github.com/lixenwraith/gravity-well/vmath"
)

// MaxShards is the hard safety ceiling on polygon shards per destructive
// event
const MaxShards = 50

// GenerateShards produces up to count triangular shard polygons that
// together resemble a shattered disk of the given radius. Shards are in
// local space, re-centered on their own centroid, so callers place them
// freely. Invoked once per destructive event; the resolver hands shapes out
// round-robin across its fragments.
//
// Always returns at least one shape: when triangulation fails or every
// triangle is culled, a single jittered hexagon stands in.
func GenerateShards(radius float64, count int) [][]vmath.Vec2 {
	if count > MaxShards {
		count = MaxShards
	}
	if count < 1 {
		count = 1
	}
	if radius <= 0 {
		radius = 1
	}

	points := seedPoints(radius, count)
	tri, err := delaunay.Triangulate(points)
	if err != nil || len(tri.Triangles) < 3 {
		return [][]vmath.Vec2{fallbackShard(radius)}
	}

	// Cull slivers spanning the disk: anything much larger than the
	// expected average shard area is a triangulation artifact, not a shard
	nTris := len(tri.Triangles) / 3
	maxArea := 1.6 * (math.Pi * radius * radius) / float64(nTris)

	shards := make([][]vmath.Vec2, 0, nTris)
	for i := 0; i < len(tri.Triangles); i += 3 {
		p0 := tri.Points[tri.Triangles[i]]
		p1 := tri.Points[tri.Triangles[i+1]]
		p2 := tri.Points[tri.Triangles[i+2]]

		area := math.Abs((p1.X-p0.X)*(p2.Y-p0.Y)-(p2.X-p0.X)*(p1.Y-p0.Y)) / 2
		if area > maxArea {
			continue
		}

		// Re-center on the triangle's own centroid
		cx := (p0.X + p1.X + p2.X) / 3
		cy := (p0.Y + p1.Y + p2.Y) / 3
		shards = append(shards, []vmath.Vec2{
			{X: p0.X - cx, Y: p0.Y - cy},
			{X: p1.X - cx, Y: p1.Y - cy},
			{X: p2.X - cx, Y: p2.Y - cy},
		})
	}

	if len(shards) == 0 {
		return [][]vmath.Vec2{fallbackShard(radius)}
	}
	return shards
}

// seedPoints builds the triangulation input: disk center, a border ring,
// and interior scatter with density proportional to the requested count
func seedPoints(radius float64, count int) []delaunay.Point {
	border := 6 + count/2
	interior := count

	points := make([]delaunay.Point, 0, 1+border+interior)
	points = append(points, delaunay.Point{})

	for i := 0; i < border; i++ {
		angle := float64(i) / float64(border) * 2 * math.Pi
		r := radius * (0.9 + 0.1*rand.Float64())
		points = append(points, delaunay.Point{
			X: r * math.Cos(angle),
			Y: r * math.Sin(angle),
		})
	}
	for i := 0; i < interior; i++ {
		angle := rand.Float64() * 2 * math.Pi
		r := radius * math.Sqrt(rand.Float64()) * 0.85
		points = append(points, delaunay.Point{
			X: r * math.Cos(angle),
			Y: r * math.Sin(angle),
		})
	}
	return points
}

// fallbackShard is a single jittered hexagon used when triangulation
// yields nothing usable
func fallbackShard(radius float64) []vmath.Vec2 {
	const sides = 6
	poly := make([]vmath.Vec2, sides)
	for i := range poly {
		angle := float64(i) / sides * 2 * math.Pi
		r := radius * (0.7 + 0.3*rand.Float64())
		poly[i] = vmath.Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}
	return poly
}
