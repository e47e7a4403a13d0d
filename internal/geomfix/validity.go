package geomfix

import (
	"math"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

// holeArea returns the absolute area of a hole ring.
func holeArea(ring []utils.Point) float64 {
	return math.Abs(utils.SignedArea(ring))
}

// IsValid reports whether a polygon satisfies the validity predicate: the
// exterior and every hole have at least 3 distinct vertices, the exterior
// has non-zero area, and the exterior ring has no self-intersections.
func IsValid(p Polygon) bool {
	if distinctPoints(p.Exterior) < minVertices {
		return false
	}
	for _, h := range p.Holes {
		if distinctPoints(h) < minVertices {
			return false
		}
	}
	if p.Area() <= 0 {
		return false
	}
	return !ringSelfIntersects(p.Exterior)
}

// ringSelfIntersects tests every pair of non-adjacent edges for
// intersection, including collinear overlap.
func ringSelfIntersects(ring []utils.Point) bool {
	n := distinctPoints(ring)
	if n < 4 {
		return false
	}
	edge := func(i int) (utils.Point, utils.Point) {
		return ring[i], ring[(i+1)%n]
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges, including the first/last wrap pair.
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			p1, q1 := edge(i)
			p2, q2 := edge(j)
			if utils.SegmentsIntersect(p1, q1, p2, q2) {
				return true
			}
		}
	}
	return false
}
