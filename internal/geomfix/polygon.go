// Package geomfix validates and repairs polygons produced from traced
// contours: ring closure, duplicate collapse, winding normalization,
// self-intersection repair through a polygon-boolean collaborator,
// small-feature culling and grid snapping. The output is the final
// CAD-safe polygon set.
package geomfix

import (
	"math"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

// GridUnit is the coordinate grid all retained coordinates are snapped to.
const GridUnit = 0.001

// closeTolerance is the per-axis gap above which a ring is considered open,
// and the Euclidean distance below which consecutive points collapse.
const closeTolerance = 0.001

// Polygon is an exterior ring plus zero or more hole rings. After
// validation every ring is closed (first point equals last), the exterior
// winds counter-clockwise (negative signed area in image coordinates) and
// holes wind clockwise (positive signed area).
type Polygon struct {
	Exterior []utils.Point
	Holes    [][]utils.Point
}

// Area returns the absolute area of the exterior ring.
func (p Polygon) Area() float64 {
	return math.Abs(utils.SignedArea(p.Exterior))
}

// distinctPoints counts ring vertices excluding the closing duplicate.
func distinctPoints(ring []utils.Point) int {
	n := len(ring)
	if n >= 2 && ring[0] == ring[n-1] {
		return n - 1
	}
	return n
}

// CloseRing appends a copy of the first point when the ring's endpoints
// differ by more than the closure tolerance in either axis. Closing an
// already-closed ring returns the ring unchanged.
func CloseRing(ring []utils.Point) []utils.Point {
	if len(ring) < 2 {
		return ring
	}
	first := ring[0]
	last := ring[len(ring)-1]
	if math.Abs(first.X-last.X) > closeTolerance || math.Abs(first.Y-last.Y) > closeTolerance {
		return append(ring, first)
	}
	return ring
}

// collapseDuplicates drops consecutive points within the collapse tolerance
// of the previously kept point. The closing duplicate is re-appended so the
// ring stays closed.
func collapseDuplicates(ring []utils.Point) []utils.Point {
	if len(ring) < 2 {
		return ring
	}
	closed := ring[0] == ring[len(ring)-1]
	body := ring
	if closed {
		body = ring[:len(ring)-1]
	}
	out := make([]utils.Point, 0, len(body))
	out = append(out, body[0])
	for _, p := range body[1:] {
		if utils.Distance(p, out[len(out)-1]) >= closeTolerance {
			out = append(out, p)
		}
	}
	if closed {
		out = append(out, out[0])
	}
	return out
}

// normalizeWinding reverses the ring in place when its signed area does not
// match the expected sign: negative (counter-clockwise) for exteriors,
// positive (clockwise) for holes.
func normalizeWinding(ring []utils.Point, hole bool) {
	area := utils.SignedArea(ring)
	if hole {
		if area < 0 {
			utils.ReversePoints(ring)
		}
		return
	}
	if area > 0 {
		utils.ReversePoints(ring)
	}
}

// snapRing snaps every coordinate to the nearest grid multiple.
func snapRing(ring []utils.Point) {
	for i := range ring {
		ring[i].X = utils.SnapToGrid(ring[i].X, GridUnit)
		ring[i].Y = utils.SnapToGrid(ring[i].Y, GridUnit)
	}
}
