package tracer

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/MeKo-Tech/vectra/internal/raster"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// minEnclosingNeighbors is the "mostly enclosed" heuristic: a background
// pixel seeds a hole trace when at least this many of its 8 neighbors are
// foreground.
const minEnclosingNeighbors = 6

// attachHoles scans for unvisited background pixels that are mostly
// enclosed by foreground, traces each as a hole ring, and appends it to
// the first contour whose exterior contains the ring's first point.
// Holes with no containing parent are dropped. Tiny hole rings survive
// here; the validator culls the ones too degenerate to keep.
func attachHoles(bm *raster.Bitmap, visited []bool, contours []Contour) {
	w, h := bm.Width, bm.Height
	if len(contours) == 0 {
		return
	}

	exteriors := make([]orb.Ring, len(contours))
	for i, c := range contours {
		exteriors[i] = toRing(c.Points)
	}

	for y := range h {
		for x := range w {
			if visited[y*w+x] || bm.IsForeground(x, y) {
				continue
			}
			if countForegroundNeighbors(bm, x, y) < minEnclosingNeighbors {
				continue
			}
			hole := traceBoundary(bm, visited, x, y, false)
			if len(hole) == 0 {
				continue
			}
			parent := findParent(exteriors, hole[0])
			if parent == -1 {
				continue
			}
			contours[parent].Holes = append(contours[parent].Holes, hole)
		}
	}
}

func countForegroundNeighbors(bm *raster.Bitmap, x, y int) int {
	n := 0
	for i := range 8 {
		if matches(bm, x+ndx[i], y+ndy[i], true) {
			n++
		}
	}
	return n
}

// findParent returns the index of the first exterior ring containing p via
// ray casting, or -1 when no ring contains it.
func findParent(exteriors []orb.Ring, p utils.Point) int {
	pt := orb.Point{p.X, p.Y}
	for i, ring := range exteriors {
		if len(ring) < 4 {
			continue
		}
		if planar.RingContains(ring, pt) {
			return i
		}
	}
	return -1
}

// toRing converts points to a closed orb.Ring.
func toRing(pts []utils.Point) orb.Ring {
	if len(pts) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
