// Package tracer extracts hierarchical contours (exterior rings plus
// interior holes) from a binarized bitmap using Moore-neighbor boundary
// tracing, and simplifies them with Douglas–Peucker reduction.
package tracer

import (
	"container/list"

	"github.com/MeKo-Tech/vectra/internal/mempool"
	"github.com/MeKo-Tech/vectra/internal/raster"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// Contour is an ordered boundary ring plus any hole rings traced inside it.
// Parent is the index of the containing contour, or -1 for roots.
type Contour struct {
	Points []utils.Point
	Holes  [][]utils.Point
	Parent int
}

// 8-neighborhood in clockwise order starting north:
// N, NE, E, SE, S, SW, W, NW.
var (
	ndx = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	ndy = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}
)

const startDirection = 0 // north

// minRingPoints is the smallest viable ring; traces at or below this are
// discarded as degenerate.
const minRingPoints = 3

// Extract scans the bitmap in row-major order and traces the boundary of
// every foreground region, then locates enclosed background regions and
// attaches them as holes to their containing contour. Degenerate traces
// and holes with no containing parent are silently dropped.
func Extract(bm *raster.Bitmap) []Contour {
	w, h := bm.Width, bm.Height
	if w == 0 || h == 0 {
		return nil
	}

	visited := mempool.GetBool(w * h)
	defer mempool.PutBool(visited)

	var contours []Contour
	for y := range h {
		for x := range w {
			if visited[y*w+x] || !bm.IsForeground(x, y) {
				continue
			}
			pts := traceBoundary(bm, visited, x, y, true)
			// The trace only marks boundary pixels. Fill the whole
			// region so a pixel bordering an enclosed hole cannot
			// seed a second trace of the same region.
			fillRegion(bm, visited, x, y)
			if len(pts) <= minRingPoints {
				continue
			}
			contours = append(contours, Contour{Points: pts, Parent: -1})
		}
	}

	attachHoles(bm, visited, contours)
	return contours
}

// fillRegion marks every foreground pixel 8-connected to (startX, startY)
// as visited. 8-connectivity matches the Moore trace, so the fill covers
// exactly the region whose boundary was just traced.
func fillRegion(bm *raster.Bitmap, visited []bool, startX, startY int) {
	w := bm.Width
	start := startY*w + startX
	visited[start] = true

	q := list.New()
	q.PushBack(start)
	for q.Len() > 0 {
		e := q.Front()
		q.Remove(e)
		ci, ok := e.Value.(int)
		if !ok {
			continue // skip invalid
		}
		cx, cy := ci%w, ci/w
		for i := range 8 {
			nx, ny := cx+ndx[i], cy+ndy[i]
			if !matches(bm, nx, ny, true) {
				continue
			}
			ni := ny*w + nx
			if visited[ni] {
				continue
			}
			visited[ni] = true
			q.PushBack(ni)
		}
	}
}

// matches reports whether (x, y) belongs to the region being traced.
// Out-of-bounds positions never match.
func matches(bm *raster.Bitmap, x, y int, foreground bool) bool {
	if x < 0 || y < 0 || x >= bm.Width || y >= bm.Height {
		return false
	}
	return bm.IsForeground(x, y) == foreground
}

// traceBoundary follows the boundary of a region using Moore-neighbor
// tracing. At each step the 8 directions are scanned clockwise starting
// from the current search direction; the first matching neighbor becomes
// the current pixel and the search direction turns left ((found+6) mod 8)
// to keep the trace on one side of the boundary. The trace terminates when
// it returns to the start pixel with at least minRingPoints collected, or
// aborts early when no matching neighbor exists. The early abort is the
// sole bound on pathological single-pixel-wide structures.
func traceBoundary(bm *raster.Bitmap, visited []bool, sx, sy int, foreground bool) []utils.Point {
	w := bm.Width
	cx, cy := sx, sy
	dir := startDirection

	visited[sy*w+sx] = true
	pts := []utils.Point{{X: float64(sx), Y: float64(sy)}}

	for {
		next := -1
		for i := range 8 {
			d := (dir + i) % 8
			nx, ny := cx+ndx[d], cy+ndy[d]
			if matches(bm, nx, ny, foreground) {
				next = d
				break
			}
		}
		if next == -1 {
			return pts
		}

		cx, cy = cx+ndx[next], cy+ndy[next]
		dir = (next + 6) % 8

		visited[cy*w+cx] = true
		last := pts[len(pts)-1]
		if last.X != float64(cx) || last.Y != float64(cy) {
			pts = append(pts, utils.Point{X: float64(cx), Y: float64(cy)})
		}

		if cx == sx && cy == sy && len(pts) >= minRingPoints {
			return pts
		}
	}
}
