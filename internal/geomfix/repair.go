package geomfix

import (
	"errors"
	"fmt"

	"github.com/engelsjk/polygol"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

// ErrEmptyRepair is returned when the boolean collaborator produces no
// output polygons; the caller discards the polygon in that case.
var ErrEmptyRepair = errors.New("repair produced no polygons")

// Repairer removes self-intersections from a polygon-with-holes by
// performing a self-union. Implementations return the simple polygons the
// union resolves to, in their own ordering; the caller keeps the first.
type Repairer interface {
	Repair(p Polygon) ([]Polygon, error)
}

// PolygolRepairer implements Repairer with the Martinez–Rueda boolean
// clipping from github.com/engelsjk/polygol.
type PolygolRepairer struct{}

// NewRepairer returns the default polygon-boolean collaborator.
func NewRepairer() PolygolRepairer { return PolygolRepairer{} }

// Repair self-unions the polygon and converts each resulting simple
// polygon back to ring form.
func (PolygolRepairer) Repair(p Polygon) ([]Polygon, error) {
	subject := toGeom(p)
	unioned, err := polygol.Union(subject)
	if err != nil {
		return nil, fmt.Errorf("self-union failed: %w", err)
	}
	out := make([]Polygon, 0, len(unioned))
	for _, poly := range unioned {
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		out = append(out, fromGeomPolygon(poly))
	}
	return out, nil
}

// toGeom converts a polygon-with-holes into polygol's multipolygon shape
// [polygon][ring][point][xy].
func toGeom(p Polygon) polygol.Geom {
	rings := make([][][]float64, 0, 1+len(p.Holes))
	rings = append(rings, ringToCoords(p.Exterior))
	for _, h := range p.Holes {
		rings = append(rings, ringToCoords(h))
	}
	return polygol.Geom{rings}
}

func ringToCoords(ring []utils.Point) [][]float64 {
	coords := make([][]float64, len(ring))
	for i, pt := range ring {
		coords[i] = []float64{pt.X, pt.Y}
	}
	return coords
}

func fromGeomPolygon(rings [][][]float64) Polygon {
	p := Polygon{Exterior: coordsToRing(rings[0])}
	for _, ring := range rings[1:] {
		if len(ring) < 3 {
			continue
		}
		p.Holes = append(p.Holes, coordsToRing(ring))
	}
	return p
}

func coordsToRing(coords [][]float64) []utils.Point {
	ring := make([]utils.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		ring = append(ring, utils.Point{X: c[0], Y: c[1]})
	}
	return ring
}
