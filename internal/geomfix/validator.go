package geomfix

import "log/slog"

// minVertices is the smallest viable ring vertex count (excluding the
// closing duplicate).
const minVertices = 3

// holeAreaFactor scales the exterior area threshold for hole culling.
const holeAreaFactor = 0.1

// Validate runs the per-polygon repair sequence on every polygon: ring
// closure, duplicate collapse, degenerate discard, winding normalization
// and self-intersection repair via the collaborator. A failing polygon is
// skipped, never fatal to the batch. A nil repairer skips the
// self-intersection step.
func Validate(polygons []Polygon, repairer Repairer) []Polygon {
	out := make([]Polygon, 0, len(polygons))
	for _, p := range polygons {
		fixed, ok := validateOne(p, repairer)
		if !ok {
			continue
		}
		out = append(out, fixed)
	}
	return out
}

func validateOne(p Polygon, repairer Repairer) (Polygon, bool) {
	p.Exterior = collapseDuplicates(CloseRing(p.Exterior))
	if distinctPoints(p.Exterior) < minVertices {
		return Polygon{}, false
	}
	normalizeWinding(p.Exterior, false)

	holes := p.Holes[:0]
	for _, h := range p.Holes {
		h = collapseDuplicates(CloseRing(h))
		if distinctPoints(h) < minVertices {
			continue
		}
		normalizeWinding(h, true)
		holes = append(holes, h)
	}
	p.Holes = holes

	if repairer == nil {
		return p, true
	}
	repaired, err := repairer.Repair(p)
	if err != nil {
		// Graceful degradation: keep the pre-repair polygon.
		slog.Warn("self-intersection repair failed, keeping unrepaired polygon", "error", err)
		return p, true
	}
	if len(repaired) == 0 {
		return Polygon{}, false
	}
	first := repaired[0]
	first.Exterior = CloseRing(first.Exterior)
	for i := range first.Holes {
		first.Holes[i] = CloseRing(first.Holes[i])
	}
	normalizeWinding(first.Exterior, false)
	for i := range first.Holes {
		normalizeWinding(first.Holes[i], true)
	}
	if distinctPoints(first.Exterior) < minVertices {
		return Polygon{}, false
	}
	return first, true
}

// Cleanup runs the batch-level pass: cull polygons with exterior area below
// minArea, cull holes below minArea×0.1, snap all retained coordinates to
// the grid and re-discard polygons whose exterior degenerated.
func Cleanup(polygons []Polygon, minArea float64) []Polygon {
	out := make([]Polygon, 0, len(polygons))
	for _, p := range polygons {
		if p.Area() < minArea {
			continue
		}
		holes := p.Holes[:0]
		for _, h := range p.Holes {
			if holeArea(h) < minArea*holeAreaFactor {
				continue
			}
			holes = append(holes, h)
		}
		p.Holes = holes

		snapRing(p.Exterior)
		for _, h := range p.Holes {
			snapRing(h)
		}
		p.Exterior = collapseDuplicates(p.Exterior)
		if distinctPoints(p.Exterior) < minVertices {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NodeCount returns the total vertex count across all rings, excluding
// closing duplicates.
func NodeCount(polygons []Polygon) int {
	n := 0
	for _, p := range polygons {
		n += distinctPoints(p.Exterior)
		for _, h := range p.Holes {
			n += distinctPoints(h)
		}
	}
	return n
}
