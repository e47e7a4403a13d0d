package tracer

import "github.com/MeKo-Tech/vectra/internal/utils"

// Simplify applies Douglas–Peucker reduction with a single epsilon to the
// exterior ring and every hole ring of each contour, replacing the point
// slices in place. Rings are treated as open paths with fixed endpoints;
// there is no cross-ring interaction.
func Simplify(contours []Contour, epsilon float64) {
	if epsilon <= 0 {
		return
	}
	for i := range contours {
		contours[i].Points = utils.SimplifyRing(contours[i].Points, epsilon)
		for j := range contours[i].Holes {
			contours[i].Holes[j] = utils.SimplifyRing(contours[i].Holes[j], epsilon)
		}
	}
}

// NodeCount returns the total number of points across all rings.
func NodeCount(contours []Contour) int {
	n := 0
	for _, c := range contours {
		n += len(c.Points)
		for _, h := range c.Holes {
			n += len(h)
		}
	}
	return n
}
