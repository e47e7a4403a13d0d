package geomfix

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

type stubRepairer struct {
	polys []Polygon
	err   error
}

func (s stubRepairer) Repair(Polygon) ([]Polygon, error) {
	return s.polys, s.err
}

func TestValidateReordersClockwiseExterior(t *testing.T) {
	cw := Polygon{Exterior: []utils.Point{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
	}}
	out := Validate([]Polygon{cw}, nil)
	require.Len(t, out, 1)
	assert.Negative(t, utils.SignedArea(out[0].Exterior))
}

func TestValidateWindingConvention(t *testing.T) {
	p := Polygon{
		Exterior: square(10),
		Holes: [][]utils.Point{
			{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 2, Y: 2}},
		},
	}
	out := Validate([]Polygon{p}, nil)
	require.Len(t, out, 1)
	assert.Negative(t, utils.SignedArea(out[0].Exterior), "exterior is CCW")
	for _, h := range out[0].Holes {
		assert.Positive(t, utils.SignedArea(h), "holes are CW")
	}
}

func TestValidateClosesOpenRings(t *testing.T) {
	open := Polygon{Exterior: []utils.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}}
	out := Validate([]Polygon{open}, nil)
	require.Len(t, out, 1)
	ext := out[0].Exterior
	assert.Equal(t, ext[0], ext[len(ext)-1])
}

func TestValidateDiscardsDegenerateExterior(t *testing.T) {
	line := Polygon{Exterior: []utils.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}}
	out := Validate([]Polygon{line}, nil)
	assert.Empty(t, out)
}

func TestValidateDropsDegenerateHolesOnly(t *testing.T) {
	p := Polygon{
		Exterior: square(10),
		Holes: [][]utils.Point{
			{{X: 2, Y: 2}, {X: 3, Y: 3}}, // degenerate
			{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 4}},
		},
	}
	out := Validate([]Polygon{p}, nil)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Holes, 1)
}

func TestValidateRepairFailureKeepsPolygon(t *testing.T) {
	p := Polygon{Exterior: square(10)}
	out := Validate([]Polygon{p}, stubRepairer{err: errors.New("boom")})
	require.Len(t, out, 1)
	assert.Negative(t, utils.SignedArea(out[0].Exterior))
}

func TestValidateEmptyRepairDiscards(t *testing.T) {
	p := Polygon{Exterior: square(10)}
	out := Validate([]Polygon{p}, stubRepairer{})
	assert.Empty(t, out)
}

func TestValidateUsesFirstRepairResult(t *testing.T) {
	replacement := Polygon{Exterior: []utils.Point{
		{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0},
	}}
	other := Polygon{Exterior: square(2)}
	out := Validate([]Polygon{{Exterior: square(10)}}, stubRepairer{polys: []Polygon{replacement, other}})
	require.Len(t, out, 1)

	ext := out[0].Exterior
	assert.Negative(t, utils.SignedArea(ext), "repair result is re-normalized")
	assert.InDelta(t, 16.0, out[0].Area(), 1e-9)
	assert.Equal(t, ext[0], ext[len(ext)-1], "repair result is re-closed")
}

func TestCleanupCullsSmallPolygons(t *testing.T) {
	big := Polygon{Exterior: square(10)}  // area 100
	small := Polygon{Exterior: square(1)} // area 1
	out := Cleanup([]Polygon{big, small}, 50)
	require.Len(t, out, 1)
	assert.InDelta(t, 100.0, out[0].Area(), 1e-9)
}

func TestCleanupCullsSmallHoles(t *testing.T) {
	p := Polygon{
		Exterior: square(10),
		Holes: [][]utils.Point{
			// Area 4, above 10*0.1.
			{{X: 1, Y: 1}, {X: 1, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 1}, {X: 1, Y: 1}},
			// Area 0.25, below threshold.
			{{X: 5, Y: 5}, {X: 5, Y: 5.5}, {X: 5.5, Y: 5.5}, {X: 5.5, Y: 5}, {X: 5, Y: 5}},
		},
	}
	out := Cleanup([]Polygon{p}, 10)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Holes, 1)
}

func TestCleanupSnapsToGrid(t *testing.T) {
	p := Polygon{Exterior: []utils.Point{
		{X: 0.0004, Y: 0}, {X: 10.0006, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0.0004, Y: 0},
	}}
	out := Cleanup([]Polygon{p}, 1)
	require.Len(t, out, 1)
	for _, pt := range out[0].Exterior {
		assert.InDelta(t, pt.X, utils.SnapToGrid(pt.X, GridUnit), 1e-12)
		assert.InDelta(t, pt.Y, utils.SnapToGrid(pt.Y, GridUnit), 1e-12)
	}
}

func TestNodeCountExcludesClosingDuplicates(t *testing.T) {
	polys := []Polygon{
		{
			Exterior: square(10), // 4 distinct
			Holes: [][]utils.Point{
				{{X: 2, Y: 2}, {X: 2, Y: 4}, {X: 4, Y: 4}, {X: 2, Y: 2}}, // 3 distinct
			},
		},
	}
	assert.Equal(t, 7, NodeCount(polys))
	assert.Zero(t, NodeCount(nil))
}
