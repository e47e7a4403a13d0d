package geomfix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		p    Polygon
		want bool
	}{
		{
			name: "simple square",
			p:    Polygon{Exterior: square(10)},
			want: true,
		},
		{
			name: "square with valid hole",
			p: Polygon{
				Exterior: square(10),
				Holes: [][]utils.Point{
					{{X: 2, Y: 2}, {X: 2, Y: 8}, {X: 8, Y: 8}, {X: 8, Y: 2}, {X: 2, Y: 2}},
				},
			},
			want: true,
		},
		{
			name: "too few exterior points",
			p:    Polygon{Exterior: []utils.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
			want: false,
		},
		{
			name: "degenerate hole",
			p: Polygon{
				Exterior: square(10),
				Holes:    [][]utils.Point{{{X: 1, Y: 1}, {X: 2, Y: 2}}},
			},
			want: false,
		},
		{
			name: "zero area exterior",
			p: Polygon{Exterior: []utils.Point{
				{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0},
			}},
			want: false,
		},
		{
			name: "bowtie self-intersection",
			p: Polygon{Exterior: []utils.Point{
				{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
			}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.p))
		})
	}
}

func TestRingSelfIntersects(t *testing.T) {
	assert.False(t, ringSelfIntersects(square(10)))

	bowtie := []utils.Point{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
	}
	assert.True(t, ringSelfIntersects(bowtie))

	triangle := []utils.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 3}}
	assert.False(t, ringSelfIntersects(triangle))
}

func TestValidatorOutputSatisfiesValidity(t *testing.T) {
	polys := []Polygon{
		{Exterior: []utils.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}},
		{Exterior: square(5)},
	}
	out := Cleanup(Validate(polys, NewRepairer()), 1)
	for _, p := range out {
		assert.True(t, IsValid(p))
		assert.Negative(t, utils.SignedArea(p.Exterior))
	}
}
