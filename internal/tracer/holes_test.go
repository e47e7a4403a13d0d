package tracer

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/MeKo-Tech/vectra/internal/utils"
)

func TestFindParent(t *testing.T) {
	square := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	far := orb.Ring{{100, 100}, {110, 100}, {110, 110}, {100, 110}, {100, 100}}
	exteriors := []orb.Ring{far, square}

	assert.Equal(t, 1, findParent(exteriors, utils.Point{X: 5, Y: 5}))
	assert.Equal(t, 0, findParent(exteriors, utils.Point{X: 105, Y: 105}))
	assert.Equal(t, -1, findParent(exteriors, utils.Point{X: 50, Y: 50}))
}

func TestFindParentSkipsDegenerateRings(t *testing.T) {
	exteriors := []orb.Ring{{{0, 0}, {1, 1}}}
	assert.Equal(t, -1, findParent(exteriors, utils.Point{X: 0.5, Y: 0.5}))
}

func TestToRingClosesOpenRings(t *testing.T) {
	ring := toRing([]utils.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	assert.Len(t, ring, 4)
	assert.Equal(t, ring[0], ring[len(ring)-1])

	closed := toRing([]utils.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}})
	assert.Len(t, closed, 3, "already-closed input is not extended")

	assert.Nil(t, toRing(nil))
}
