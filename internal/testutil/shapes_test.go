package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilledRect(t *testing.T) {
	bm := FilledRect(10, 10, 2, 3, 4, 5)
	require.Equal(t, 10, bm.Width)
	require.Equal(t, 10, bm.Height)

	assert.True(t, bm.IsForeground(2, 3))
	assert.True(t, bm.IsForeground(5, 7))
	assert.False(t, bm.IsForeground(1, 3))
	assert.False(t, bm.IsForeground(6, 3))
	assert.Equal(t, 4*5, CountForeground(bm))
}

func TestRingShape(t *testing.T) {
	bm := RingShape(9, 9, 1, 1, 7, 7, 1, 1)

	assert.True(t, bm.IsForeground(1, 1))
	assert.False(t, bm.IsForeground(4, 4), "hole center must be background")
	assert.Equal(t, 7*7-1, CountForeground(bm))
}

func TestDisjointBlobs(t *testing.T) {
	bm := DisjointBlobs(3, 4, 2)

	assert.Equal(t, 3*4*4, CountForeground(bm))
	// Gap column between the first two blobs stays background.
	for y := range bm.Height {
		assert.False(t, bm.IsForeground(6, y))
	}
}
