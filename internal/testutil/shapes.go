package testutil

import (
	"image/color"

	"github.com/MeKo-Tech/vectra/internal/raster"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// FilledRect returns a white bitmap with a black rectangle drawn at
// (x, y) of the given size.
func FilledRect(width, height, x, y, w, h int) *raster.Bitmap {
	bm := raster.New(width, height)
	fillRect(bm, x, y, w, h, black)
	return bm
}

// RingShape returns a white bitmap with a black rectangle that has a
// white rectangular hole punched into it. Both rectangles share the
// same center.
func RingShape(width, height, x, y, w, h, holeW, holeH int) *raster.Bitmap {
	bm := FilledRect(width, height, x, y, w, h)
	hx := x + (w-holeW)/2
	hy := y + (h-holeH)/2
	fillRect(bm, hx, hy, holeW, holeH, white)
	return bm
}

// DisjointBlobs returns a white bitmap with n separate black squares of
// the given size laid out on a grid with at least gap pixels between
// them. The bitmap grows to fit.
func DisjointBlobs(n, size, gap int) *raster.Bitmap {
	cols := n
	step := size + gap
	bm := raster.New(cols*step+gap, size+2*gap)
	for i := range n {
		fillRect(bm, gap+i*step, gap, size, size, black)
	}
	return bm
}

// Checkerboard returns a bitmap of cells×cells squares alternating
// between foreground and background, cellSize pixels each.
func Checkerboard(cells, cellSize int) *raster.Bitmap {
	bm := raster.New(cells*cellSize, cells*cellSize)
	for cy := range cells {
		for cx := range cells {
			if (cx+cy)%2 == 0 {
				fillRect(bm, cx*cellSize, cy*cellSize, cellSize, cellSize, black)
			}
		}
	}
	return bm
}

// NoisyRect returns a filled rectangle with isolated single foreground
// pixels sprinkled at the given positions, for speckle removal tests.
func NoisyRect(width, height, x, y, w, h int, speckles [][2]int) *raster.Bitmap {
	bm := FilledRect(width, height, x, y, w, h)
	for _, s := range speckles {
		bm.Set(s[0], s[1], black)
	}
	return bm
}

// CountForeground returns the number of foreground pixels in the bitmap.
func CountForeground(bm *raster.Bitmap) int {
	count := 0
	for y := range bm.Height {
		for x := range bm.Width {
			if bm.IsForeground(x, y) {
				count++
			}
		}
	}
	return count
}

func fillRect(bm *raster.Bitmap, x, y, w, h int, c color.RGBA) {
	for dy := range h {
		for dx := range w {
			bm.Set(x+dx, y+dy, c)
		}
	}
}
