// Package raster implements the bitmap preprocessing stages that turn a
// decoded RGBA image into a clean binary foreground/background map ready
// for contour tracing: grayscale reduction, Gaussian blur, threshold
// binarization, morphological closing and speckle removal. Every stage is
// a pure bitmap→bitmap transform returning a fresh buffer.
package raster

import (
	"image"
	"image/color"
)

// Foreground and background pixel values for the binary stage. After
// binarization every pixel's R/G/B channels are equal and hold one of
// these two values; alpha is always opaque.
const (
	Foreground uint8 = 0
	Background uint8 = 255
)

// Bitmap is a width×height RGBA pixel buffer, 4 bytes per pixel.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns an all-background bitmap of the given size.
func New(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		return &Bitmap{Width: 0, Height: 0, Pix: nil}
	}
	pix := make([]uint8, width*height*4)
	for i := range pix {
		pix[i] = 255
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}
}

// FromImage copies a decoded image into a Bitmap. The source is never
// aliased; callers keep ownership of img.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	bm := &Bitmap{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && bounds.Min == (image.Point{}) {
		copy(bm.Pix, rgba.Pix[:w*h*4])
		return bm
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			bm.Pix[i] = uint8(r >> 8)
			bm.Pix[i+1] = uint8(g >> 8)
			bm.Pix[i+2] = uint8(b >> 8)
			bm.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return bm
}

// ToImage copies the bitmap into a new image.RGBA.
func (b *Bitmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// At returns the RGBA color at (x, y). Out-of-bounds reads return background.
func (b *Bitmap) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	i := (y*b.Width + x) * 4
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes an RGBA color at (x, y). Out-of-bounds writes are ignored.
func (b *Bitmap) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * 4
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Gray returns the red channel at (x, y), which equals the luminance for
// grayscale and binary bitmaps. Out-of-bounds reads return Background.
func (b *Bitmap) Gray(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Background
	}
	return b.Pix[(y*b.Width+x)*4]
}

// IsForeground reports whether (x, y) is a foreground (black) pixel.
// Out-of-bounds positions are background.
func (b *Bitmap) IsForeground(x, y int) bool {
	return b.Gray(x, y) == Foreground
}

// setGray writes v to the R/G/B channels at index base i (pixel offset *4)
// and forces alpha opaque.
func (b *Bitmap) setGray(i int, v uint8) {
	b.Pix[i] = v
	b.Pix[i+1] = v
	b.Pix[i+2] = v
	b.Pix[i+3] = 255
}
