package raster

import "math"

// Grayscale converts a bitmap to grayscale using Rec.601 luminance
// (0.299R + 0.587G + 0.114B) replicated to the R/G/B channels.
// Alpha is preserved.
func Grayscale(src *Bitmap) *Bitmap {
	dst := &Bitmap{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	for i := 0; i < len(src.Pix); i += 4 {
		lum := luminance(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		dst.Pix[i] = lum
		dst.Pix[i+1] = lum
		dst.Pix[i+2] = lum
		dst.Pix[i+3] = src.Pix[i+3]
	}
	return dst
}

func luminance(r, g, b uint8) uint8 {
	v := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return uint8(math.Round(v))
}

// GaussianKernel generates a normalized 1D Gaussian kernel of size
// 2·ceil(radius·2)+1 with σ = radius/3.
func GaussianKernel(radius float64) []float64 {
	if radius <= 0 {
		return []float64{1}
	}
	half := int(math.Ceil(radius * 2))
	size := 2*half + 1
	sigma := radius / 3
	kernel := make([]float64, size)
	sum := 0.0
	for i := range size {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// GaussianBlur applies a separable two-pass Gaussian blur (horizontal then
// vertical) with clamp-to-edge border handling. A radius ≤ 0 returns a copy.
func GaussianBlur(src *Bitmap, radius float64) *Bitmap {
	if radius <= 0 {
		return src.Clone()
	}
	kernel := GaussianKernel(radius)
	half := len(kernel) / 2

	horizontal := &Bitmap{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	convolvePass(src, horizontal, kernel, half, true)
	dst := &Bitmap{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	convolvePass(horizontal, dst, kernel, half, false)
	return dst
}

func convolvePass(src, dst *Bitmap, kernel []float64, half int, horizontal bool) {
	w, h := src.Width, src.Height
	for y := range h {
		for x := range w {
			var r, g, b float64
			for k, weight := range kernel {
				sx, sy := x, y
				if horizontal {
					sx = clamp(x+k-half, 0, w-1)
				} else {
					sy = clamp(y+k-half, 0, h-1)
				}
				si := (sy*w + sx) * 4
				r += weight * float64(src.Pix[si])
				g += weight * float64(src.Pix[si+1])
				b += weight * float64(src.Pix[si+2])
			}
			di := (y*w + x) * 4
			dst.Pix[di] = uint8(math.Round(r))
			dst.Pix[di+1] = uint8(math.Round(g))
			dst.Pix[di+2] = uint8(math.Round(b))
			dst.Pix[di+3] = src.Pix[di+3]
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Binarize thresholds a grayscale bitmap into the strict binary model:
// luminance ≥ threshold becomes background (255), below becomes
// foreground (0). Alpha is forced opaque.
func Binarize(src *Bitmap, threshold uint8) *Bitmap {
	dst := &Bitmap{Width: src.Width, Height: src.Height, Pix: make([]uint8, len(src.Pix))}
	for i := 0; i < len(src.Pix); i += 4 {
		v := Foreground
		if src.Pix[i] >= threshold {
			v = Background
		}
		dst.setGray(i, v)
	}
	return dst
}
