package raster

// Morphological operations over the binary foreground/background model.
// Foreground is black (0), so dilation of foreground takes the 3×3
// neighborhood minimum and erosion takes the maximum.

// Close applies morphological closing (dilate then erode) for the given
// number of iterations. Closing fills small gaps in the foreground without
// growing the net shape.
func Close(src *Bitmap, iterations int) *Bitmap {
	if iterations <= 0 {
		return src.Clone()
	}
	result := src
	for range iterations {
		result = Erode(Dilate(result))
	}
	if result == src {
		return src.Clone()
	}
	return result
}

// Dilate expands foreground regions by taking the 3×3 neighborhood minimum.
func Dilate(src *Bitmap) *Bitmap {
	return morph3x3(src, func(best, v uint8) bool { return v < best })
}

// Erode shrinks foreground regions by taking the 3×3 neighborhood maximum.
func Erode(src *Bitmap) *Bitmap {
	return morph3x3(src, func(best, v uint8) bool { return v > best })
}

// morph3x3 applies a 3×3 selection filter. Out-of-bounds neighbors are
// skipped, matching clamp-free border behavior for binary masks.
func morph3x3(src *Bitmap, better func(best, v uint8) bool) *Bitmap {
	w, h := src.Width, src.Height
	dst := &Bitmap{Width: w, Height: h, Pix: make([]uint8, len(src.Pix))}
	for y := range h {
		for x := range w {
			best := src.Gray(x, y)
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					nx, ny := x+kx, y+ky
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if v := src.Gray(nx, ny); better(best, v) {
						best = v
					}
				}
			}
			dst.setGray((y*w+x)*4, best)
		}
	}
	return dst
}
