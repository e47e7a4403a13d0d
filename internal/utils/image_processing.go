package utils

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ImageProcessingError represents errors that can occur during image processing.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// ImageConstraints defines the size constraints applied to input images
// before vectorization.
type ImageConstraints struct {
	MaxWidth  int
	MaxHeight int
	MinWidth  int
	MinHeight int
}

// DefaultImageConstraints returns the default constraints for vector conversion.
func DefaultImageConstraints() ImageConstraints {
	return ImageConstraints{
		MaxWidth:  4096,
		MaxHeight: 4096,
		MinWidth:  2,
		MinHeight: 2,
	}
}

// NormalizeImage downscales an image to fit within the constraints while
// preserving aspect ratio. Images already within bounds are returned
// unchanged; images are never upscaled. Uses Lanczos resampling.
func NormalizeImage(img image.Image, constraints ImageConstraints) (image.Image, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "normalize", Err: errors.New("input image is nil")}
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width < constraints.MinWidth || height < constraints.MinHeight {
		return nil, &ImageProcessingError{
			Operation: "normalize",
			Err: fmt.Errorf("image dimensions %dx%d below minimum %dx%d",
				width, height, constraints.MinWidth, constraints.MinHeight),
		}
	}

	scaleX := float64(constraints.MaxWidth) / float64(width)
	scaleY := float64(constraints.MaxHeight) / float64(height)
	scale := math.Min(scaleX, scaleY)
	if scale >= 1.0 {
		return img, nil
	}

	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < constraints.MinWidth {
		newWidth = constraints.MinWidth
	}
	if newHeight < constraints.MinHeight {
		newHeight = constraints.MinHeight
	}

	return imaging.Resize(img, newWidth, newHeight, imaging.Lanczos), nil
}
