package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImageWithinBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out, err := NormalizeImage(img, DefaultImageConstraints())
	require.NoError(t, err)
	assert.Same(t, image.Image(img), out, "in-bounds images pass through untouched")
}

func TestNormalizeImageDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8192, 4096))
	out, err := NormalizeImage(img, DefaultImageConstraints())
	require.NoError(t, err)

	b := out.Bounds()
	assert.Equal(t, 4096, b.Dx())
	assert.Equal(t, 2048, b.Dy(), "aspect ratio preserved")
}

func TestNormalizeImageTooSmall(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	_, err := NormalizeImage(img, DefaultImageConstraints())
	require.Error(t, err)

	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "normalize", procErr.Operation)
}

func TestNormalizeImageNil(t *testing.T) {
	_, err := NormalizeImage(nil, DefaultImageConstraints())
	require.Error(t, err)
}

func TestNormalizeImageNeverUpscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out, err := NormalizeImage(img, ImageConstraints{
		MaxWidth: 1000, MaxHeight: 1000, MinWidth: 2, MinHeight: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Bounds().Dx())
	assert.Equal(t, 10, out.Bounds().Dy())
}
