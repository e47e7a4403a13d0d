package onnx

import (
	"errors"
	"fmt"
)

// Tensor is a float32 tensor prepared for ONNX input, NCHW for images.
type Tensor struct {
	Data  []float32
	Shape []int64 // [N, C, H, W]
}

// NewImageTensor builds a single-image tensor with shape [1, C, H, W].
// data must be length C*H*W in NCHW order.
func NewImageTensor(data []float32, c, h, w int) (Tensor, error) {
	if data == nil {
		return Tensor{}, errors.New("nil data")
	}
	expected := c * h * w
	if len(data) != expected {
		return Tensor{}, fmt.Errorf("unexpected data length: got %d, want %d", len(data), expected)
	}
	return Tensor{Data: data, Shape: []int64{1, int64(c), int64(h), int64(w)}}, nil
}

// ValidateNCHW ensures a shape is [N, C, H, W] with positive dimensions.
func ValidateNCHW(shape []int64) error {
	if len(shape) != 4 {
		return fmt.Errorf("shape rank %d != 4", len(shape))
	}
	for i, v := range shape {
		if v <= 0 {
			return fmt.Errorf("dimension %d must be > 0, got %d", i, v)
		}
	}
	return nil
}

// GrayscaleToNCHW normalizes an 8-bit single-channel pixel buffer into
// dst as [0,1] floats in NCHW order with C=1. dst must have length w*h;
// callers may pass a pooled buffer.
func GrayscaleToNCHW(dst []float32, pix []uint8, w, h int) error {
	if len(pix) != w*h {
		return fmt.Errorf("unexpected pixel count: got %d, want %d", len(pix), w*h)
	}
	if len(dst) != len(pix) {
		return fmt.Errorf("unexpected destination length: got %d, want %d", len(dst), len(pix))
	}
	for i, v := range pix {
		dst[i] = float32(v) / 255.0
	}
	return nil
}
