package edge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/vectra/internal/onnx"
	"github.com/MeKo-Tech/vectra/internal/raster"
)

func TestNewRequiresModelPath(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model path")
}

func TestNewRejectsInvalidGPUConfig(t *testing.T) {
	cfg := Config{
		ModelPath: "/models/edge.onnx",
		GPU:       onnx.GPUConfig{UseGPU: true, DeviceID: -1},
	}
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNewDoesNotTouchModelFile(t *testing.T) {
	// Session creation is lazy; a bogus path only fails at Process time.
	d, err := New(Config{ModelPath: filepath.Join(t.TempDir(), "missing.onnx")})
	require.NoError(t, err)
	require.NoError(t, d.Close())
}

func TestProcessMissingModelFails(t *testing.T) {
	d, err := New(Config{ModelPath: filepath.Join(t.TempDir(), "missing.onnx")})
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	_, err = d.Process(raster.New(8, 8))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProcessRejectsEmptyBitmap(t *testing.T) {
	d, err := New(Config{ModelPath: "/models/edge.onnx"})
	require.NoError(t, err)

	_, err = d.Process(nil)
	require.Error(t, err)

	_, err = d.Process(raster.New(0, 0))
	require.Error(t, err)
}

func TestCloseIdempotent(t *testing.T) {
	d, err := New(Config{ModelPath: "/models/edge.onnx"})
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.ModelPath)
	assert.Zero(t, cfg.NumThreads)
	assert.False(t, cfg.GPU.UseGPU)
}
