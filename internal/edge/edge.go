// Package edge runs the optional neural edge-detection preprocessing
// stage. It feeds the grayscale bitmap through an ONNX edge model and
// returns a bitmap whose luminance encodes edge strength (edges dark, so
// downstream binarization keeps them as foreground). The stage is always
// optional: any failure here is recoverable and the caller must continue
// with the pre-stage bitmap.
package edge

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/yalue/onnxruntime_go"

	"github.com/MeKo-Tech/vectra/internal/mempool"
	"github.com/MeKo-Tech/vectra/internal/onnx"
	"github.com/MeKo-Tech/vectra/internal/raster"
)

// Config holds the edge model configuration.
type Config struct {
	ModelPath  string
	NumThreads int
	GPU        onnx.GPUConfig
}

// DefaultConfig returns a CPU-only configuration with no model path set.
func DefaultConfig() Config {
	return Config{ModelPath: "", NumThreads: 0, GPU: onnx.DefaultGPUConfig()}
}

// Detector owns the ONNX session for the edge model. The session is
// acquired lazily on first use and released by Close; it is never a
// process-wide global.
type Detector struct {
	config  Config
	session *onnxruntime_go.DynamicAdvancedSession
	input   onnxruntime_go.InputOutputInfo
	output  onnxruntime_go.InputOutputInfo
	mu      sync.Mutex
}

// New validates the configuration and returns a detector. No session is
// created until the first Process call.
func New(config Config) (*Detector, error) {
	if config.ModelPath == "" {
		return nil, errors.New("edge model path is empty")
	}
	if err := onnx.ValidateGPUConfig(config.GPU); err != nil {
		return nil, err
	}
	return &Detector{config: config}, nil
}

// ensureSession initializes the ONNX environment and session on first use.
// Callers must hold d.mu.
func (d *Detector) ensureSession() error {
	if d.session != nil {
		return nil
	}
	if _, err := os.Stat(d.config.ModelPath); err != nil {
		return fmt.Errorf("edge model not found: %s", d.config.ModelPath)
	}
	if err := onnx.InitializeEnvironment(d.config.GPU.UseGPU); err != nil {
		return err
	}

	inputs, outputs, err := onnxruntime_go.GetInputOutputInfo(d.config.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to read edge model info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return errors.New("edge model declares no inputs or outputs")
	}
	d.input = inputs[0]
	d.output = outputs[0]

	sessionOptions, err := onnxruntime_go.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("failed to create session options: %w", err)
	}
	defer func() {
		if err := sessionOptions.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to destroy session options: %v\n", err)
		}
	}()

	if err := onnx.ConfigureSessionForGPU(sessionOptions, d.config.GPU); err != nil {
		return fmt.Errorf("failed to configure GPU: %w", err)
	}
	if d.config.NumThreads > 0 {
		if err := sessionOptions.SetIntraOpNumThreads(d.config.NumThreads); err != nil {
			return fmt.Errorf("failed to set thread count: %w", err)
		}
	}

	session, err := onnxruntime_go.NewDynamicAdvancedSession(d.config.ModelPath,
		[]string{d.input.Name}, []string{d.output.Name}, sessionOptions)
	if err != nil {
		return fmt.Errorf("failed to create edge session: %w", err)
	}
	d.session = session

	slog.Debug("Edge detector session created",
		"model_path", d.config.ModelPath,
		"gpu_enabled", d.config.GPU.UseGPU)
	return nil
}

// Process runs the edge model over the bitmap and returns a fresh bitmap
// of the same size whose luminance is 255·(1−edgeProbability).
func (d *Detector) Process(bm *raster.Bitmap) (*raster.Bitmap, error) {
	if bm == nil || bm.Width == 0 || bm.Height == 0 {
		return nil, errors.New("input bitmap is empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ensureSession(); err != nil {
		return nil, err
	}

	probs, w, h, err := d.infer(bm)
	if err != nil {
		return nil, err
	}
	if w != bm.Width || h != bm.Height {
		return nil, fmt.Errorf("edge model output %dx%d does not match input %dx%d",
			w, h, bm.Width, bm.Height)
	}

	out := raster.New(bm.Width, bm.Height)
	for i, p := range probs {
		v := 255 - math.Round(float64(p)*255)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		out.Pix[i*4] = uint8(v)
		out.Pix[i*4+1] = uint8(v)
		out.Pix[i*4+2] = uint8(v)
		out.Pix[i*4+3] = 255
	}
	return out, nil
}

func (d *Detector) infer(bm *raster.Bitmap) ([]float32, int, int, error) {
	n := bm.Width * bm.Height
	gray := mempool.GetUint8(n)
	defer mempool.PutUint8(gray)
	for i := range gray {
		gray[i] = bm.Pix[i*4]
	}

	data := mempool.GetFloat32(n)
	defer mempool.PutFloat32(data)
	if err := onnx.GrayscaleToNCHW(data, gray, bm.Width, bm.Height); err != nil {
		return nil, 0, 0, err
	}
	tensor, err := onnx.NewImageTensor(data, 1, bm.Height, bm.Width)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to create tensor: %w", err)
	}

	inputTensor, err := onnxruntime_go.NewTensor(onnxruntime_go.NewShape(tensor.Shape...), tensor.Data)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer func() {
		if err := inputTensor.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying input tensor: %v\n", err)
		}
	}()

	outputs := []onnxruntime_go.Value{nil}
	if err := d.session.Run([]onnxruntime_go.Value{inputTensor}, outputs); err != nil {
		return nil, 0, 0, fmt.Errorf("inference failed: %w", err)
	}
	outputTensor := outputs[0]
	defer func() {
		if err := outputTensor.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying output tensor: %v\n", err)
		}
	}()

	floatTensor, ok := outputTensor.(*onnxruntime_go.Tensor[float32])
	if !ok {
		return nil, 0, 0, fmt.Errorf("expected float32 tensor, got %T", outputTensor)
	}
	shape := outputTensor.GetShape()
	if err := onnx.ValidateNCHW(shape); err != nil {
		return nil, 0, 0, fmt.Errorf("unexpected output shape: %w", err)
	}
	// The tensor data is backed by native memory that Destroy frees.
	probs := make([]float32, len(floatTensor.GetData()))
	copy(probs, floatTensor.GetData())
	return probs, int(shape[3]), int(shape[2]), nil
}

// Close releases the ONNX session. Safe to call multiple times and on a
// detector whose session was never created.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		if err := d.session.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to destroy edge session: %v\n", err)
		}
		d.session = nil
	}
	return nil
}
