package pipeline

import "fmt"

// Fidelity mapping constants. Higher fidelity lowers both the
// simplification tolerance and the minimum retained feature area.
const (
	baseEpsilon = 2.0
	baseAreaMin = 100.0

	minEpsilon = 0.1
	minAreaMin = 1.0

	defaultThreshold = 128
)

// Request carries the per-invocation conversion parameters. Zero values
// for Threshold and DespeckleAreaMin mean "derive from defaults".
type Request struct {
	Fidelity         int     `json:"fidelity"`
	WhiteFill        bool    `json:"whiteFill"`
	Threshold        int     `json:"threshold,omitempty"`
	DespeckleAreaMin float64 `json:"despeckleAreaMin,omitempty"`
	UseAI            bool    `json:"useAI,omitempty"`
}

// Validate range-checks the request.
func (r Request) Validate() error {
	if r.Fidelity < 0 || r.Fidelity > 100 {
		return fmt.Errorf("fidelity must be in [0, 100], got %d", r.Fidelity)
	}
	if r.Threshold < 0 || r.Threshold > 255 {
		return fmt.Errorf("threshold must be in [0, 255], got %d", r.Threshold)
	}
	if r.DespeckleAreaMin < 0 {
		return fmt.Errorf("despeckle area min must be non-negative, got %g", r.DespeckleAreaMin)
	}
	return nil
}

// ProcessingOptions are the derived per-run parameters, constructed once
// from the request and fidelity mapping.
type ProcessingOptions struct {
	Epsilon   float64 // simplification tolerance, px
	AreaMin   float64 // polygon culling threshold, px²
	Threshold uint8   // binarization level
	UseAI     bool
}

// OptionsFromRequest maps the fidelity knob to processing options:
//
//	epsilon = max(0.1, 2.0·(1 − fidelity/100·0.8))
//	areaMin = max(1, user or 100·(1 − fidelity/100·0.9))
//
// User overrides take precedence; a zero threshold falls back to 128.
func OptionsFromRequest(r Request) ProcessingOptions {
	f := float64(r.Fidelity) / 100

	epsilon := baseEpsilon * (1 - f*0.8)
	if epsilon < minEpsilon {
		epsilon = minEpsilon
	}

	areaMin := r.DespeckleAreaMin
	if areaMin == 0 {
		areaMin = baseAreaMin * (1 - f*0.9)
	}
	if areaMin < minAreaMin {
		areaMin = minAreaMin
	}

	threshold := r.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}

	return ProcessingOptions{
		Epsilon:   epsilon,
		AreaMin:   areaMin,
		Threshold: uint8(threshold),
		UseAI:     r.UseAI,
	}
}
