package pipeline

import (
	"encoding/json"
	"errors"
)

// Timings holds per-stage durations in milliseconds.
type Timings struct {
	Preprocessing float64 `json:"preprocessing"`
	AIProcessing  float64 `json:"aiProcessing"`
	Vectorization float64 `json:"vectorization"`
	Export        float64 `json:"export"`
	Total         float64 `json:"total"`
}

// Metrics aggregates conversion statistics for one invocation.
type Metrics struct {
	NodeCount      int      `json:"nodeCount"`
	PolygonCount   int      `json:"polygonCount"`
	Simplification float64  `json:"simplification"`
	Timings        Timings  `json:"timings"`
	Memory         MemStats `json:"memory"`
}

// Result is the output contract of a conversion: the SVG markup, the
// base64-encoded DXF exchange file and the metrics.
type Result struct {
	SVG     string  `json:"svgMarkup"`
	DXF     string  `json:"cadExchange"`
	Metrics Metrics `json:"metrics"`
}

// ToJSON serializes a result to pretty JSON.
func (r *Result) ToJSON() (string, error) {
	if r == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
