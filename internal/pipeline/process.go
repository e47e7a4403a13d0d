package pipeline

import (
	"encoding/base64"
	"errors"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/MeKo-Tech/vectra/internal/common"
	"github.com/MeKo-Tech/vectra/internal/export"
	"github.com/MeKo-Tech/vectra/internal/geomfix"
	"github.com/MeKo-Tech/vectra/internal/raster"
	"github.com/MeKo-Tech/vectra/internal/tracer"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

// ProcessImage converts a decoded image into vector output.
func (p *Pipeline) ProcessImage(img image.Image, req Request) (*Result, error) {
	if p == nil {
		return nil, processErr(CodeProcessingFailed, errors.New("pipeline not initialized"))
	}
	if img == nil {
		return nil, processErr(CodeDecodeFailed, errors.New("input image is nil"))
	}
	normalized, err := utils.NormalizeImage(img, p.cfg.Constraints)
	if err != nil {
		return nil, processErr(CodeDecodeFailed, err)
	}
	return p.ProcessBitmap(raster.FromImage(normalized), req)
}

// ProcessBitmap runs the full conversion over a decoded bitmap: optional
// AI edge stage (with fallback), preprocessing, contour extraction,
// simplification, validation/repair and both export writers. Stage
// timings and node/polygon counts are accumulated into the result metrics.
func (p *Pipeline) ProcessBitmap(bm *raster.Bitmap, req Request) (*Result, error) {
	if bm == nil || bm.Width == 0 || bm.Height == 0 {
		return nil, processErr(CodeDecodeFailed, errors.New("input bitmap is empty"))
	}
	if err := req.Validate(); err != nil {
		return nil, processErr(CodeInvalidRequest, err)
	}
	opts := OptionsFromRequest(req)

	slog.Debug("Starting vectorization",
		"width", bm.Width, "height", bm.Height,
		"fidelity", req.Fidelity,
		"epsilon", opts.Epsilon,
		"area_min", opts.AreaMin,
		"use_ai", opts.UseAI)

	total := common.NewNamedTimer("total")
	var metrics Metrics

	working := p.runAIStage(bm, opts, &metrics)
	binary := p.preprocess(working, opts, &metrics)
	polygons := p.vectorize(binary, opts, &metrics)

	exp := common.NewNamedTimer("export")
	svg := export.GenerateSVG(polygons, export.SVGOptions{
		Width:  bm.Width,
		Height: bm.Height,
		Fill:   req.WhiteFill,
	})
	dxf := export.GenerateDXF(polygons, export.DXFOptions{Fill: req.WhiteFill})
	metrics.Timings.Export = exp.StopMS()

	metrics.NodeCount = geomfix.NodeCount(polygons)
	metrics.PolygonCount = len(polygons)
	metrics.Timings.Total = total.StopMS()
	metrics.Memory = GetMemStats()

	slog.Debug("Vectorization complete",
		"polygons", metrics.PolygonCount,
		"nodes", metrics.NodeCount,
		"total_ms", metrics.Timings.Total)

	return &Result{
		SVG:     svg,
		DXF:     base64.StdEncoding.EncodeToString([]byte(dxf)),
		Metrics: metrics,
	}, nil
}

// runAIStage invokes the neural edge detector when requested, falling
// back to the input bitmap on any failure. AI is never required for a
// successful result.
func (p *Pipeline) runAIStage(bm *raster.Bitmap, opts ProcessingOptions, metrics *Metrics) *raster.Bitmap {
	if !opts.UseAI || p.edge == nil {
		return bm
	}
	timer := common.NewNamedTimer("ai")
	out, err := p.edge.Process(bm)
	metrics.Timings.AIProcessing = timer.StopMS()
	if err != nil {
		slog.Warn("AI preprocessing failed, continuing with original bitmap", "error", err)
		return bm
	}
	p.dumpDebug("edge.png", out)
	return out
}

func (p *Pipeline) preprocess(bm *raster.Bitmap, opts ProcessingOptions, metrics *Metrics) *raster.Bitmap {
	timer := common.NewNamedTimer("preprocess")

	gray := raster.Grayscale(bm)
	blurred := raster.GaussianBlur(gray, p.cfg.BlurRadius)
	binary := raster.Binarize(blurred, opts.Threshold)
	closed := raster.Close(binary, p.cfg.CloseIterations)
	despeckled := raster.RemoveSpeckles(closed, int(opts.AreaMin))

	metrics.Timings.Preprocessing = timer.StopMS()
	p.dumpDebug("gray.png", gray)
	p.dumpDebug("binary.png", binary)
	p.dumpDebug("despeckled.png", despeckled)
	return despeckled
}

func (p *Pipeline) vectorize(binary *raster.Bitmap, opts ProcessingOptions, metrics *Metrics) []geomfix.Polygon {
	timer := common.NewNamedTimer("vectorize")

	contours := tracer.Extract(binary)
	rawNodes := tracer.NodeCount(contours)
	tracer.Simplify(contours, opts.Epsilon)
	simplifiedNodes := tracer.NodeCount(contours)
	if rawNodes > 0 {
		metrics.Simplification = 1 - float64(simplifiedNodes)/float64(rawNodes)
	}

	polygons := contoursToPolygons(contours)
	polygons = geomfix.Validate(polygons, p.repairer)
	polygons = geomfix.Cleanup(polygons, opts.AreaMin)

	metrics.Timings.Vectorization = timer.StopMS()
	return polygons
}

// contoursToPolygons reinterprets simplified contours as polygons; the
// contours are discarded afterwards.
func contoursToPolygons(contours []tracer.Contour) []geomfix.Polygon {
	polygons := make([]geomfix.Polygon, 0, len(contours))
	for _, c := range contours {
		polygons = append(polygons, geomfix.Polygon{Exterior: c.Points, Holes: c.Holes})
	}
	return polygons
}

func (p *Pipeline) dumpDebug(name string, bm *raster.Bitmap) {
	if p.cfg.DebugDir == "" || bm == nil {
		return
	}
	path := filepath.Join(p.cfg.DebugDir, name)
	if err := utils.SavePNG(path, bm.ToImage()); err != nil {
		slog.Warn("failed to write debug image", "path", path, "error", err)
	}
}
