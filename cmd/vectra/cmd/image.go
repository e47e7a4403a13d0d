package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/vectra/internal/pipeline"
	"github.com/MeKo-Tech/vectra/internal/utils"
)

const (
	outputFormatFiles = "files"
	outputFormatJSON  = "json"
)

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Convert image files into SVG and DXF vector output",
	Long: `Convert one or more raster images into CAD-ready vector geometry.

Supported formats: JPEG, PNG, BMP, WebP

For each input the converter writes <name>.svg and <name>.dxf next to each
other in the output directory, or prints the full result (markup, base64
DXF and metrics) as JSON with --format json.

Examples:
  vectra image drawing.png
  vectra image scan.jpg --fidelity 80 --white-fill
  vectra image plans/*.png --output-dir out --format json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}
		cfg := GetConfig()

		format := cfg.Output.Format
		if format != outputFormatFiles && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be files or json)", format)
		}

		req := pipeline.Request{
			Fidelity:         cfg.Pipeline.Fidelity,
			WhiteFill:        cfg.Pipeline.WhiteFill,
			Threshold:        cfg.Pipeline.Threshold,
			DespeckleAreaMin: cfg.Pipeline.DespeckleAreaMin,
			UseAI:            cfg.Pipeline.AI.Enabled,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		builder := pipeline.NewBuilder().
			WithBlurRadius(cfg.Pipeline.BlurRadius).
			WithCloseIterations(cfg.Pipeline.CloseIterations).
			WithConstraints(utils.ImageConstraints{
				MaxWidth:  cfg.Pipeline.MaxImageSize,
				MaxHeight: cfg.Pipeline.MaxImageSize,
				MinWidth:  2,
				MinHeight: 2,
			}).
			WithDebugDir(cfg.Output.DebugDir)
		if cfg.Pipeline.AI.Enabled {
			builder = builder.WithAI(cfg.Pipeline.AI.ModelPath).
				WithAIThreads(cfg.Pipeline.AI.NumThreads).
				WithGPU(cfg.Pipeline.AI.UseGPU)
		}

		p, err := builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}
		defer func() {
			if cerr := p.Close(); cerr != nil {
				fmt.Fprintf(os.Stderr, "Error closing pipeline: %v\n", cerr)
			}
		}()

		images, names, err := loadInputImages(args)
		if err != nil {
			return err
		}

		results, err := p.ProcessImagesParallel(context.Background(), images, req,
			pipeline.ParallelConfig{MaxWorkers: cfg.Batch.Workers})
		if err != nil {
			return err
		}

		for i, res := range results {
			if res == nil {
				continue
			}
			if err := emitResult(cmd, res, names[i], cfg.Output.Directory, format, cfg.Output.Overwrite); err != nil {
				return err
			}
		}
		return nil
	},
}

func loadInputImages(paths []string) ([]image.Image, []string, error) {
	images := make([]image.Image, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		img, _, err := utils.LoadImage(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		images = append(images, img)
		base := filepath.Base(path)
		names = append(names, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	return images, names, nil
}

func emitResult(cmd *cobra.Command, res *pipeline.Result, name, dir, format string, overwrite bool) error {
	if format == outputFormatJSON {
		s, err := res.ToJSON()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	dxf, err := base64.StdEncoding.DecodeString(res.DXF)
	if err != nil {
		return fmt.Errorf("failed to decode DXF payload: %w", err)
	}
	if err := writeOutput(filepath.Join(dir, name+".svg"), []byte(res.SVG), overwrite); err != nil {
		return err
	}
	if err := writeOutput(filepath.Join(dir, name+".dxf"), dxf, overwrite); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d polygons, %d nodes (%.1f ms)\n",
		name, res.Metrics.PolygonCount, res.Metrics.NodeCount, res.Metrics.Timings.Total)
	return nil
}

func writeOutput(path string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("output file already exists: %s (use --overwrite)", path)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().Int("fidelity", 50, "conversion fidelity (0-100); higher keeps more detail")
	imageCmd.Flags().Bool("white-fill", false, "emit fill output (SVG fill class and DXF HATCH entities)")
	imageCmd.Flags().Int("threshold", 0, "binarization threshold (1-255, 0 = default 128)")
	imageCmd.Flags().Float64("despeckle-area-min", 0, "minimum feature area in px² (0 = derive from fidelity)")
	imageCmd.Flags().Bool("ai", false, "enable neural edge-detection preprocessing")
	imageCmd.Flags().String("ai-model", "", "path to the ONNX edge-detection model")
	imageCmd.Flags().String("output-dir", ".", "directory for generated .svg/.dxf files")
	imageCmd.Flags().String("format", outputFormatFiles, "output format: files or json")
	imageCmd.Flags().Bool("overwrite", false, "overwrite existing output files")
	imageCmd.Flags().Int("workers", 0, "parallel workers for multiple inputs (0 = number of CPUs)")

	_ = viper.BindPFlag("pipeline.fidelity", imageCmd.Flags().Lookup("fidelity"))
	_ = viper.BindPFlag("pipeline.white_fill", imageCmd.Flags().Lookup("white-fill"))
	_ = viper.BindPFlag("pipeline.threshold", imageCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("pipeline.despeckle_area_min", imageCmd.Flags().Lookup("despeckle-area-min"))
	_ = viper.BindPFlag("pipeline.ai.enabled", imageCmd.Flags().Lookup("ai"))
	_ = viper.BindPFlag("pipeline.ai.model_path", imageCmd.Flags().Lookup("ai-model"))
	_ = viper.BindPFlag("output.directory", imageCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("output.format", imageCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.overwrite", imageCmd.Flags().Lookup("overwrite"))
	_ = viper.BindPFlag("batch.workers", imageCmd.Flags().Lookup("workers"))
}
