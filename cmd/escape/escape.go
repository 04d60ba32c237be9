package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/willbeason/fractal-zoom/pkg/escape"
	"github.com/willbeason/fractal-zoom/pkg/frames"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
)

const (
	Width         = 1500
	Height        = 1000
	MaxIterations = 100
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escape",
		Short: "Render one escape-time frame of a recurrence",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	addFlags(cmd.Flags())

	return cmd
}

func addFlags(flags *pflag.FlagSet) {
	flags.Int("width", Width, "raster width in pixels")
	flags.Int("height", Height, "raster height in pixels")
	flags.Int("iterations", MaxIterations, "iteration cap")
	flags.String("region", "default", fmt.Sprintf("region to render, one of %v", geometry.LandmarkNames()))
	flags.String("recurrence", "mandelbrot", fmt.Sprintf("recurrence, one of %v", transforms.Names()))
	flags.String("c", "0", "complex constant of the recurrence, e.g. 0.7+0.42i")
	flags.String("power", "2", "exponent of the power recurrences")
	flags.Int("workers", 0, "rows rendered in parallel; 0 means one per CPU")
	flags.String("out", "", "output file; defaults to out/<timestamp>.<format>")
	flags.String("format", string(frames.PNG), "image format, png or bmp")
	flags.Bool("flip", false, "put the largest imaginary part at the top of the image")
	flags.Bool("verbose", false, "log render details")
}

func runCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	res := geometry.Resolution{Width: width, Height: height}
	maxIterations, _ := flags.GetInt("iterations")

	regionName, _ := flags.GetString("region")
	region, err := geometry.Landmark(regionName)
	if err != nil {
		return err
	}

	name, _ := flags.GetString("recurrence")
	cStr, _ := flags.GetString("c")
	c, err := strconv.ParseComplex(cStr, 128)
	if err != nil {
		return fmt.Errorf("--c: %w", err)
	}
	nStr, _ := flags.GetString("power")
	n, err := strconv.ParseComplex(nStr, 128)
	if err != nil {
		return fmt.Errorf("--power: %w", err)
	}
	rec, err := transforms.Parse(name, transforms.Params{C: c, N: n})
	if err != nil {
		return err
	}

	formatStr, _ := flags.GetString("format")
	format, err := frames.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	level := slog.LevelInfo
	if verbose, _ := flags.GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))

	workers, _ := flags.GetInt("workers")
	e := escape.Evaluator{Workers: workers, Logger: logger}

	g, err := e.Evaluate(cmd.Context(), rec, maxIterations, region, res)
	if err != nil {
		return err
	}

	out, _ := flags.GetString("out")
	if out == "" {
		out = filepath.Join("out", time.Now().Format("20060102150405")+format.Ext())
	}

	err = os.MkdirAll(filepath.Dir(out), os.ModePerm)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	flip, _ := flags.GetBool("flip")
	err = frames.Encode(f, frames.Image(g, flip), format)
	if err != nil {
		return err
	}

	logger.Info("rendered", "recurrence", name, "region", region.String(), "out", out)
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
