package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/google/gops/agent"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/willbeason/fractal-zoom/pkg/frames"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
	"github.com/willbeason/fractal-zoom/pkg/zoom"
)

const (
	flagWidth      = "width"
	flagHeight     = "height"
	flagSections   = "sections"
	flagTop        = "top"
	flagFrames     = "frames"
	flagSeed       = "seed"
	flagRegion     = "region"
	flagReMin      = "re-min"
	flagReMax      = "re-max"
	flagImMin      = "im-min"
	flagImMax      = "im-max"
	flagRecurrence = "recurrence"
	flagC          = "c"
	flagPower      = "power"
	flagFixed      = "fixed-iterations"
	flagWeight     = "weight"
	flagWorkers    = "workers"
	flagOut        = "out"
	flagFormat     = "format"
	flagFinalOnly  = "final-only"
	flagFlip       = "flip"
	flagLogLevel   = "log-level"
	flagGops       = "gops"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Fly into an escape-time fractal, zooming on its brightest sections",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	defaults := zoom.DefaultConfig()

	flags := cmd.Flags()
	flags.Int(flagWidth, defaults.Resolution.Width, "raster width in pixels")
	flags.Int(flagHeight, defaults.Resolution.Height, "raster height in pixels")
	flags.Int(flagSections, defaults.Sections, "sections per axis used to score a frame")
	flags.Int(flagTop, defaults.TopSelect, "number of brightest sections the next frame is drawn from")
	flags.Int(flagFrames, defaults.SeqLen, "number of frames to render")
	flags.Int64(flagSeed, 0, "random seed; 0 picks one from the clock")
	flags.String(flagRegion, "default", fmt.Sprintf("starting region, one of %v", geometry.LandmarkNames()))
	flags.Float64(flagReMin, 0, "override the starting region's smallest real part")
	flags.Float64(flagReMax, 0, "override the starting region's largest real part")
	flags.Float64(flagImMin, 0, "override the starting region's smallest imaginary part")
	flags.Float64(flagImMax, 0, "override the starting region's largest imaginary part")
	flags.String(flagRecurrence, "mandelbrot", fmt.Sprintf("recurrence, one of %v", transforms.Names()))
	flags.String(flagC, "0", "complex constant of the recurrence, e.g. -0.8+0.156i")
	flags.String(flagPower, "2", "exponent of the power recurrences")
	flags.Int(flagFixed, 0, "use this iteration cap for every frame instead of 50 + i^3 * 16")
	flags.String(flagWeight, "identity", "section score weighting, identity or squared")
	flags.Int(flagWorkers, 0, "rows rendered in parallel; 0 means one per CPU")
	flags.String(flagOut, "renders", "output directory")
	flags.String(flagFormat, string(frames.PNG), "image format, png or bmp")
	flags.Bool(flagFinalOnly, false, "only write the last frame")
	flags.Bool(flagFlip, false, "put the largest imaginary part at the top of each image")
	flags.String(flagLogLevel, "info", "log level")
	flags.Bool(flagGops, false, "start a gops diagnostics agent")

	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      l,
		TimeFormat: "15:04:05",
	})), nil
}

func parseRecurrence(cmd *cobra.Command) (string, transforms.Recurrence, error) {
	flags := cmd.Flags()
	name, _ := flags.GetString(flagRecurrence)
	cStr, _ := flags.GetString(flagC)
	nStr, _ := flags.GetString(flagPower)

	c, err := strconv.ParseComplex(cStr, 128)
	if err != nil {
		return "", nil, fmt.Errorf("--%s: %w", flagC, err)
	}
	n, err := strconv.ParseComplex(nStr, 128)
	if err != nil {
		return "", nil, fmt.Errorf("--%s: %w", flagPower, err)
	}

	rec, err := transforms.Parse(name, transforms.Params{C: c, N: n})
	if err != nil {
		return "", nil, err
	}
	return name, rec, nil
}

func parseConfig(cmd *cobra.Command) (zoom.Config, error) {
	flags := cmd.Flags()
	cfg := zoom.DefaultConfig()

	cfg.Resolution.Width, _ = flags.GetInt(flagWidth)
	cfg.Resolution.Height, _ = flags.GetInt(flagHeight)
	cfg.Sections, _ = flags.GetInt(flagSections)
	cfg.TopSelect, _ = flags.GetInt(flagTop)
	cfg.SeqLen, _ = flags.GetInt(flagFrames)
	cfg.Workers, _ = flags.GetInt(flagWorkers)

	cfg.Seed, _ = flags.GetInt64(flagSeed)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	regionName, _ := flags.GetString(flagRegion)
	region, err := geometry.Landmark(regionName)
	if err != nil {
		return cfg, err
	}
	for flag, bound := range map[string]*float64{
		flagReMin: &region.ReMin,
		flagReMax: &region.ReMax,
		flagImMin: &region.ImMin,
		flagImMax: &region.ImMax,
	} {
		if flags.Changed(flag) {
			*bound, _ = flags.GetFloat64(flag)
		}
	}
	cfg.Initial = region

	if fixed, _ := flags.GetInt(flagFixed); fixed > 0 {
		cfg.Policy = zoom.Fixed{N: fixed}
	}

	weight, _ := flags.GetString(flagWeight)
	switch weight {
	case "identity":
		cfg.Weight = zoom.Identity
	case "squared":
		cfg.Weight = zoom.Squared
	default:
		return cfg, fmt.Errorf("--%s: unknown weight %q", flagWeight, weight)
	}

	return cfg, cfg.Validate()
}

func runCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	level, _ := flags.GetString(flagLogLevel)
	logger, err := newLogger(level)
	if err != nil {
		return err
	}

	cfg, err := parseConfig(cmd)
	if err != nil {
		return err
	}
	name, rec, err := parseRecurrence(cmd)
	if err != nil {
		return err
	}
	formatStr, _ := flags.GetString(flagFormat)
	format, err := frames.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	if useGops, _ := flags.GetBool(flagGops); useGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		defer agent.Close()
	}

	driver, err := zoom.NewDriver(cfg, logger)
	if err != nil {
		return err
	}

	out, _ := flags.GetString(flagOut)
	flip, _ := flags.GetBool(flagFlip)
	writer, err := frames.NewWriter(out, format, flip, frames.Manifest{
		Recurrence: name,
		Seed:       cfg.Seed,
		Width:      cfg.Resolution.Width,
		Height:     cfg.Resolution.Height,
		Sections:   cfg.Sections,
		TopSelect:  cfg.TopSelect,
	}, logger)
	if err != nil {
		return err
	}

	finalOnly, _ := flags.GetBool(flagFinalOnly)
	logger.Info("starting fly-through", "recurrence", name, "seed", cfg.Seed, "frames", cfg.SeqLen, "out", out)

	// Frame i is encoded while frame i+1 renders.
	eg, ctx := errgroup.WithContext(cmd.Context())
	pending := make(chan zoom.Frame, 1)

	eg.Go(func() error {
		defer close(pending)
		return driver.Run(ctx, rec, func(f zoom.Frame) error {
			if finalOnly && f.Index < cfg.SeqLen-1 {
				return nil
			}
			select {
			case pending <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	eg.Go(func() error {
		for f := range pending {
			if err := writer.WriteFrame(f); err != nil {
				return err
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	return writer.Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
