package escape

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
)

// Evaluator renders rows in parallel. Each worker owns whole rows of the
// grid, so writes never overlap and need no locking.
type Evaluator struct {
	// Workers bounds the number of rows rendered at once. Zero means
	// runtime.NumCPU().
	Workers int

	Logger *slog.Logger
}

func (e Evaluator) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.NumCPU()
}

func (e Evaluator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Evaluate renders region at res. The result is identical to the package
// level Evaluate for any number of workers. Cancelling ctx stops scheduling
// new rows and returns ctx's error.
func (e Evaluator) Evaluate(ctx context.Context, rec transforms.Recurrence, maxIterations int, region geometry.Region, res geometry.Resolution) (*Grid, error) {
	if err := validate(maxIterations, region, res); err != nil {
		return nil, err
	}

	start := time.Now()
	g := NewGrid(res)

	eg, rowCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers())

	for y := 0; y < res.Height; y++ {
		if rowCtx.Err() != nil {
			break
		}
		y := y
		eg.Go(func() error {
			if err := rowCtx.Err(); err != nil {
				return err
			}
			renderRow(g, rec, maxIterations, region, y)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that lands between rows leaves Wait with nothing to
	// report.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger().Debug("evaluated region",
		"region", region.String(),
		"resolution", res,
		"max_iterations", maxIterations,
		"workers", e.workers(),
		"elapsed", time.Since(start))

	return g, nil
}
