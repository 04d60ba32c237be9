// Package zoom drives an automatic fly-through of an escape-time fractal.
//
// Each frame is rendered, cut into Sections x Sections tiles and scored by
// mean intensity. One of the TopSelect brightest tiles is drawn at random and
// becomes the region of the next frame. The draw is the only random step, so
// a run is reproducible from its Config and Seed.
package zoom

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/willbeason/fractal-zoom/pkg/escape"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
)

// ErrStop may be returned by a visit function to end a run early without error.
var ErrStop = errors.New("stop zoom")

// A Frame is one rendered step of a run.
type Frame struct {
	Index         int
	Region        geometry.Region
	MaxIterations int
	Grid          *escape.Grid

	// Candidates are the ranked sections the next region was drawn from.
	Candidates []Score
	Chosen     geometry.Section
	Next       geometry.Region
}

type Driver struct {
	cfg       Config
	evaluator escape.Evaluator
	logger    *slog.Logger
}

// NewDriver validates cfg. A nil logger discards output.
func NewDriver(cfg Config, logger *slog.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Weight == nil {
		cfg.Weight = Identity
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Driver{
		cfg: cfg,
		evaluator: escape.Evaluator{
			Workers: cfg.Workers,
			Logger:  logger,
		},
		logger: logger,
	}, nil
}

func (d *Driver) Config() Config {
	return d.cfg
}

// NextRegion is the part of region covered by section s, computed with the
// same transform that mapped pixels to points.
func NextRegion(region geometry.Region, tiling geometry.Tiling, s geometry.Section) geometry.Region {
	return tiling.SubRegion(region, s)
}

// Run renders SeqLen frames and hands each to visit in order. A visit error
// ends the run; ErrStop ends it without error. Cancellation is checked before
// every frame and between rows.
func (d *Driver) Run(ctx context.Context, rec transforms.Recurrence, visit func(Frame) error) error {
	if rec == nil {
		return fmt.Errorf("%w: no recurrence", ErrInvalidConfig)
	}

	rng := rand.New(rand.NewSource(d.cfg.Seed))
	tiling := d.cfg.Tiling()
	region := d.cfg.Initial

	d.logger.Debug("starting zoom",
		"frames", d.cfg.SeqLen,
		"resolution", d.cfg.Resolution,
		"sections", d.cfg.Sections,
		"top_select", d.cfg.TopSelect,
		"seed", d.cfg.Seed)

	for i := 0; i < d.cfg.SeqLen; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		maxIterations := d.cfg.Policy.MaxIterations(i)

		grid, err := d.evaluator.Evaluate(ctx, rec, maxIterations, region, d.cfg.Resolution)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}

		scores := ScoreSections(grid, tiling, d.cfg.Weight)
		Rank(scores, tiling.N)
		candidates := scores[:d.cfg.TopSelect]
		chosen := Pick(rng, candidates, d.cfg.TopSelect)
		next := NextRegion(region, tiling, chosen)

		d.logger.Info("rendered frame",
			"frame", i,
			"max_iterations", maxIterations,
			"region", region.String(),
			"section", chosen.String(),
			"best_score", candidates[0].Value)

		frame := Frame{
			Index:         i,
			Region:        region,
			MaxIterations: maxIterations,
			Grid:          grid,
			Candidates:    candidates,
			Chosen:        chosen,
			Next:          next,
		}

		if err := visit(frame); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		region = next
	}

	return nil
}

// Sequence returns every frame of the run.
func (d *Driver) Sequence(ctx context.Context, rec transforms.Recurrence) ([]Frame, error) {
	frames := make([]Frame, 0, d.cfg.SeqLen)
	err := d.Run(ctx, rec, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// Final returns only the last frame of the run.
func (d *Driver) Final(ctx context.Context, rec transforms.Recurrence) (Frame, error) {
	var last Frame
	err := d.Run(ctx, rec, func(f Frame) error {
		last = f
		return nil
	})
	return last, err
}
