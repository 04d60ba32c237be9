package zoom

import (
	"errors"
	"fmt"

	"github.com/willbeason/fractal-zoom/pkg/geometry"
)

var ErrInvalidConfig = errors.New("invalid zoom configuration")

// Config describes one fly-through. Nothing here is shared between runs.
type Config struct {
	Resolution geometry.Resolution

	// Sections is the number of sections per axis used to score a frame.
	Sections int

	// TopSelect is how many of the brightest sections the next frame is
	// drawn from.
	TopSelect int

	// SeqLen is the number of frames to render.
	SeqLen int

	Policy  IterationPolicy
	Initial geometry.Region
	Seed    int64

	// Weight defaults to Identity.
	Weight Weight

	// Workers bounds parallel row rendering. Zero means one per CPU.
	Workers int
}

// DefaultConfig is the classic fly-through: a 300x200 raster cut into
// 10x10 sections, picking among the 20 brightest.
func DefaultConfig() Config {
	return Config{
		Resolution: geometry.Resolution{Width: 300, Height: 200},
		Sections:   10,
		TopSelect:  20,
		SeqLen:     8,
		Policy:     DefaultPolicy,
		Initial:    geometry.DefaultRegion,
		Weight:     Identity,
	}
}

func (c Config) Tiling() geometry.Tiling {
	return geometry.Tiling{Resolution: c.Resolution, N: c.Sections}
}

func (c Config) Validate() error {
	if err := c.Tiling().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.TopSelect < 1 || c.TopSelect > c.Sections*c.Sections {
		return fmt.Errorf("%w: top select %d outside [1, %d]", ErrInvalidConfig, c.TopSelect, c.Sections*c.Sections)
	}
	if c.SeqLen < 1 {
		return fmt.Errorf("%w: sequence length %d", ErrInvalidConfig, c.SeqLen)
	}
	if c.Policy == nil {
		return fmt.Errorf("%w: no iteration policy", ErrInvalidConfig)
	}
	if err := c.Initial.Validate(); err != nil {
		return fmt.Errorf("%w: initial region: %w", ErrInvalidConfig, err)
	}
	return nil
}
