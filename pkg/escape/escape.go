// Package escape renders escape-time images of a complex recurrence.
//
// Every pixel (x, y) of the raster is mapped to a parameter c through
// geometry.Region.Point. The orbit starts at z = c and is advanced with the
// recurrence until |z|^2 exceeds Bailout or the iteration cap is reached.
// A pixel that escapes on iteration i (counting from 0) gets intensity
// floor(i*255/maxIterations); a pixel that never escapes gets 0.
//
// Intensity 0 therefore means either "escaped on the first step" or "never
// escaped". Grid.InSet tells the two apart without changing the intensities.
package escape

import (
	"errors"
	"fmt"

	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
)

// Bailout is the squared magnitude past which an orbit has escaped.
const Bailout = 4.0

var ErrInvalidIterations = errors.New("iteration cap must be positive")

// Iterate runs the orbit of c for at most maxIterations steps. It returns the
// 0-indexed step on which the orbit escaped, or maxIterations and false.
func Iterate(rec transforms.Recurrence, maxIterations int, c complex128) (int, bool) {
	z := c
	for i := 0; i < maxIterations; i++ {
		z = rec.Next(z, c)
		if real(z)*real(z)+imag(z)*imag(z) > Bailout {
			return i, true
		}
	}
	return maxIterations, false
}

// Intensity scales an escape step to [0, 254].
func Intensity(iteration, maxIterations int) uint8 {
	return uint8(iteration * 255 / maxIterations)
}

func validate(maxIterations int, region geometry.Region, res geometry.Resolution) error {
	if maxIterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, maxIterations)
	}
	if err := region.Validate(); err != nil {
		return err
	}
	return res.Validate()
}

// renderRow fills row y of g.
func renderRow(g *Grid, rec transforms.Recurrence, maxIterations int, region geometry.Region, y int) {
	res := g.Resolution()
	offset := y * g.Width
	for x := 0; x < g.Width; x++ {
		c := region.Point(x, y, res)

		i, escaped := Iterate(rec, maxIterations, c)
		if escaped {
			g.Pix[offset+x] = Intensity(i, maxIterations)
		} else {
			g.Pix[offset+x] = 0
			g.inSet[offset+x] = true
		}
	}
}

// Evaluate renders region at res on the calling goroutine.
func Evaluate(rec transforms.Recurrence, maxIterations int, region geometry.Region, res geometry.Resolution) (*Grid, error) {
	if err := validate(maxIterations, region, res); err != nil {
		return nil, err
	}

	g := NewGrid(res)
	for y := 0; y < res.Height; y++ {
		renderRow(g, rec, maxIterations, region, y)
	}
	return g, nil
}
