package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDegenerateRegion  = errors.New("degenerate region")
	ErrInvalidResolution = errors.New("invalid resolution")
)

// Region is an axis-aligned rectangle of the complex plane.
type Region struct {
	ReMin float64 `json:"re_min"`
	ReMax float64 `json:"re_max"`
	ImMin float64 `json:"im_min"`
	ImMax float64 `json:"im_max"`
}

// DefaultRegion is the classic view of the whole Mandelbrot set.
var DefaultRegion = Region{
	ReMin: -2.0,
	ReMax: 1.0,
	ImMin: -1.0,
	ImMax: 1.0,
}

func (r Region) Validate() error {
	for _, v := range []float64{r.ReMin, r.ReMax, r.ImMin, r.ImMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrDegenerateRegion, r)
		}
	}
	if r.ReMin >= r.ReMax {
		return fmt.Errorf("%w: real span [%g, %g]", ErrDegenerateRegion, r.ReMin, r.ReMax)
	}
	if r.ImMin >= r.ImMax {
		return fmt.Errorf("%w: imaginary span [%g, %g]", ErrDegenerateRegion, r.ImMin, r.ImMax)
	}
	return nil
}

func (r Region) ReSpan() float64 {
	return r.ReMax - r.ReMin
}

func (r Region) ImSpan() float64 {
	return r.ImMax - r.ImMin
}

// Point is the complex number pixel (x, y) represents when r is rendered at res.
//
// Pixel row 0 is ImMin. The operation order is fixed: the zoom step converts
// section bounds back into a Region through this same function, so both
// directions agree bit for bit.
func (r Region) Point(x, y int, res Resolution) complex128 {
	re := float64(x)*(r.ReMax-r.ReMin)/float64(res.Width) + r.ReMin
	im := float64(y)*(r.ImMax-r.ImMin)/float64(res.Height) + r.ImMin

	return complex(re, im)
}

// Pixel is the inverse of Point. It returns fractional pixel coordinates.
func (r Region) Pixel(z complex128, res Resolution) (float64, float64) {
	x := (real(z) - r.ReMin) * float64(res.Width) / (r.ReMax - r.ReMin)
	y := (imag(z) - r.ImMin) * float64(res.Height) / (r.ImMax - r.ImMin)

	return x, y
}

// Contains reports whether o lies inside r, edges included.
func (r Region) Contains(o Region) bool {
	return o.ReMin >= r.ReMin && o.ReMax <= r.ReMax &&
		o.ImMin >= r.ImMin && o.ImMax <= r.ImMax
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", r.ReMin, r.ReMax, r.ImMin, r.ImMax)
}

// Resolution is the raster size, fixed for a whole run.
type Resolution struct {
	Width, Height int
}

func (res Resolution) Validate() error {
	if res.Width <= 0 || res.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, res.Width, res.Height)
	}
	return nil
}

func (res Resolution) Pixels() int {
	return res.Width * res.Height
}
