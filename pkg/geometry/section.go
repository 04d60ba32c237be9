package geometry

import (
	"errors"
	"fmt"
	"image"
)

var ErrUneven = errors.New("sections do not tile the raster")

// A Section is one tile of an N x N partition of the raster.
type Section struct {
	X, Y int
}

// Index is the row-major position of s in an n x n tiling.
func (s Section) Index(n int) int {
	return s.Y*n + s.X
}

func (s Section) String() string {
	return fmt.Sprintf("(%d, %d)", s.X, s.Y)
}

// Tiling partitions a raster into N x N equal sections.
type Tiling struct {
	Resolution
	N int
}

func (t Tiling) Validate() error {
	if err := t.Resolution.Validate(); err != nil {
		return err
	}
	if t.N < 2 {
		return fmt.Errorf("%w: need at least 2 sections per axis, got %d", ErrUneven, t.N)
	}
	if t.Width%t.N != 0 || t.Height%t.N != 0 {
		return fmt.Errorf("%w: %dx%d is not divisible by %d", ErrUneven, t.Width, t.Height, t.N)
	}
	return nil
}

// Size is the width and height of a single section in pixels.
func (t Tiling) Size() (int, int) {
	return t.Width / t.N, t.Height / t.N
}

// Bounds is the pixel rectangle covered by s. Max is exclusive.
func (t Tiling) Bounds(s Section) image.Rectangle {
	w, h := t.Size()
	return image.Rect(s.X*w, s.Y*h, (s.X+1)*w, (s.Y+1)*h)
}

// Sections lists every section in row-major order.
func (t Tiling) Sections() []Section {
	result := make([]Section, 0, t.N*t.N)
	for y := 0; y < t.N; y++ {
		for x := 0; x < t.N; x++ {
			result = append(result, Section{X: x, Y: y})
		}
	}
	return result
}

// SubRegion is the part of r covered by s, computed with Region.Point so it
// lines up exactly with the pixels that were rendered.
func (t Tiling) SubRegion(r Region, s Section) Region {
	b := t.Bounds(s)
	lo := r.Point(b.Min.X, b.Min.Y, t.Resolution)
	hi := r.Point(b.Max.X, b.Max.Y, t.Resolution)

	return Region{
		ReMin: real(lo),
		ReMax: real(hi),
		ImMin: imag(lo),
		ImMax: imag(hi),
	}
}
