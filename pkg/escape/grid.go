package escape

import (
	"image"

	"github.com/willbeason/fractal-zoom/pkg/geometry"
)

// Grid holds one intensity per pixel, row-major.
type Grid struct {
	Width, Height int
	Pix           []uint8

	inSet []bool
}

func NewGrid(res geometry.Resolution) *Grid {
	return &Grid{
		Width:  res.Width,
		Height: res.Height,
		Pix:    make([]uint8, res.Pixels()),
		inSet:  make([]bool, res.Pixels()),
	}
}

func (g *Grid) Resolution() geometry.Resolution {
	return geometry.Resolution{Width: g.Width, Height: g.Height}
}

func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// InSet reports whether the orbit of pixel (x, y) stayed bounded for the
// whole iteration cap.
func (g *Grid) InSet(x, y int) bool {
	return g.inSet[y*g.Width+x]
}

// Gray is a grayscale view of g. It shares g's pixels.
func (g *Grid) Gray() *image.Gray {
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}
