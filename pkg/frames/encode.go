package frames

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/willbeason/fractal-zoom/pkg/escape"
)

type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, BMP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q, want png or bmp", s)
	}
}

func (f Format) Ext() string {
	return "." + string(f)
}

// Image is the grayscale picture of g. Row 0 of the grid is the lowest
// imaginary part; with flip set it is moved to the bottom so the picture reads
// like the complex plane.
func Image(g *escape.Grid, flip bool) *image.Gray {
	if !flip {
		return g.Gray()
	}

	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		src := g.Pix[y*g.Width : (y+1)*g.Width]
		dst := img.Pix[(g.Height-1-y)*img.Stride:]
		copy(dst[:g.Width], src)
	}
	return img
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}
