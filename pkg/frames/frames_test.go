package frames

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/willbeason/fractal-zoom/pkg/escape"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
	"github.com/willbeason/fractal-zoom/pkg/zoom"
)

func testGrid() *escape.Grid {
	g := escape.NewGrid(geometry.Resolution{Width: 4, Height: 3})
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 20)
	}
	return g
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, "PNG": PNG, "bmp": BMP} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("gif"); err == nil {
		t.Error("expected an error for gif")
	}
}

func TestImage_Flip(t *testing.T) {
	g := testGrid()

	plain := Image(g, false)
	flipped := Image(g, true)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if got := plain.GrayAt(x, y).Y; got != g.At(x, y) {
				t.Fatalf("plain (%d, %d) = %d, want %d", x, y, got, g.At(x, y))
			}
			if got := flipped.GrayAt(x, g.Height-1-y).Y; got != g.At(x, y) {
				t.Fatalf("flipped (%d, %d) = %d, want %d", x, g.Height-1-y, got, g.At(x, y))
			}
		}
	}
}

func TestEncode(t *testing.T) {
	g := testGrid()

	tcs := []struct {
		format Format
		decode func(*bytes.Buffer) (image.Image, error)
	}{
		{format: PNG, decode: func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) }},
		{format: BMP, decode: func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) }},
	}

	for _, tc := range tcs {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, g.Gray(), tc.format); err != nil {
				t.Fatal(err)
			}

			img, err := tc.decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds() != image.Rect(0, 0, g.Width, g.Height) {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			for y := 0; y < g.Height; y++ {
				for x := 0; x < g.Width; x++ {
					got := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
					if got != g.At(x, y) {
						t.Fatalf("(%d, %d) = %d, want %d", x, y, got, g.At(x, y))
					}
				}
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, g.Gray(), Format("tiff")); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	cfg := zoom.DefaultConfig()
	cfg.Resolution = geometry.Resolution{Width: 30, Height: 20}
	cfg.SeqLen = 2
	cfg.TopSelect = 3
	cfg.Seed = 5

	d, err := zoom.NewDriver(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(dir, BMP, false, Manifest{
		Recurrence: "mandelbrot",
		Seed:       cfg.Seed,
		Width:      cfg.Resolution.Width,
		Height:     cfg.Resolution.Height,
		Sections:   cfg.Sections,
		TopSelect:  cfg.TopSelect,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var frames []zoom.Frame
	err = d.Run(context.Background(), transforms.Mandelbrot{}, func(f zoom.Frame) error {
		frames = append(frames, f)
		return w.WriteFrame(f)
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Recurrence != "mandelbrot" || m.Seed != 5 || m.Sections != 10 {
		t.Errorf("manifest header = %+v", m)
	}
	if len(m.Frames) != len(frames) {
		t.Fatalf("manifest has %d frames, want %d", len(m.Frames), len(frames))
	}

	for i, rec := range m.Frames {
		f := frames[i]
		if rec.Index != f.Index || rec.MaxIterations != f.MaxIterations {
			t.Errorf("record %d = %+v", i, rec)
		}
		if rec.Section != [2]int{f.Chosen.X, f.Chosen.Y} {
			t.Errorf("record %d section = %v, want %v", i, rec.Section, f.Chosen)
		}
		if !closeRegion(rec.Region, f.Region) || !closeRegion(rec.Next, f.Next) {
			t.Errorf("record %d regions = %v -> %v, want %v -> %v", i, rec.Region, rec.Next, f.Region, f.Next)
		}
		if _, err := os.Stat(filepath.Join(dir, rec.File)); err != nil {
			t.Errorf("record %d: %v", i, err)
		}
	}

	if m.Frames[0].File != "frame-0000.bmp" {
		t.Errorf("first file = %q", m.Frames[0].File)
	}
}

func closeRegion(a, b geometry.Region) bool {
	eps := 1e-12
	return math.Abs(a.ReMin-b.ReMin) < eps && math.Abs(a.ReMax-b.ReMax) < eps &&
		math.Abs(a.ImMin-b.ImMin) < eps && math.Abs(a.ImMax-b.ImMax) < eps
}
