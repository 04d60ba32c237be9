package frames

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/zoom"
)

const ManifestName = "manifest.json"

// Manifest records how a directory of frames was produced.
type Manifest struct {
	Recurrence string   `json:"recurrence"`
	Seed       int64    `json:"seed"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Sections   int      `json:"sections"`
	TopSelect  int      `json:"top_select"`
	Frames     []Record `json:"frames"`
}

// Record describes one written frame.
type Record struct {
	Index         int             `json:"index"`
	File          string          `json:"file"`
	Region        geometry.Region `json:"region"`
	MaxIterations int             `json:"max_iterations"`
	Section       [2]int          `json:"section"`
	Score         float64         `json:"score"`
	Next          geometry.Region `json:"next"`
}

// Writer saves frames as numbered image files and, on Close, a manifest.
type Writer struct {
	dir      string
	format   Format
	flip     bool
	manifest Manifest
	logger   *slog.Logger
}

// NewWriter creates dir if needed. The Frames of m are replaced as frames are
// written.
func NewWriter(dir string, format Format, flip bool, m Manifest, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m.Frames = nil
	return &Writer{
		dir:      dir,
		format:   format,
		flip:     flip,
		manifest: m,
		logger:   logger,
	}, nil
}

func (w *Writer) WriteFrame(f zoom.Frame) error {
	name := fmt.Sprintf("frame-%04d%s", f.Index, w.format.Ext())
	path := filepath.Join(w.dir, name)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	err = Encode(out, Image(f.Grid, w.flip), w.format)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}

	score := 0.0
	for _, c := range f.Candidates {
		if c.Section == f.Chosen {
			score = c.Value
		}
	}

	w.manifest.Frames = append(w.manifest.Frames, Record{
		Index:         f.Index,
		File:          name,
		Region:        f.Region,
		MaxIterations: f.MaxIterations,
		Section:       [2]int{f.Chosen.X, f.Chosen.Y},
		Score:         score,
		Next:          f.Next,
	})

	w.logger.Debug("wrote frame", "frame", f.Index, "path", path)
	return nil
}

// Close writes the manifest.
func (w *Writer) Close() error {
	data, err := sonic.ConfigStd.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(w.dir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	w.logger.Info("wrote manifest", "path", path, "frames", len(w.manifest.Frames))
	return nil
}

func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read %q: %w", path, err)
	}

	var m Manifest
	if err := sonic.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return m, nil
}
