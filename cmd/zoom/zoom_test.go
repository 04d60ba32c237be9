package main

import (
	"path/filepath"
	"testing"

	"github.com/willbeason/fractal-zoom/pkg/frames"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
	"github.com/willbeason/fractal-zoom/pkg/transforms"
	"github.com/willbeason/fractal-zoom/pkg/zoom"
)

func TestParseConfig(t *testing.T) {
	cmd := mainCmd()
	err := cmd.ParseFlags([]string{
		"--width", "120", "--height", "80",
		"--sections", "4", "--top", "3", "--frames", "2",
		"--seed", "9", "--region", "seahorse-valley", "--re-max", "-0.65",
		"--fixed-iterations", "300", "--weight", "squared",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := parseConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Resolution != (geometry.Resolution{Width: 120, Height: 80}) {
		t.Errorf("resolution = %v", cfg.Resolution)
	}
	if cfg.Sections != 4 || cfg.TopSelect != 3 || cfg.SeqLen != 2 || cfg.Seed != 9 {
		t.Errorf("cfg = %+v", cfg)
	}
	want := geometry.SeahorseValley
	want.ReMax = -0.65
	if cfg.Initial != want {
		t.Errorf("initial region = %v, want %v", cfg.Initial, want)
	}
	if p, ok := cfg.Policy.(zoom.Fixed); !ok || p.N != 300 {
		t.Errorf("policy = %#v", cfg.Policy)
	}
	if cfg.Weight(10) != 100 {
		t.Errorf("weight is not squared")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--top", "0"},
		{"--width", "301"},
		{"--region", "atlantis"},
		{"--weight", "cubed"},
		{"--frames", "0"},
	} {
		cmd := mainCmd()
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		if _, err := parseConfig(cmd); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestParseRecurrence(t *testing.T) {
	cmd := mainCmd()
	if err := cmd.ParseFlags([]string{"--recurrence", "julia", "--c", "-0.8+0.156i"}); err != nil {
		t.Fatal(err)
	}

	name, rec, err := parseRecurrence(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if name != "julia" {
		t.Errorf("name = %q", name)
	}
	if j, ok := rec.(transforms.Julia2); !ok || j.C != complex(-0.8, 0.156) {
		t.Errorf("recurrence = %#v", rec)
	}

	cmd = mainCmd()
	if err := cmd.ParseFlags([]string{"--c", "not-a-number"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := parseRecurrence(cmd); err == nil {
		t.Error("expected an error for a malformed constant")
	}
}

func TestRunCmd_FinalOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "renders")

	cmd := mainCmd()
	cmd.SetArgs([]string{
		"--width", "30", "--height", "20", "--frames", "3", "--top", "2",
		"--seed", "3", "--final-only", "--format", "bmp", "--out", dir,
		"--log-level", "error",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	m, err := frames.ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Frames) != 1 || m.Frames[0].Index != 2 {
		t.Fatalf("manifest frames = %+v, want only frame 2", m.Frames)
	}
	if m.Frames[0].File != "frame-0002.bmp" {
		t.Errorf("file = %q", m.Frames[0].File)
	}
}
