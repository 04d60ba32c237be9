package transforms

import (
	"math/cmplx"
	"testing"
)

func TestRecurrences(t *testing.T) {
	tcs := []struct {
		name string
		rec  Recurrence
		z, c complex128
		want complex128
	}{
		{name: "mandelbrot", rec: Mandelbrot{}, z: complex(1, 1), c: complex(0.5, -0.5), want: complex(0.5, 1.5)},
		{name: "mandelbrot offset", rec: Mandelbrot{C: 1}, z: 0, c: complex(0, 1), want: complex(1, 1)},
		{name: "julia ignores c", rec: Julia2{C: complex(-0.8, 0.156)}, z: 0, c: complex(5, 5), want: complex(-0.8, 0.156)},
		{name: "linear", rec: Linear{Multiply: 2, Add: complex(0, 1)}, z: complex(1, 1), c: 7, want: complex(2, 3)},
		{name: "func", rec: Func(func(z, c complex128) complex128 { return z*z*z + c }), z: complex(0, 1), c: 1, want: complex(1, -1)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.rec.Next(tc.z, tc.c)
			if got != tc.want {
				t.Errorf("Next(%v, %v) = %v, want %v", tc.z, tc.c, got, tc.want)
			}
		})
	}
}

func TestPowerVariantsMatchSquare(t *testing.T) {
	z := complex(0.3, -0.4)
	c := complex(-0.1, 0.2)

	want := Mandelbrot{}.Next(z, c)
	got := MandelbrotN{N: 2}.Next(z, c)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("MandelbrotN{2} = %v, want %v", got, want)
	}

	want = Julia2{C: c}.Next(z, 0)
	got = JuliaN{N: 2, C: c}.Next(z, 0)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("JuliaN{2} = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	for _, name := range Names() {
		rec, err := Parse(name, Params{C: complex(0.1, 0.1), N: 2})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if rec == nil {
			t.Fatalf("%s: nil recurrence", name)
		}
	}

	rec, err := Parse("julia", Params{C: complex(0.7, 0.42)})
	if err != nil {
		t.Fatal(err)
	}
	if j, ok := rec.(Julia2); !ok || j.C != complex(0.7, 0.42) {
		t.Errorf("Parse(julia) = %#v", rec)
	}

	if _, err := Parse("burning-ship", Params{}); err == nil {
		t.Error("expected an error for an unknown recurrence")
	}
}
