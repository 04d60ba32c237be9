package transforms

import "math/cmplx"

// Mandelbrot is z -> z^2 + c. C shifts the parameter and is zero for the
// canonical set.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128, c complex128) complex128 {
	return z*z + c + m.C
}

// MandelbrotN is the multibrot z -> z^N + c.
type MandelbrotN struct {
	N complex128
}

func (m MandelbrotN) Next(z complex128, c complex128) complex128 {
	return cmplx.Pow(z, m.N) + c
}
