package transforms

// A Recurrence advances the orbit of a point: z is the current value and c the
// parameter of the pixel being evaluated.
type Recurrence interface {
	Next(z complex128, c complex128) complex128
}

// Func adapts an ordinary function to a Recurrence.
type Func func(z, c complex128) complex128

func (f Func) Next(z, c complex128) complex128 {
	return f(z, c)
}

var (
	_ Recurrence = Func(nil)
	_ Recurrence = Mandelbrot{}
	_ Recurrence = MandelbrotN{}
	_ Recurrence = Julia2{}
	_ Recurrence = JuliaN{}
	_ Recurrence = Linear{}
)
