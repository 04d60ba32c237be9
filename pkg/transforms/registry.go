package transforms

import (
	"fmt"
	"sort"
)

// Params are the knobs a named recurrence may read. Unused fields are ignored.
type Params struct {
	// C is the Julia constant, the Mandelbrot offset, or Linear's Add.
	C complex128
	// N is the exponent for the power variants, or Linear's Multiply.
	N complex128
}

var constructors = map[string]func(Params) Recurrence{
	"mandelbrot": func(p Params) Recurrence {
		return Mandelbrot{C: p.C}
	},
	"mandelbrot-n": func(p Params) Recurrence {
		return MandelbrotN{N: p.N}
	},
	"julia": func(p Params) Recurrence {
		return Julia2{C: p.C}
	},
	"julia-n": func(p Params) Recurrence {
		return JuliaN{N: p.N, C: p.C}
	},
	"linear": func(p Params) Recurrence {
		return Linear{Multiply: p.N, Add: p.C}
	},
}

// Parse builds the recurrence registered under name.
func Parse(name string, p Params) (Recurrence, error) {
	newFn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence %q, known: %v", name, Names())
	}
	return newFn(p), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
