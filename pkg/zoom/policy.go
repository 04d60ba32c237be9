package zoom

// An IterationPolicy picks the iteration cap for each frame.
type IterationPolicy interface {
	MaxIterations(frame int) int
}

// CubicGrowth raises the cap as Base + frame^3 * Scale. Deeper frames need
// more iterations to resolve the boundary; the formula is empirical.
type CubicGrowth struct {
	Base  int
	Scale int
}

// DefaultPolicy is 50 + i^3 * 16.
var DefaultPolicy = CubicGrowth{Base: 50, Scale: 16}

func (p CubicGrowth) MaxIterations(frame int) int {
	return p.Base + frame*frame*frame*p.Scale
}

// Fixed uses the same cap for every frame.
type Fixed struct {
	N int
}

func (p Fixed) MaxIterations(int) int {
	return p.N
}

var (
	_ IterationPolicy = CubicGrowth{}
	_ IterationPolicy = Fixed{}
)
