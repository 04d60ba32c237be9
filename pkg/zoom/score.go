package zoom

import (
	"math/rand"
	"sort"

	"github.com/willbeason/fractal-zoom/pkg/escape"
	"github.com/willbeason/fractal-zoom/pkg/geometry"
)

// A Weight maps a pixel intensity to its contribution to a section's score.
type Weight func(intensity uint8) float64

func Identity(intensity uint8) float64 {
	return float64(intensity)
}

// Squared favors sections with a few very bright pixels over uniformly grey ones.
func Squared(intensity uint8) float64 {
	v := float64(intensity)
	return v * v
}

// Score is the mean weighted intensity of one section.
type Score struct {
	Section geometry.Section
	Value   float64
}

// ScoreSections computes the score of every section of g, in row-major order.
func ScoreSections(g *escape.Grid, tiling geometry.Tiling, weight Weight) []Score {
	if weight == nil {
		weight = Identity
	}

	w, h := tiling.Size()
	norm := float64(w * h)

	scores := make([]Score, 0, tiling.N*tiling.N)
	for _, s := range tiling.Sections() {
		b := tiling.Bounds(s)

		sum := 0.0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := g.Pix[y*g.Width : (y+1)*g.Width]
			for _, v := range row[b.Min.X:b.Max.X] {
				sum += weight(v)
			}
		}

		scores = append(scores, Score{Section: s, Value: sum / norm})
	}

	return scores
}

// Rank sorts scores from brightest to darkest. Equal scores keep row-major
// section order, so ranking is reproducible for a given grid.
func Rank(scores []Score, n int) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].Section.Index(n) < scores[j].Section.Index(n)
	})
}

// Pick draws one of the first top ranked sections uniformly. A single
// candidate is returned without consuming randomness.
func Pick(rng *rand.Rand, ranked []Score, top int) geometry.Section {
	top = min(top, len(ranked))
	if top <= 1 {
		return ranked[0].Section
	}
	return ranked[rng.Intn(top)].Section
}
