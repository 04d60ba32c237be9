package geometry

import (
	"fmt"
	"sort"
)

// Classic regions / landmarks in the Mandelbrot set.
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		ReMin: -0.8,
		ReMax: -0.7,
		ImMin: 0.05,
		ImMax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		ReMin: -1.85,
		ReMax: -1.75,
		ImMin: -0.10,
		ImMax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		ReMin: -0.7435,
		ReMax: -0.7420,
		ImMin: 0.1310,
		ImMax: 0.1325,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		ReMin: -0.7400,
		ReMax: -0.7350,
		ImMin: 0.1800,
		ImMax: 0.1850,
	}
)

var Landmarks = map[string]Region{
	"default":           DefaultRegion,
	"seahorse-valley":   SeahorseValley,
	"elephant-valley":   ElephantValley,
	"spiral-minibrot":   SpiralMinibrot,
	"valley-of-dragons": ValleyOfTheDragon,
}

// Landmark looks up a named region.
func Landmark(name string) (Region, error) {
	r, ok := Landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q, known: %v", name, LandmarkNames())
	}
	return r, nil
}

func LandmarkNames() []string {
	names := make([]string, 0, len(Landmarks))
	for name := range Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
