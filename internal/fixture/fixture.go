// Package fixture provides the canonical D-whistle instrument and D-major
// tuning the cmd/wwtune and cmd/wwoptimize demo programs and their tests
// share, per SPEC_FULL.md 10's "shared fixture instrument" requirement.
package fixture

import (
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
)

// DWhistle returns a six-hole fipple (tin-whistle-style) instrument tuned
// approximately to D, with a cylindrical bore.
func DWhistle() geometry.Instrument {
	return geometry.Instrument{
		Name: "D Whistle",
		Unit: "si",
		Mouthpiece: geometry.Mouthpiece{
			Position: 0,
			Kind:     geometry.Fipple,
			Fipple: &geometry.FippleParams{
				WindowLength:  0.012,
				WindowWidth:   0.009,
				WindwayHeight: 0.0008,
				FippleFactor:  1.0,
			},
		},
		Bore: []geometry.BorePoint{
			{Position: 0, Diameter: 0.0197},
			{Position: 0.330, Diameter: 0.0197},
		},
		Holes: []geometry.Hole{
			{Name: "hole6", Position: 0.235, Diameter: 0.0082, Height: 0.0028},
			{Name: "hole5", Position: 0.205, Diameter: 0.0085, Height: 0.0028},
			{Name: "hole4", Position: 0.170, Diameter: 0.0088, Height: 0.0028},
			{Name: "hole3", Position: 0.130, Diameter: 0.0083, Height: 0.0028},
			{Name: "hole2", Position: 0.100, Diameter: 0.0080, Height: 0.0028},
			{Name: "hole1", Position: 0.075, Diameter: 0.0075, Height: 0.0028},
		},
		Termination: geometry.Termination{FlangeDiameter: 0},
	}
}

// DMajorTuning returns the D-major diatonic scale fingering from a closed
// D to an all-open C#, in the order a player would uncover holes from the
// bottom hole upward. Fingering.Open is indexed by position order, so the
// bottom hole (furthest from the mouthpiece) is the last entry.
func DMajorTuning() geometry.Tuning {
	const holeCount = 6
	closedAbove := func(openFromBottom int) []bool {
		open := make([]bool, holeCount)
		for i := holeCount - openFromBottom; i < holeCount; i++ {
			open[i] = true
		}
		return open
	}
	note := func(name string, freq float64) *geometry.Note {
		return &geometry.Note{Name: name, Frequency: freq}
	}
	return geometry.Tuning{
		Name:      "D major",
		HoleCount: holeCount,
		Fingerings: []geometry.Fingering{
			{Open: closedAbove(0), Note: note("D4", 293.66)},
			{Open: closedAbove(1), Note: note("E4", 329.63)},
			{Open: closedAbove(2), Note: note("F#4", 369.99)},
			{Open: closedAbove(3), Note: note("G4", 392.00)},
			{Open: closedAbove(4), Note: note("A4", 440.00)},
			{Open: closedAbove(5), Note: note("B4", 493.88)},
			{Open: closedAbove(6), Note: note("C#5", 554.37)},
		},
	}
}

// Environment returns the standard atmospheric conditions the fixture's
// predictions and objective evaluations are computed under: 20C, sea-level
// pressure, 50% relative humidity.
func Environment() physics.Parameters {
	return physics.Parameters{
		Temperature: 20,
		Pressure:    101.325,
		Humidity:    50,
		CO2Fraction: 0.0004,
	}
}
