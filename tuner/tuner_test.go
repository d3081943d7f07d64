package tuner

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/physics"
)

func sampleWhistle() geometry.Instrument {
	return geometry.Instrument{
		Name: "test-whistle",
		Mouthpiece: geometry.Mouthpiece{
			Position: 0,
			Kind:     geometry.Fipple,
			Fipple: &geometry.FippleParams{
				WindowLength:  0.010,
				WindowWidth:   0.008,
				WindwayHeight: 0.003,
				FippleFactor:  1.0,
			},
		},
		Bore: []geometry.BorePoint{
			{Position: 0, Diameter: 0.0196},
			{Position: 0.3, Diameter: 0.0196},
		},
		Holes: []geometry.Hole{
			{Name: "h1", Position: 0.22, Diameter: 0.008, Height: 0.003},
			{Name: "h2", Position: 0.18, Diameter: 0.008, Height: 0.003},
		},
		Termination: geometry.Termination{FlangeDiameter: 0},
	}
}

func sampleCalculator(t *testing.T) *instrument.Calculator {
	t.Helper()
	env := physics.Parameters{Temperature: 20, Pressure: 101.325, Humidity: 50, CO2Fraction: 0.0004}
	calc, err := instrument.NewCalculator(sampleWhistle(), physics.Full{}, env)
	if err != nil {
		t.Fatalf("unexpected error building calculator: %v", err)
	}
	return calc
}

func TestPredictTuningFillsOneResultPerFingering(t *testing.T) {
	calc := sampleCalculator(t)
	tuning := geometry.Tuning{
		Name:      "test",
		HoleCount: 2,
		Fingerings: []geometry.Fingering{
			{Open: []bool{true, true}},
			{Open: []bool{false, true}},
		},
	}
	results := PredictTuning(calc, tuning, DefaultSeedFrequency)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestCentsFromRatioMatchesOctave(t *testing.T) {
	cents := CentsFromRatio(880, 440)
	if math.Abs(cents-1200) > 1e-9 {
		t.Fatalf("expected 1200 cents for an octave, got %v", cents)
	}
}

func TestComputeStatisticsExcludesUntargetedAndFailed(t *testing.T) {
	predictions := []PredictedNote{
		{Fingering: geometry.Fingering{Note: &geometry.Note{Frequency: 440}}, CentsDeviation: 5},
		{Fingering: geometry.Fingering{Note: &geometry.Note{Frequency: 440}}, CentsDeviation: -5},
		{Fingering: geometry.Fingering{}}, // no target note
		{Err: errPlaceholder{}},
	}
	stats := ComputeStatistics(predictions)
	if stats.Count != 2 {
		t.Fatalf("expected 2 counted predictions, got %d", stats.Count)
	}
	if stats.Failed != 1 {
		t.Fatalf("expected 1 failed prediction, got %d", stats.Failed)
	}
	if math.Abs(stats.MeanCents) > 1e-9 {
		t.Fatalf("expected zero mean for symmetric deviations, got %v", stats.MeanCents)
	}
	if stats.MaxAbsCents != 5 {
		t.Fatalf("expected max abs deviation 5, got %v", stats.MaxAbsCents)
	}
}

type errPlaceholder struct{}

func (errPlaceholder) Error() string { return "placeholder" }
