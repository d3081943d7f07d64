// Package tuner predicts the playing frequency of every fingering in a
// Tuning and reports how far each predicted frequency deviates from its
// target note, in cents, per spec.md 6.
package tuner

import (
	"math"

	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/playingrange"
	"gonum.org/v1/gonum/stat"
)

// DefaultSeedFrequency is the starting frequency used to search for a
// playing frequency when a Fingering carries no target Note.
const DefaultSeedFrequency = 440.0

// PredictedNote is one fingering's predicted playing frequency and, if a
// target Note was given, its deviation from that target in cents.
type PredictedNote struct {
	Fingering      geometry.Fingering
	Frequency      float64 // NaN if Err is non-nil
	CentsDeviation float64 // 0 if Fingering.Note is nil
	Err            error
}

// CentsFromRatio converts a frequency ratio to cents: 1200*log2(ratio).
func CentsFromRatio(predicted, target float64) float64 {
	return 1200 * math.Log2(predicted/target)
}

// PredictTuning predicts the playing frequency of every fingering in
// tuning against calc. A Fingering with a target Note seeds the search
// at that note's frequency; otherwise it seeds at defaultSeed.
func PredictTuning(calc *instrument.Calculator, tuning geometry.Tuning, defaultSeed float64) []PredictedNote {
	if defaultSeed <= 0 {
		defaultSeed = DefaultSeedFrequency
	}
	results := make([]PredictedNote, len(tuning.Fingerings))
	for i, f := range tuning.Fingerings {
		results[i] = predictOne(calc, f, defaultSeed)
	}
	return results
}

func predictOne(calc *instrument.Calculator, fingering geometry.Fingering, defaultSeed float64) PredictedNote {
	seed := defaultSeed
	if fingering.Note != nil && fingering.Note.Frequency > 0 {
		seed = fingering.Note.Frequency
	}

	z := func(frequency float64) (complexmath.Complex, error) {
		return calc.CalcZ(frequency, fingering)
	}
	freq, err := playingrange.FindPlayingFrequency(z, seed)
	if err != nil {
		return PredictedNote{Fingering: fingering, Frequency: math.NaN(), Err: err}
	}

	result := PredictedNote{Fingering: fingering, Frequency: freq}
	if fingering.Note != nil && fingering.Note.Frequency > 0 {
		result.CentsDeviation = CentsFromRatio(freq, fingering.Note.Frequency)
	}
	return result
}

// Statistics summarizes the cent deviations of a tuning prediction,
// excluding any fingering that failed to find a playing frequency.
type Statistics struct {
	Count       int // number of fingerings with a successful, targeted prediction
	Failed      int // number of fingerings with no playing frequency found
	MeanCents   float64
	StdDevCents float64
	RMSCents    float64
	MaxAbsCents float64
}

// ComputeStatistics aggregates the cent deviations of predictions that
// both succeeded and carried a target note, using gonum/stat for the
// mean and standard deviation.
func ComputeStatistics(predictions []PredictedNote) Statistics {
	var deviations []float64
	failed := 0
	for _, p := range predictions {
		if p.Err != nil {
			failed++
			continue
		}
		if p.Fingering.Note == nil {
			continue
		}
		deviations = append(deviations, p.CentsDeviation)
	}
	if len(deviations) == 0 {
		return Statistics{Failed: failed}
	}

	mean := stat.Mean(deviations, nil)
	stdDev := stat.StdDev(deviations, nil)

	sumSquares := 0.0
	maxAbs := 0.0
	for _, d := range deviations {
		sumSquares += d * d
		if a := math.Abs(d); a > maxAbs {
			maxAbs = a
		}
	}
	rms := math.Sqrt(sumSquares / float64(len(deviations)))

	return Statistics{
		Count:       len(deviations),
		Failed:      failed,
		MeanCents:   mean,
		StdDevCents: stdDev,
		RMSCents:    rms,
		MaxAbsCents: maxAbs,
	}
}
