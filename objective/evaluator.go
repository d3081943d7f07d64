package objective

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/playingrange"
)

// ErrNoTargetNote is returned by evaluators that need a target frequency
// when a Fingering carries none.
var ErrNoTargetNote = errors.New("objective: fingering has no target note")

// DefaultSeedFrequency is a fallback seed (A4) for a playing-frequency
// search. The evaluators in this package do not use it: they seed at the
// fingering's target note and return ErrNoTargetNote when there is none.
const DefaultSeedFrequency = 440.0

// Evaluator turns one (Calculator, Fingering) pair into a scalar cost
// the optimizer drives toward zero, per spec.md 4.10's "Evaluator"
// concept. Three strategies are provided, trading root-finding cost
// against directness.
type Evaluator interface {
	// Score returns a signed cost for fingering under calc; the
	// optimizer minimizes the sum of squares across a tuning.
	Score(calc *instrument.Calculator, fingering geometry.Fingering) (float64, error)
}

// CentsDeviationEvaluator is the default evaluator: it finds the actual
// playing frequency (a root search) and scores the cents deviation from
// the fingering's target note. Most accurate, most expensive.
type CentsDeviationEvaluator struct{}

// Score implements Evaluator.
func (CentsDeviationEvaluator) Score(calc *instrument.Calculator, fingering geometry.Fingering) (float64, error) {
	if fingering.Note == nil || fingering.Note.Frequency <= 0 {
		return 0, ErrNoTargetNote
	}
	z := func(frequency float64) (complexmath.Complex, error) {
		return calc.CalcZ(frequency, fingering)
	}
	freq, err := playingrange.FindPlayingFrequency(z, fingering.Note.Frequency)
	if err != nil {
		return 0, err
	}
	return 1200 * math.Log2(freq/fingering.Note.Frequency), nil
}

// ReactanceEvaluator scores the reactance Im(Z) at the fingering's
// target frequency directly, with no root search: a well-tuned
// instrument has near-zero reactance exactly at the target. Cheaper
// than CentsDeviationEvaluator, less physically direct.
type ReactanceEvaluator struct{}

// Score implements Evaluator.
func (ReactanceEvaluator) Score(calc *instrument.Calculator, fingering geometry.Fingering) (float64, error) {
	if fingering.Note == nil || fingering.Note.Frequency <= 0 {
		return 0, ErrNoTargetNote
	}
	z, err := calc.CalcZ(fingering.Note.Frequency, fingering)
	if err != nil {
		return 0, err
	}
	return z.Im(), nil
}

// ReflectionCoefficientEvaluator scores 1 - |Γ|, where Γ is the normalized
// reflection coefficient at the fingering's target frequency: |Γ| near 1
// indicates a strong resonance (good intonation support) at that
// frequency, so the score then approaches 0.
type ReflectionCoefficientEvaluator struct{}

// Score implements Evaluator.
func (ReflectionCoefficientEvaluator) Score(calc *instrument.Calculator, fingering geometry.Fingering) (float64, error) {
	if fingering.Note == nil || fingering.Note.Frequency <= 0 {
		return 0, ErrNoTargetNote
	}
	gamma, err := calc.CalcReflectionCoefficient(fingering.Note.Frequency, fingering)
	if err != nil {
		return 0, err
	}
	return 1 - gamma.Abs(), nil
}
