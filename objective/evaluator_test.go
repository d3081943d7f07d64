package objective

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/physics"
)

func sampleCalculator(t *testing.T) *instrument.Calculator {
	t.Helper()
	calc, err := instrument.NewCalculator(sampleWhistle(), physics.Full{}, sampleEnv())
	if err != nil {
		t.Fatalf("unexpected error building calculator: %v", err)
	}
	return calc
}

func TestCentsDeviationEvaluatorRequiresTargetNote(t *testing.T) {
	calc := sampleCalculator(t)
	_, err := CentsDeviationEvaluator{}.Score(calc, geometry.Fingering{Open: []bool{true, true}})
	if !errors.Is(err, ErrNoTargetNote) {
		t.Fatalf("expected ErrNoTargetNote, got %v", err)
	}
}

func TestReactanceEvaluatorIsFinite(t *testing.T) {
	calc := sampleCalculator(t)
	fingering := geometry.Fingering{Open: []bool{true, true}, Note: &geometry.Note{Frequency: 587.3}}
	val, err := ReactanceEvaluator{}.Score(calc, fingering)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		t.Fatalf("expected a finite reactance, got %v", val)
	}
}

func TestReflectionCoefficientEvaluatorBounded(t *testing.T) {
	calc := sampleCalculator(t)
	fingering := geometry.Fingering{Open: []bool{true, true}, Note: &geometry.Note{Frequency: 587.3}}
	val, err := ReflectionCoefficientEvaluator{}.Score(calc, fingering)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val < -1 || val > 1 {
		t.Fatalf("expected 1-|gamma| within [-1,1], got %v", val)
	}
}
