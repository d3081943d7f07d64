package optimize

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-woodwind/internal/fixture"
	"github.com/cwbudde/algo-woodwind/objective"
	"github.com/cwbudde/algo-woodwind/physics"
)

// TestHolePositionObjectiveConvergesOnFixture is the "HolePositionObjectiveFunction
// convergence" end-to-end scenario: perturb the fixture D-whistle's tone
// holes away from their tuned positions and check that optimizing
// HolePositionFunction against the fixture's own D-major tuning recovers a
// lower-scoring layout than the perturbed start.
func TestHolePositionObjectiveConvergesOnFixture(t *testing.T) {
	base := fixture.DWhistle()
	tuning := fixture.DMajorTuning()
	env := fixture.Environment()

	fn := objective.HolePositionFunction{MinSpacing: 0.005}
	tuned := fn.Encode(base)

	perturbed := append([]float64(nil), tuned...)
	for i := range perturbed {
		perturbed[i] += 0.01
	}
	perturbedInst := fn.Decode(base, perturbed)

	evaluator := objective.CentsDeviationEvaluator{}
	objectiveFunc := func(x []float64) float64 {
		return fn.Evaluate(perturbedInst, x, tuning, physics.Full{}, env, evaluator)
	}

	mouthpiece := perturbedInst.Mouthpiece.Position
	termination := perturbedInst.TerminationPosition()
	margin := 0.005
	n := len(perturbedInst.Holes)
	bounds := Bounds{Lower: make([]float64, n), Upper: make([]float64, n)}
	for i := range bounds.Lower {
		bounds.Lower[i] = mouthpiece + margin
		bounds.Upper[i] = termination - margin
	}

	x0 := fn.Encode(perturbedInst)
	startValue := objectiveFunc(x0)

	result, err := Run(context.Background(), objectiveFunc, x0, Options{Bounds: bounds, Starts: 3, Seed: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(result.Value < startValue) {
		t.Fatalf("expected optimization to lower the objective: start=%v result=%v", startValue, result.Value)
	}
}
