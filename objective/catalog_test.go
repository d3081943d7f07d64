package objective

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-woodwind/geometry"
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

func sampleTuning() geometry.Tuning {
	return geometry.Tuning{
		Name:      "test",
		HoleCount: 2,
		Fingerings: []geometry.Fingering{
			{Open: []bool{true, true}, Note: &geometry.Note{Name: "d", Frequency: 587.3}},
			{Open: []bool{false, true}, Note: &geometry.Note{Name: "c", Frequency: 523.3}},
		},
	}
}

func sampleEnv() physics.Parameters {
	return physics.Parameters{Temperature: 20, Pressure: 101.325, Humidity: 50, CO2Fraction: 0.0004}
}

func TestHolePositionFunctionRoundTrips(t *testing.T) {
	inst := sampleWhistle()
	f := HolePositionFunction{}
	if d := f.Dimension(inst); d != 2 {
		t.Fatalf("expected dimension 2, got %d", d)
	}
	params := f.Encode(inst)
	if len(params) != 2 {
		t.Fatalf("expected 2 encoded params, got %d", len(params))
	}
	params[0] += 0.01
	out := f.Decode(inst, params)
	if out.Holes[0].Position != inst.SortedHoles()[0].Position+0.01 {
		t.Fatalf("decode did not apply shifted position")
	}
}

func TestHolePositionFunctionEvaluateIsFinite(t *testing.T) {
	inst := sampleWhistle()
	f := HolePositionFunction{}
	params := f.Encode(inst)
	score := f.Evaluate(inst, params, sampleTuning(), physics.Full{}, sampleEnv(), CentsDeviationEvaluator{})
	if math.IsInf(score, 1) {
		t.Fatalf("expected a finite score for an unperturbed instrument, got +Inf")
	}
}

func TestHolePositionFunctionEvaluateRejectsInvalidInstrument(t *testing.T) {
	inst := sampleWhistle()
	f := HolePositionFunction{}
	// Push both holes past the termination: invalid geometry.
	params := []float64{10, 10}
	score := f.Evaluate(inst, params, sampleTuning(), physics.Full{}, sampleEnv(), CentsDeviationEvaluator{})
	if !math.IsInf(score, 1) {
		t.Fatalf("expected +Inf for an invalid instrument, got %v", score)
	}
}

func TestBoreLengthFunctionRoundTrips(t *testing.T) {
	inst := sampleWhistle()
	f := NewBoreLengthFunction(0.2, 0.5)
	params := f.Encode(inst)
	if len(params) != 1 || params[0] != 0.3 {
		t.Fatalf("expected encoded length 0.3, got %v", params)
	}
	out := f.Decode(inst, []float64{0.35})
	if out.TerminationPosition() != 0.35 {
		t.Fatalf("expected termination moved to 0.35, got %v", out.TerminationPosition())
	}
}

func TestSingleTaperRatioFunctionRoundTrips(t *testing.T) {
	inst := sampleWhistle()
	f := NewSingleTaperRatioFunction(0.5, 2.0)
	params := f.Encode(inst)
	if math.Abs(params[0]-1.0) > 1e-9 {
		t.Fatalf("expected ratio 1.0 for a cylindrical bore, got %v", params[0])
	}
	out := f.Decode(inst, []float64{1.5})
	bore := out.SortedBore()
	want := 1.5 * bore[0].Diameter
	if math.Abs(bore[len(bore)-1].Diameter-want) > 1e-9 {
		t.Fatalf("expected far-end diameter %v, got %v", want, bore[len(bore)-1].Diameter)
	}
}

func TestCompositeHoleAndBoreDimensionAndEvaluate(t *testing.T) {
	inst := sampleWhistle()
	f := NewHoleAndBoreFunction(0.2, 0.5)
	composite, ok := f.(Composite)
	if !ok {
		t.Fatalf("expected a Composite")
	}
	if d := composite.Dimension(inst); d != 3 {
		t.Fatalf("expected dimension 3 (2 holes + 1 length), got %d", d)
	}
	params := composite.Encode(inst)
	if len(params) != 3 {
		t.Fatalf("expected 3 encoded params, got %d", len(params))
	}
	score := composite.Evaluate(inst, params, sampleTuning(), physics.Full{}, sampleEnv(), CentsDeviationEvaluator{})
	if math.IsInf(score, 1) {
		t.Fatalf("expected a finite score for an unperturbed instrument, got +Inf")
	}
}

func TestMouthpieceFippleFunctionHasThreeParameters(t *testing.T) {
	inst := sampleWhistle()
	f := NewMouthpieceFippleFunction()
	if d := f.(Composite).Dimension(inst); d != 3 {
		t.Fatalf("expected dimension 3, got %d", d)
	}
	params := f.Encode(inst)
	out := f.Decode(inst, params)
	if out.Mouthpiece.Fipple.WindowLength != inst.Mouthpiece.Fipple.WindowLength {
		t.Fatalf("round trip through encode/decode changed WindowLength")
	}
}
