package geometry

import (
	"errors"
	"testing"
)

func sampleWhistle() Instrument {
	return Instrument{
		Name: "test-whistle",
		Unit: "si",
		Mouthpiece: Mouthpiece{
			Position: 0,
			Kind:     Fipple,
			Fipple: &FippleParams{
				WindowLength:  0.010,
				WindowWidth:   0.008,
				WindwayHeight: 0.003,
				FippleFactor:  1.0,
			},
		},
		Bore: []BorePoint{
			{Position: 0, Diameter: 0.016},
			{Position: 0.3, Diameter: 0.016},
		},
		Holes: []Hole{
			{Name: "hole1", Position: 0.1, Diameter: 0.008},
			{Name: "hole2", Position: 0.15, Diameter: 0.008},
		},
		Termination: Termination{FlangeDiameter: 0},
	}
}

func TestValidInstrumentPasses(t *testing.T) {
	if err := sampleWhistle().Validate(); err != nil {
		t.Fatalf("expected valid instrument, got error: %v", err)
	}
}

func TestTooFewBorePointsRejected(t *testing.T) {
	inst := sampleWhistle()
	inst.Bore = []BorePoint{{Position: 0, Diameter: 0.016}}
	err := inst.Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNonPositiveDiameterRejected(t *testing.T) {
	inst := sampleWhistle()
	inst.Bore[1].Diameter = 0
	err := inst.Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHoleOutsideBoreRejected(t *testing.T) {
	inst := sampleWhistle()
	inst.Holes[0].Position = 0.5 // beyond termination at 0.3
	err := inst.Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMouthpieceRequiresExactlyOneVariant(t *testing.T) {
	m := Mouthpiece{Kind: Fipple, Fipple: &FippleParams{}, Embouchure: &EmbouchureParams{}}
	if err := m.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for two variants, got %v", err)
	}
}

func TestBoreDiameterAtInterpolates(t *testing.T) {
	bore := []BorePoint{{Position: 0, Diameter: 10}, {Position: 10, Diameter: 20}}
	if got := BoreDiameterAt(bore, 5); got != 15 {
		t.Fatalf("expected interpolated diameter 15, got %f", got)
	}
	if got := BoreDiameterAt(bore, -5); got != 10 {
		t.Fatalf("expected clamp to first point, got %f", got)
	}
	if got := BoreDiameterAt(bore, 50); got != 20 {
		t.Fatalf("expected clamp to last point, got %f", got)
	}
}

func TestFingeringValidation(t *testing.T) {
	f := Fingering{Open: []bool{true, false}}
	if err := f.Validate(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Validate(3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for mismatched length, got %v", err)
	}
}

func TestFingeringOpenEndDefaultsTrue(t *testing.T) {
	f := Fingering{Open: []bool{false, false}}
	if !f.IsOpenEnd() {
		t.Fatal("expected default openEnd=true")
	}
	closed := false
	f.OpenEnd = &closed
	if f.IsOpenEnd() {
		t.Fatal("expected explicit openEnd=false to be honored")
	}
}

func TestTerminationFlangedSelector(t *testing.T) {
	term := Termination{FlangeDiameter: 0.05}
	if !term.IsFlanged(0.016) {
		t.Fatal("expected flange > bore diameter to be flanged")
	}
	unflanged := Termination{FlangeDiameter: 0}
	if unflanged.IsFlanged(0.016) {
		t.Fatal("expected zero flange diameter to be unflanged")
	}
}

func TestLowestOpenHoleIndex(t *testing.T) {
	if got := LowestOpenHoleIndex([]bool{true, false, true}); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if got := LowestOpenHoleIndex([]bool{false, false}); got != -1 {
		t.Fatalf("expected -1 for all closed, got %d", got)
	}
}
