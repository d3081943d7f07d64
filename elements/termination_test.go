package elements

import (
	"testing"

	"github.com/cwbudde/algo-woodwind/geometry"
)

func TestFlangedRadiationExceedsUnflanged(t *testing.T) {
	props := sampleProps(t)
	flanged := RadiationImpedance(props, 0.008, 440, true)
	unflanged := RadiationImpedance(props, 0.008, 440, false)

	if !(flanged.Abs() > unflanged.Abs()) {
		t.Fatalf("expected flanged |Z| > unflanged |Z|, got flanged=%v unflanged=%v", flanged.Abs(), unflanged.Abs())
	}
}

func TestTerminationStateClosedEndWhenFingeringClosesEnd(t *testing.T) {
	props := sampleProps(t)
	term := geometry.Termination{FlangeDiameter: 0}
	s := TerminationState(props, 0.016, term, 440, false)
	if s.U.Abs() != 0 {
		t.Fatalf("expected zero flow in closed-end state, got %v", s)
	}
}

func TestTerminationStateOpenEndUsesRadiationImpedance(t *testing.T) {
	props := sampleProps(t)
	term := geometry.Termination{FlangeDiameter: 0}
	s := TerminationState(props, 0.016, term, 440, true)
	if s.P.Abs() == 0 {
		t.Fatalf("expected nonzero radiation impedance pressure term, got %v", s)
	}
}
