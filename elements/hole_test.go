package elements

import (
	"testing"

	"github.com/cwbudde/algo-woodwind/geometry"
)

func sampleHole() geometry.Hole {
	return geometry.Hole{Name: "h1", Position: 0.1, Diameter: 0.008, Height: 0.004}
}

func TestShuntAdmittanceOpenExceedsClosed(t *testing.T) {
	props := sampleProps(t)
	hole := sampleHole()
	open := ShuntAdmittance(props, hole, 0.016, 440, HoleOpen, 1)
	closed := ShuntAdmittance(props, hole, 0.016, 440, HoleClosed, 1)
	plugged := ShuntAdmittance(props, hole, 0.016, 440, HolePlugged, 1)

	if plugged.Abs() != 0 {
		t.Fatalf("expected zero admittance for plugged hole, got %v", plugged)
	}
	if !(open.Abs() > closed.Abs()) {
		t.Fatalf("expected |Y_open| > |Y_closed|, got open=%v closed=%v", open.Abs(), closed.Abs())
	}
	if !(closed.Abs() > plugged.Abs()) {
		t.Fatalf("expected |Y_closed| > |Y_plugged|, got closed=%v plugged=%v", closed.Abs(), plugged.Abs())
	}
}

func TestShuntAdmittanceDecreasesWithSmallerDiameter(t *testing.T) {
	props := sampleProps(t)
	hole := sampleHole()
	full := ShuntAdmittance(props, hole, 0.016, 440, HoleOpen, 1)
	smaller := ShuntAdmittance(props, hole, 0.016, 440, HoleOpen, 0.5)

	if !(smaller.Abs() < full.Abs()) {
		t.Fatalf("expected smaller diameter to reduce |Y_open|, got full=%v smaller=%v", full.Abs(), smaller.Abs())
	}
}

func TestPluggedHoleMatrixIsIdentity(t *testing.T) {
	props := sampleProps(t)
	hole := sampleHole()
	m := HoleMatrix(props, hole, 0.016, 440, HolePlugged, 1)
	if m.UP.Abs() != 0 {
		t.Fatalf("expected zero shunt for plugged hole matrix, got %v", m.UP)
	}
}

func TestKeyedHoleHasNoFingerAdjustment(t *testing.T) {
	props := sampleProps(t)
	unkeyed := sampleHole()
	keyed := sampleHole()
	keyed.Key = &geometry.KeyParams{VentGap: 0.001}

	yUnkeyed := ShuntAdmittance(props, unkeyed, 0.016, 440, HoleClosed, 1)
	yKeyed := ShuntAdmittance(props, keyed, 0.016, 440, HoleClosed, 1)

	if yUnkeyed.Equal(yKeyed, 1e-15) {
		t.Fatalf("expected keyed and unkeyed closed admittances to differ")
	}
}
