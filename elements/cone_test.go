package elements

import "testing"

func TestConeReducesToCylinderWhenRadiiMatch(t *testing.T) {
	props := sampleProps(t)
	cone := Cone(props, 0.008, 0.008, 0.2, 440)
	cyl := Cylinder(props, 0.008, 0.2, 440)
	if !cone.Equal(cyl, 1e-9) {
		t.Fatalf("expected cone with equal radii to match cylinder: cone=%v cyl=%v", cone, cyl)
	}
}

func TestConeNearCylindricalFallsBackWithoutPanicking(t *testing.T) {
	props := sampleProps(t)
	// radii differ by far less than taperTolerance * radius: must not divide
	// by a near-zero apex distance.
	cone := Cone(props, 0.008, 0.008+1e-10, 0.2, 440)
	if cone.PP.IsNaN() || cone.PU.IsNaN() {
		t.Fatalf("expected finite matrix for near-cylindrical cone, got %v", cone)
	}
}

func TestConeVeryShortSegmentIsIdentity(t *testing.T) {
	props := sampleProps(t)
	cone := Cone(props, 0.006, 0.010, 0, 440)
	if cone.Determinant().Abs() != 1 {
		t.Fatalf("expected identity determinant 1, got %v", cone.Determinant().Abs())
	}
}
