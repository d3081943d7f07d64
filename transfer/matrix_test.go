package transfer

import (
	"testing"

	"github.com/cwbudde/algo-woodwind/complexmath"
)

func sampleMatrix(a, b, c, d float64) Matrix {
	return Matrix{
		PP: complexmath.New(a, 0.1*a),
		PU: complexmath.New(b, -0.2*b),
		UP: complexmath.New(c, 0.05*c),
		UU: complexmath.New(d, -0.1*d),
	}
}

func TestIdentityIsTwoSidedUnit(t *testing.T) {
	m := sampleMatrix(1.2, 0.4, -0.3, 0.9)
	id := Identity()
	if !m.Multiply(id).Equal(m, 1e-12) {
		t.Fatalf("m . I != m")
	}
	if !id.Multiply(m).Equal(m, 1e-12) {
		t.Fatalf("I . m != m")
	}
}

func TestMultiplyIsAssociative(t *testing.T) {
	a := sampleMatrix(1.1, 0.3, -0.2, 0.8)
	b := sampleMatrix(0.6, -0.5, 0.4, 1.3)
	c := sampleMatrix(-0.9, 0.2, 0.7, 1.0)

	left := a.Multiply(b).Multiply(c)
	right := a.Multiply(b.Multiply(c))
	if !left.Equal(right, 1e-10) {
		t.Fatalf("(A.B).C = %v, A.(B.C) = %v", left, right)
	}
}

func TestInverseRoundTrips(t *testing.T) {
	m := sampleMatrix(1.4, 0.2, -0.1, 0.95)
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Multiply(inv).Equal(Identity(), 1e-9) {
		t.Fatalf("m . inverse(m) != I")
	}
}

func TestScratchMultiplyIntoMatchesImmutable(t *testing.T) {
	a := sampleMatrix(1.1, 0.3, -0.2, 0.8)
	b := sampleMatrix(0.6, -0.5, 0.4, 1.3)
	want := a.Multiply(b)

	var sa, sb, dst Scratch
	sa.SetMatrix(a)
	sb.SetMatrix(b)
	dst.MultiplyInto(&sa, &sb)

	if !dst.Matrix().Equal(want, 1e-12) {
		t.Fatalf("scratch MultiplyInto = %v, want %v", dst.Matrix(), want)
	}
}

func TestScratchMultiplyIntoAliasesReceiver(t *testing.T) {
	a := sampleMatrix(1.1, 0.3, -0.2, 0.8)
	b := sampleMatrix(0.6, -0.5, 0.4, 1.3)
	want := a.Multiply(b)

	var sa, sb Scratch
	sa.SetMatrix(a)
	sb.SetMatrix(b)
	sa.MultiplyInto(&sa, &sb)

	if !sa.Matrix().Equal(want, 1e-12) {
		t.Fatalf("aliased MultiplyInto = %v, want %v", sa.Matrix(), want)
	}
}

func TestApplyAndImpedance(t *testing.T) {
	m := Identity()
	s := State{P: complexmath.New(2, 0), U: complexmath.New(1, 0)}
	out := m.Apply(s)
	if !out.Impedance().Equal(complexmath.New(2, 0), 1e-9) {
		t.Fatalf("expected Z=2, got %v", out.Impedance())
	}
}
