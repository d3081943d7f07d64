package complexmath

import (
	"math"
	"testing"
)

func TestAbs(t *testing.T) {
	c := New(3, 4)
	if got := c.Abs(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("expected |3+4i| == 5, got %f", got)
	}
}

func TestMultiply(t *testing.T) {
	got := New(1, 2).Multiply(New(3, 4))
	want := New(-5, 10)
	if !got.Equal(want, 1e-12) {
		t.Fatalf("(1+2i)*(3+4i) = %v, want %v", got, want)
	}
}

func TestConjugateMagnitudeSquared(t *testing.T) {
	c := New(2, -3)
	z := c.Multiply(c.Conj())
	if math.Abs(z.Im()) > 1e-12 {
		t.Fatalf("z*conj(z) should be real, got %v", z)
	}
	if math.Abs(z.Re()-c.Abs()*c.Abs()) > 1e-9 {
		t.Fatalf("z*conj(z) should equal |z|^2, got %v vs %v", z.Re(), c.Abs()*c.Abs())
	}
}

func TestDivideThenMultiplyRoundTrips(t *testing.T) {
	z := New(5, -2)
	w := New(1.5, 0.75)
	got := z.Divide(w).Multiply(w)
	if !got.Equal(z, 1e-9) {
		t.Fatalf("(z/w)*w = %v, want %v", got, z)
	}
}

func TestExpOfIPi(t *testing.T) {
	got := I.Scale(math.Pi).Exp()
	want := New(-1, 0)
	if !got.Equal(want, 1e-10) {
		t.Fatalf("exp(j*pi) = %v, want %v", got, want)
	}
}

func TestSqrtOfI(t *testing.T) {
	got := I.Sqrt()
	want := New(1/math.Sqrt2, 1/math.Sqrt2)
	if !got.Equal(want, 1e-10) {
		t.Fatalf("sqrt(i) = %v, want %v", got, want)
	}
}

func TestNaNPropagates(t *testing.T) {
	if !NaN.IsNaN() {
		t.Fatal("expected NaN sentinel to report IsNaN")
	}
	if !NaN.Add(One).IsNaN() {
		t.Fatal("expected NaN to propagate through arithmetic")
	}
}

func TestScratchMultiplyIntoMatchesComplex(t *testing.T) {
	a := &Scratch{Re: 2, Im: -1}
	b := &Scratch{Re: 3, Im: 4}
	var dst Scratch
	dst.MultiplyInto(a, b)

	want := New(2, -1).Multiply(New(3, 4))
	if math.Abs(dst.Re-want.Re()) > 1e-12 || math.Abs(dst.Im-want.Im()) > 1e-12 {
		t.Fatalf("MultiplyInto = %+v, want %v", dst, want)
	}
}

func TestScratchMultiplyIntoAliasingReceiver(t *testing.T) {
	a := &Scratch{Re: 2, Im: -1}
	b := &Scratch{Re: 3, Im: 4}
	want := New(2, -1).Multiply(New(3, 4))

	// a aliases the destination: must still compute the correct product.
	a.MultiplyInto(a, b)
	if math.Abs(a.Re-want.Re()) > 1e-12 || math.Abs(a.Im-want.Im()) > 1e-12 {
		t.Fatalf("aliased MultiplyInto = %+v, want %v", a, want)
	}
}

func TestScratchDivideIntoRoundTrips(t *testing.T) {
	z := &Scratch{Re: 5, Im: -2}
	w := &Scratch{Re: 1.5, Im: 0.75}
	var quotient, back Scratch
	quotient.DivideInto(z, w)
	back.MultiplyInto(&quotient, w)

	if math.Abs(back.Re-z.Re) > 1e-9 || math.Abs(back.Im-z.Im) > 1e-9 {
		t.Fatalf("(z/w)*w = %+v, want %+v", back, z)
	}
}
