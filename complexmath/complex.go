// Package complexmath provides the complex-number arithmetic the transfer-
// matrix engine is built on: an immutable Complex value type for general
// use, and a mutable Scratch type whose *Into methods never allocate, for
// the per-frequency, per-fingering hot path described in spec.md 4.2.
package complexmath

import (
	"math"
	"math/cmplx"
)

// Complex is an immutable complex number backed by two float64s. It is a
// plain value type (like Go's native complex128, which it wraps) so
// copying it never allocates.
type Complex complex128

// Zero, One, and I are the common constants.
var (
	Zero = Complex(0)
	One  = Complex(1)
	I    = Complex(complex(0, 1))
)

// NaN is the dedicated not-a-number sentinel; IsNaN reports true for it
// and for any Complex with a NaN component, matching IEEE-754 propagation.
var NaN = Complex(complex(math.NaN(), math.NaN()))

// New builds a Complex from real and imaginary parts.
func New(re, im float64) Complex { return Complex(complex(re, im)) }

// FromPolar builds a Complex from magnitude and phase (radians).
func FromPolar(magnitude, phase float64) Complex {
	return Complex(cmplx.Rect(magnitude, phase))
}

// Re returns the real part.
func (c Complex) Re() float64 { return real(complex128(c)) }

// Im returns the imaginary part.
func (c Complex) Im() float64 { return imag(complex128(c)) }

// IsNaN reports whether either component is NaN.
func (c Complex) IsNaN() bool { return cmplx.IsNaN(complex128(c)) }

// Abs returns the magnitude |c|.
func (c Complex) Abs() float64 { return cmplx.Abs(complex128(c)) }

// Arg returns the phase angle of c in radians.
func (c Complex) Arg() float64 { return cmplx.Phase(complex128(c)) }

// Conj returns the complex conjugate.
func (c Complex) Conj() Complex { return Complex(cmplx.Conj(complex128(c))) }

// Neg returns -c.
func (c Complex) Neg() Complex { return Complex(-complex128(c)) }

// Add returns c + o.
func (c Complex) Add(o Complex) Complex { return Complex(complex128(c) + complex128(o)) }

// Sub returns c - o.
func (c Complex) Sub(o Complex) Complex { return Complex(complex128(c) - complex128(o)) }

// Multiply returns c * o.
func (c Complex) Multiply(o Complex) Complex { return Complex(complex128(c) * complex128(o)) }

// Scale returns c scaled by a real factor.
func (c Complex) Scale(factor float64) Complex {
	return Complex(complex128(c) * complex(factor, 0))
}

// Divide returns c / o.
func (c Complex) Divide(o Complex) Complex { return Complex(complex128(c) / complex128(o)) }

// Sqrt returns the principal square root of c.
func (c Complex) Sqrt() Complex { return Complex(cmplx.Sqrt(complex128(c))) }

// Exp returns e^c.
func (c Complex) Exp() Complex { return Complex(cmplx.Exp(complex128(c))) }

// Sinh returns sinh(c).
func (c Complex) Sinh() Complex { return Complex(cmplx.Sinh(complex128(c))) }

// Cosh returns cosh(c).
func (c Complex) Cosh() Complex { return Complex(cmplx.Cosh(complex128(c))) }

// Tanh returns tanh(c).
func (c Complex) Tanh() Complex { return Complex(cmplx.Tanh(complex128(c))) }

// Tan returns tan(c).
func (c Complex) Tan() Complex { return Complex(cmplx.Tan(complex128(c))) }

// Cot returns cot(c) = cos(c)/sin(c), i.e. 1/tan(c).
func (c Complex) Cot() Complex { return Complex(1 / cmplx.Tan(complex128(c))) }

// Equal reports whether c and o are within tol of each other (Euclidean
// distance between the two points in the complex plane).
func (c Complex) Equal(o Complex, tol float64) bool {
	return cmplx.Abs(complex128(c)-complex128(o)) <= tol
}

// Complex128 returns the underlying native complex128.
func (c Complex) Complex128() complex128 { return complex128(c) }

// Scratch is a mutable complex accumulator for allocation-free hot loops.
// Its *Into methods compute into the receiver from their arguments, using
// local temporaries so the receiver may alias an argument safely.
type Scratch struct {
	Re, Im float64
}

// Set overwrites the scratch value with (re, im).
func (s *Scratch) Set(re, im float64) {
	s.Re, s.Im = re, im
}

// SetComplex overwrites the scratch value from a Complex.
func (s *Scratch) SetComplex(c Complex) {
	s.Re, s.Im = c.Re(), c.Im()
}

// Complex returns the scratch value as an immutable Complex.
func (s *Scratch) Complex() Complex {
	return New(s.Re, s.Im)
}

// AddInto sets s = a + b.
func (s *Scratch) AddInto(a, b *Scratch) {
	re, im := a.Re+b.Re, a.Im+b.Im
	s.Re, s.Im = re, im
}

// SubInto sets s = a - b.
func (s *Scratch) SubInto(a, b *Scratch) {
	re, im := a.Re-b.Re, a.Im-b.Im
	s.Re, s.Im = re, im
}

// MultiplyInto sets s = a * b.
func (s *Scratch) MultiplyInto(a, b *Scratch) {
	re := a.Re*b.Re - a.Im*b.Im
	im := a.Re*b.Im + a.Im*b.Re
	s.Re, s.Im = re, im
}

// DivideInto sets s = a / b.
func (s *Scratch) DivideInto(a, b *Scratch) {
	denom := b.Re*b.Re + b.Im*b.Im
	re := (a.Re*b.Re + a.Im*b.Im) / denom
	im := (a.Im*b.Re - a.Re*b.Im) / denom
	s.Re, s.Im = re, im
}

// Abs returns the magnitude of the scratch value.
func (s *Scratch) Abs() float64 {
	return math.Hypot(s.Re, s.Im)
}
