// Package elements implements the per-geometry-element transfer matrices of
// spec.md 4.3-4.6: lossy cylindrical and conical bore segments, tone
// holes, mouthpieces, and terminations. Each function is pure: given
// physical parameters and element geometry at a frequency, it returns the
// transfer.Matrix (or, for terminations, the boundary transfer.State) for
// that element alone; InstrumentCalculator composes them.
package elements

import (
	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// MinimumSegmentLength is the length below which a bore segment is treated
// as acoustically negligible and returns the identity matrix.
const MinimumSegmentLength = 1e-9

// Cylinder returns the transfer matrix of a lossy cylindrical bore segment
// of the given radius and length, per spec.md 4.3:
// PP = UU = cosh(k*L); PU = Z0*sinh(k*L); UP = sinh(k*L)/Z0, where k is the
// complex wave number j*k+(1+j)*alpha already carrying the oscillatory and
// loss terms (physics.ComplexWaveNumber).
func Cylinder(props physics.Properties, radius, length, frequency float64) transfer.Matrix {
	if length < MinimumSegmentLength {
		return transfer.Identity()
	}
	kStar := props0ToComplex(physics.ComplexWaveNumber(props, frequency, radius))
	z0 := physics.CharacteristicImpedance(props, radius)
	return cylinderCore(kStar, z0, length)
}

// cylinderCore builds the lossy cylindrical-segment matrix from a complex
// wave number and characteristic impedance, shared by Cylinder and Cone
// (the latter uses it for the straight-line portion between its two
// correction lenses).
func cylinderCore(kStar complexmath.Complex, z0, length float64) transfer.Matrix {
	arg := kStar.Scale(length)
	cosh := arg.Cosh()
	sinh := arg.Sinh()
	return transfer.Matrix{
		PP: cosh,
		PU: sinh.Scale(z0),
		UP: sinh.Scale(1 / z0),
		UU: cosh,
	}
}

func props0ToComplex(c complex128) complexmath.Complex {
	return complexmath.New(real(c), imag(c))
}

// Lossless returns a copy of props with the boundary-layer loss constant
// zeroed, giving the lossless limit used by spec.md 8's determinant
// invariant.
func Lossless(props physics.Properties) physics.Properties {
	props.AlphaConstant = 0
	return props
}
