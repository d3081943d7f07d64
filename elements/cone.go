package elements

import (
	"math"

	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// taperTolerance bounds the radius difference (relative to the larger
// radius) below which a conical segment is treated as cylindrical, per
// spec.md 4.3's note that near-cylindrical tapers must fall back to the
// cylinder matrix to avoid dividing by the (near-infinite) apex distance.
const taperTolerance = 1e-6

// Cone returns the transfer matrix of a lossy conical bore segment
// connecting radius rLeft to radius rRight over length, per spec.md 4.3:
// a cylindrical-propagation core bracketed by two thin lenses that apply
// the spherical-wavefront curvature correction at each end.
func Cone(props physics.Properties, rLeft, rRight, length, frequency float64) transfer.Matrix {
	if length < MinimumSegmentLength {
		return transfer.Identity()
	}
	if math.Abs(rRight-rLeft) < taperTolerance*math.Max(rLeft, rRight) {
		return Cylinder(props, 0.5*(rLeft+rRight), length, frequency)
	}

	x1 := math.Abs(rLeft * length / (rRight - rLeft))
	x2 := x1 + length

	rMid := 0.5 * (rLeft + rRight)
	kStar := props0ToComplex(physics.ComplexWaveNumber(props, frequency, rMid))
	z0 := physics.CharacteristicImpedance(props, rMid)
	core := cylinderCore(kStar, z0, length)

	k := physics.WaveNumber(frequency, props.SpeedOfSound)
	areaLeft := math.Pi * rLeft * rLeft
	areaRight := math.Pi * rRight * rRight

	lensLeft := transfer.Matrix{
		PP: complexmath.One, PU: complexmath.Zero,
		UP: complexmath.New(0, k*areaLeft/x1), UU: complexmath.One,
	}
	lensRight := transfer.Matrix{
		PP: complexmath.One, PU: complexmath.Zero,
		UP: complexmath.New(0, -k*areaRight/x2), UU: complexmath.One,
	}

	return lensRight.Multiply(core).Multiply(lensLeft)
}
