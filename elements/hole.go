package elements

import (
	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// HoleState is the fingering state of a tone hole for a single transfer
// matrix evaluation.
type HoleState int

const (
	// HoleOpen vents the hole to the surrounding air.
	HoleOpen HoleState = iota
	// HoleClosed seals the hole with a finger or pad, leaving a small
	// soft-finger volume above it.
	HoleClosed
	// HolePlugged removes the hole from the bore entirely (permanently
	// stopped), contributing no shunt admittance.
	HolePlugged
)

// DefaultFingerAdjustment is the empirical soft-finger volume correction
// subtracted from a closed, unkeyed hole's effective chimney height,
// per spec.md 4.4. Keyed holes (pad over a vent, not a fingertip) use no
// adjustment.
const DefaultFingerAdjustment = 0.00075 // metres

// ShuntAdmittance returns the tone hole's shunt admittance Y_h for the
// given fingering state, per spec.md 4.4:
//
//	open:   Y_h = 1 / (j * Z0_hole * tan(k* * t_e))
//	closed: Y_h = 1 / (j * Z0_hole * cot(k* * t_c))
//	plugged: Y_h = 0
//
// sizeMultiplier scales the hole radius, letting callers probe size
// sensitivity (e.g. the optimizer's hole-size objective) without
// mutating the instrument.
func ShuntAdmittance(props physics.Properties, hole geometry.Hole, boreDiameter, frequency float64, state HoleState, sizeMultiplier float64) complexmath.Complex {
	if state == HolePlugged {
		return complexmath.Zero
	}
	radius := 0.5 * hole.Diameter * sizeMultiplier
	if radius <= 0 {
		return complexmath.Zero
	}
	boreRadius := 0.5 * boreDiameter

	z0Hole := physics.CharacteristicImpedance(props, radius)
	kStar := props0ToComplex(physics.ComplexWaveNumber(props, frequency, radius))

	var tEff float64
	if state == HoleOpen {
		tEff = effectiveOpenLength(hole, radius, boreRadius)
	} else {
		tEff = effectiveClosedLength(hole, radius)
	}
	arg := kStar.Scale(tEff)

	var trig complexmath.Complex
	if state == HoleOpen {
		trig = arg.Tan()
	} else {
		trig = arg.Cot()
	}
	denom := complexmath.I.Scale(z0Hole).Multiply(trig)
	return complexmath.One.Divide(denom)
}

// HoleMatrix returns the tone hole's transfer matrix: a T-network of two
// (currently negligible) series sub-matrices for the bore-diameter step
// beneath the hole, bracketing the shunt admittance, per spec.md 4.4.
// A plugged hole returns the identity (hole removed from the bore).
func HoleMatrix(props physics.Properties, hole geometry.Hole, boreDiameter, frequency float64, state HoleState, sizeMultiplier float64) transfer.Matrix {
	if state == HolePlugged {
		return transfer.Identity()
	}
	yH := ShuntAdmittance(props, hole, boreDiameter, frequency, state, sizeMultiplier)
	shunt := transfer.Matrix{PP: complexmath.One, PU: complexmath.Zero, UP: yH, UU: complexmath.One}
	series := seriesSubMatrix(hole, boreDiameter)
	return series.Multiply(shunt).Multiply(series)
}

// seriesSubMatrix is the thin bore-diameter-step correction on each side of
// a tone hole. It is held at identity: spec.md does not pin down a formula
// for it, and the hole's acoustic behavior is dominated by the shunt
// admittance above.
func seriesSubMatrix(hole geometry.Hole, boreDiameter float64) transfer.Matrix {
	return transfer.Identity()
}

// effectiveOpenLength is the acoustic chimney length of an open hole: its
// physical height plus a radiation end correction that depends on the
// hole-to-bore radius ratio (Keefe-style polynomial), per spec.md 4.4.
func effectiveOpenLength(hole geometry.Hole, holeRadius, boreRadius float64) float64 {
	if boreRadius <= 0 {
		return hole.Height
	}
	ratio := holeRadius / boreRadius
	endCorrection := holeRadius * (0.822 - 0.10*ratio - 1.57*ratio*ratio + 2.14*ratio*ratio*ratio - 1.60*ratio*ratio*ratio*ratio)
	return hole.Height + endCorrection
}

// effectiveClosedLength is the acoustic chimney length of a closed hole:
// its physical height minus the soft-finger volume correction, zero for
// keyed holes, per spec.md 4.4.
func effectiveClosedLength(hole geometry.Hole, holeRadius float64) float64 {
	adjustment := DefaultFingerAdjustment
	if hole.IsKeyed() {
		adjustment = 0
	}
	tEff := hole.Height - adjustment
	if tEff < 1e-6 {
		tEff = 1e-6
	}
	return tEff
}
