package elements

import (
	"math"

	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// ReferenceWindwayHeight is the windway height the fipple factor's
// cube-root scaling is normalized against.
const ReferenceWindwayHeight = 0.001 // metres

// FippleWindowImpedance returns the window impedance of a fipple
// mouthpiece (the impedance seen at the splitting edge), per spec.md 4.5:
// an inertial reactance scaled by the fipple factor and the cube root of
// the windway height, plus a small radiation resistance term. Per
// SPEC_FULL.md's resolved open question, this scaling does not vary with
// temperature; the temperature dependence enters only through props.
func FippleWindowImpedance(props physics.Properties, params geometry.FippleParams, frequency float64) complexmath.Complex {
	windowArea := params.WindowLength * params.WindowWidth
	if windowArea <= 0 {
		return complexmath.Zero
	}
	k := physics.WaveNumber(frequency, props.SpeedOfSound)
	effLength := params.WindowLength + 0.6*math.Sqrt(windowArea/math.Pi)

	heightRatio := params.WindwayHeight / ReferenceWindwayHeight
	if heightRatio <= 0 {
		heightRatio = 1
	}
	scale := params.FippleFactor / math.Cbrt(heightRatio)

	reactance := k * effLength * props.Density * props.SpeedOfSound / windowArea * scale
	ka := k * math.Sqrt(windowArea/math.Pi)
	resistance := 0.5 * props.Density * props.SpeedOfSound / windowArea * ka * ka

	return complexmath.New(resistance, reactance)
}

// EmbouchureWindowImpedance returns the window impedance of a transverse
// (flute-style) embouchure hole, per spec.md 4.5. The airstream dimensions
// play the role the fipple's windway height plays for a fipple mouthpiece.
func EmbouchureWindowImpedance(props physics.Properties, params geometry.EmbouchureParams, frequency float64) complexmath.Complex {
	windowArea := params.Length * params.Width
	if windowArea <= 0 {
		return complexmath.Zero
	}
	k := physics.WaveNumber(frequency, props.SpeedOfSound)
	effLength := params.Length + 0.6*math.Sqrt(windowArea/math.Pi) + params.AirstreamLength

	airstreamRatio := params.AirstreamHeight / ReferenceWindwayHeight
	if airstreamRatio <= 0 {
		airstreamRatio = 1
	}

	reactance := k * effLength * props.Density * props.SpeedOfSound / windowArea / math.Cbrt(airstreamRatio)
	ka := k * math.Sqrt(windowArea/math.Pi)
	resistance := 0.5 * props.Density * props.SpeedOfSound / windowArea * ka * ka

	return complexmath.New(resistance, reactance)
}

// FlowNodeMatrix is the two-port matrix of a flow-node mouthpiece (fipple
// or embouchure): the window impedance appears in series, with the
// headspace compliance folded in as a shunt admittance, per spec.md 4.5.
func FlowNodeMatrix(zWindow complexmath.Complex, props physics.Properties, headspaceVolume, frequency float64) transfer.Matrix {
	omega := 2 * math.Pi * frequency
	yHeadspace := complexmath.Zero
	if props.Density > 0 && props.SpeedOfSound > 0 {
		yHeadspace = complexmath.New(0, omega*headspaceVolume/(props.Density*props.SpeedOfSound*props.SpeedOfSound))
	}
	return transfer.Matrix{PP: complexmath.One, PU: zWindow, UP: yHeadspace, UU: complexmath.One}
}

// Headspace sums the frustum volumes of the bore segments upstream of the
// mouthpiece position, per spec.md 4.5.
func Headspace(bore []geometry.BorePoint, mouthpiecePosition float64) float64 {
	volume := 0.0
	for i := 1; i < len(bore); i++ {
		lo, hi := bore[i-1], bore[i]
		if hi.Position > mouthpiecePosition {
			break
		}
		length := hi.Position - lo.Position
		r1, r2 := 0.5*lo.Diameter, 0.5*hi.Diameter
		volume += math.Pi * length / 3 * (r1*r1 + r1*r2 + r2*r2)
	}
	return volume
}

// ReedMatrix returns the placeholder reed transfer matrix for a pressure
// node (single-reed, double-reed, or lip-reed mouthpiece), per spec.md 4.5:
// a closed-end matrix [[0, Z0], [1, 0]] perturbed by an alpha-dependent
// admittance representing reed compliance. Double reeds additionally
// amplify the admittance near the crow frequency.
func ReedMatrix(props physics.Properties, boreRadius, alpha, crowFrequency, frequency float64, kind geometry.MouthpieceKind) transfer.Matrix {
	z0 := physics.CharacteristicImpedance(props, boreRadius)

	reedAdmittance := complexmath.New(alpha, 0)
	if kind == geometry.DoubleReed && crowFrequency > 0 {
		ratio := frequency / crowFrequency
		denom := 1 - ratio*ratio
		if math.Abs(denom) > 1e-6 {
			reedAdmittance = complexmath.New(alpha/denom, 0)
		}
	}

	return transfer.Matrix{
		PP: complexmath.Zero,
		PU: complexmath.New(z0, 0),
		UP: complexmath.One.Add(reedAdmittance),
		UU: complexmath.Zero,
	}
}
