package elements

import (
	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// RadiationImpedance returns the low-ka Levine-Schwinger-style radiation
// impedance of an open bore end, per spec.md 4.6. Flanged terminations
// carry a larger resistance and length-correction coefficient than
// unflanged ones.
func RadiationImpedance(props physics.Properties, radius, frequency float64, flanged bool) complexmath.Complex {
	k := physics.WaveNumber(frequency, props.SpeedOfSound)
	ka := k * radius
	z0 := physics.CharacteristicImpedance(props, radius)

	var resistanceCoeff, delta float64
	if flanged {
		resistanceCoeff = 0.5
		delta = 0.8216
	} else {
		resistanceCoeff = 0.25
		delta = 0.6133
	}
	resistance := z0 * resistanceCoeff * ka * ka
	reactance := z0 * k * delta * radius
	return complexmath.New(resistance, reactance)
}

// TerminationState returns the boundary state vector at the instrument's
// lowest acoustic point, per spec.md 4.6 / 4.7: the radiation-impedance
// state if the fingering leaves the end open, otherwise the closed-end
// state vector (1, 0).
func TerminationState(props physics.Properties, boreDiameterAtEnd float64, term geometry.Termination, frequency float64, openEnd bool) transfer.State {
	if !openEnd {
		return transfer.State{P: complexmath.One, U: complexmath.Zero}
	}
	radius := 0.5 * boreDiameterAtEnd
	flanged := term.IsFlanged(boreDiameterAtEnd)
	z := RadiationImpedance(props, radius, frequency, flanged)
	return transfer.State{P: z, U: complexmath.One}
}

// ClosedEndState is the closed-end boundary state vector (1, 0), the same
// state TerminationState returns when openEnd is false (the case where a
// fingering's lowest open hole becomes the effective end, per spec.md 4.7
// step 2).
func ClosedEndState() transfer.State {
	return transfer.State{P: complexmath.One, U: complexmath.Zero}
}
