package objective

import (
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
)

// bounds builds a Dimensional constraint with the given bounds.
func bounds(category, name string, lower, upper float64) geometry.Constraint {
	lo, hi := lower, upper
	return geometry.Constraint{Category: category, DisplayName: name, Kind: geometry.Dimensional, Lower: &lo, Upper: &hi}
}

// HolePositionFunction moves every tone hole's position, leaving
// diameters and the bore untouched, per spec.md 4.10's hole-position
// objective family.
type HolePositionFunction struct {
	MinSpacing float64 // gap between consecutive hole positions; Decode and Constraints do not enforce it
}

// Name implements Function.
func (HolePositionFunction) Name() string { return "hole-position" }

// Dimension implements Function: one parameter per tone hole.
func (HolePositionFunction) Dimension(base geometry.Instrument) int { return len(base.Holes) }

// Encode implements Function.
func (f HolePositionFunction) Encode(inst geometry.Instrument) []float64 {
	holes := inst.SortedHoles()
	params := make([]float64, len(holes))
	for i, h := range holes {
		params[i] = h.Position
	}
	return params
}

// Decode implements Function.
func (f HolePositionFunction) Decode(inst geometry.Instrument, params []float64) geometry.Instrument {
	out := inst
	out.Holes = append([]geometry.Hole(nil), inst.SortedHoles()...)
	for i := range out.Holes {
		if i < len(params) {
			out.Holes[i].Position = params[i]
		}
	}
	return out
}

// Constraints implements Function.
func (f HolePositionFunction) Constraints() geometry.ConstraintSet {
	return geometry.ConstraintSet{ObjectiveName: f.Name(), Unit: "m"}
}

// Evaluate implements Function.
func (f HolePositionFunction) Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	return evaluateDecoded(f.Decode(base, params), tuning, physicsCalc, env, evaluator)
}

// HoleSizeFunction sets every tone hole's diameter directly (one absolute
// diameter in metres per hole), leaving positions untouched, per spec.md 4.10's
// hole-size objective family.
type HoleSizeFunction struct{}

// Name implements Function.
func (HoleSizeFunction) Name() string { return "hole-size" }

// Dimension implements Function: one parameter per tone hole.
func (HoleSizeFunction) Dimension(base geometry.Instrument) int { return len(base.Holes) }

// Encode implements Function.
func (HoleSizeFunction) Encode(inst geometry.Instrument) []float64 {
	holes := inst.SortedHoles()
	params := make([]float64, len(holes))
	for i, h := range holes {
		params[i] = h.Diameter
	}
	return params
}

// Decode implements Function.
func (HoleSizeFunction) Decode(inst geometry.Instrument, params []float64) geometry.Instrument {
	out := inst
	out.Holes = append([]geometry.Hole(nil), inst.SortedHoles()...)
	for i := range out.Holes {
		if i < len(params) {
			out.Holes[i].Diameter = params[i]
		}
	}
	return out
}

// Constraints implements Function.
func (HoleSizeFunction) Constraints() geometry.ConstraintSet {
	return geometry.ConstraintSet{ObjectiveName: "hole-size", Unit: "m"}
}

// Evaluate implements Function.
func (f HoleSizeFunction) Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	return evaluateDecoded(f.Decode(base, params), tuning, physicsCalc, env, evaluator)
}

// GroupedHoleFunction moves a contiguous group of holes together by one
// shared offset, preserving their relative spacing, per spec.md 4.10's
// grouped-hole objective family (e.g. moving a tone-hole cluster as a
// unit during coarse layout search).
type GroupedHoleFunction struct {
	FirstIndex, LastIndex int // inclusive range into SortedHoles()
}

// Name implements Function.
func (GroupedHoleFunction) Name() string { return "grouped-hole" }

// Dimension implements Function.
func (GroupedHoleFunction) Dimension(geometry.Instrument) int { return 1 }

// Encode implements Function.
func (f GroupedHoleFunction) Encode(inst geometry.Instrument) []float64 {
	holes := inst.SortedHoles()
	if f.FirstIndex < 0 || f.FirstIndex >= len(holes) {
		return []float64{0}
	}
	return []float64{holes[f.FirstIndex].Position}
}

// Decode implements Function.
func (f GroupedHoleFunction) Decode(inst geometry.Instrument, params []float64) geometry.Instrument {
	out := inst
	holes := inst.SortedHoles()
	out.Holes = append([]geometry.Hole(nil), holes...)
	if len(params) == 0 || f.FirstIndex < 0 || f.FirstIndex >= len(holes) {
		return out
	}
	offset := params[0] - holes[f.FirstIndex].Position
	last := f.LastIndex
	if last >= len(holes) {
		last = len(holes) - 1
	}
	for i := f.FirstIndex; i <= last; i++ {
		out.Holes[i].Position += offset
	}
	return out
}

// Constraints implements Function.
func (GroupedHoleFunction) Constraints() geometry.ConstraintSet {
	return geometry.ConstraintSet{Dimension: 1, ObjectiveName: "grouped-hole", Unit: "m"}
}

// Evaluate implements Function.
func (f GroupedHoleFunction) Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	return evaluateDecoded(f.Decode(base, params), tuning, physicsCalc, env, evaluator)
}

// scalarField is a single named, bounded scalar parameter of an
// Instrument, read and written through closures. It backs the several
// one-dimensional objective families (bore length, single taper in both
// parameterizations, hemi-head, and the mouthpiece calibration
// objectives) without repeating the Function boilerplate for each.
type scalarField struct {
	name     string
	unit     string
	lower    float64
	upper    float64
	get      func(inst geometry.Instrument) float64
	set      func(inst geometry.Instrument, v float64) geometry.Instrument
}

// Name implements Function.
func (s scalarField) Name() string { return s.name }

// Dimension implements Function.
func (scalarField) Dimension(geometry.Instrument) int { return 1 }

// Encode implements Function.
func (s scalarField) Encode(inst geometry.Instrument) []float64 { return []float64{s.get(inst)} }

// Decode implements Function.
func (s scalarField) Decode(inst geometry.Instrument, params []float64) geometry.Instrument {
	if len(params) == 0 {
		return inst
	}
	return s.set(inst, params[0])
}

// Constraints implements Function.
func (s scalarField) Constraints() geometry.ConstraintSet {
	return geometry.ConstraintSet{Dimension: 1, ObjectiveName: s.name, Unit: s.unit, Constraints: []geometry.Constraint{bounds(s.name, s.name, s.lower, s.upper)}}
}

// Evaluate implements Function.
func (s scalarField) Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	return evaluateDecoded(s.Decode(base, params), tuning, physicsCalc, env, evaluator)
}

// NewBoreLengthFunction moves the bore's far (termination) end, changing
// the instrument's overall length while leaving every bore diameter and
// hole position untouched, per spec.md 4.10's bore-length family.
func NewBoreLengthFunction(lower, upper float64) Function {
	return scalarField{
		name: "bore-length", unit: "m", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 { return inst.TerminationPosition() },
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			bore := inst.SortedBore()
			out.Bore = append([]geometry.BorePoint(nil), bore...)
			if len(out.Bore) > 0 {
				out.Bore[len(out.Bore)-1].Position = v
			}
			return out
		},
	}
}

// NewSingleTaperDiameterFunction parameterizes a single bore taper by the
// absolute diameter of its far end, per spec.md 4.10's first single-taper
// parameterization.
func NewSingleTaperDiameterFunction(lower, upper float64) Function {
	return scalarField{
		name: "single-taper-diameter", unit: "m", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 {
			bore := inst.SortedBore()
			return bore[len(bore)-1].Diameter
		},
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			bore := inst.SortedBore()
			out.Bore = append([]geometry.BorePoint(nil), bore...)
			out.Bore[len(out.Bore)-1].Diameter = v
			return out
		},
	}
}

// NewSingleTaperRatioFunction parameterizes the same single bore taper by
// the ratio of its far-end to near-end diameter, per spec.md 4.10's
// second single-taper parameterization.
func NewSingleTaperRatioFunction(lower, upper float64) Function {
	return scalarField{
		name: "single-taper-ratio", unit: "", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 {
			bore := inst.SortedBore()
			if bore[0].Diameter == 0 {
				return 1
			}
			return bore[len(bore)-1].Diameter / bore[0].Diameter
		},
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			bore := inst.SortedBore()
			out.Bore = append([]geometry.BorePoint(nil), bore...)
			out.Bore[len(out.Bore)-1].Diameter = v * bore[0].Diameter
			return out
		},
	}
}

// NewHemiHeadFunction parameterizes a hemispherical bore-head taper by
// the diameter at the mouthpiece end, per spec.md 4.10's hemi-head
// family (a common reed-instrument bore-head shape).
func NewHemiHeadFunction(lower, upper float64) Function {
	return scalarField{
		name: "hemi-head", unit: "m", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 {
			bore := inst.SortedBore()
			return bore[0].Diameter
		},
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			bore := inst.SortedBore()
			out.Bore = append([]geometry.BorePoint(nil), bore...)
			out.Bore[0].Diameter = v
			return out
		},
	}
}

// NewMouthpieceFippleFunction moves a fipple mouthpiece's window length,
// width, and fipple factor together (three parameters), per spec.md
// 4.10's mouthpiece fipple/window/beta objective family.
func NewMouthpieceFippleFunction() Function {
	return Composite{Parts: []Function{
		scalarField{
			name: "fipple-window-length", unit: "m", lower: 0.001, upper: 0.05,
			get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Fipple.WindowLength },
			set: func(inst geometry.Instrument, v float64) geometry.Instrument {
				out := inst
				p := *inst.Mouthpiece.Fipple
				p.WindowLength = v
				out.Mouthpiece.Fipple = &p
				return out
			},
		},
		scalarField{
			name: "fipple-window-width", unit: "m", lower: 0.001, upper: 0.05,
			get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Fipple.WindowWidth },
			set: func(inst geometry.Instrument, v float64) geometry.Instrument {
				out := inst
				p := *inst.Mouthpiece.Fipple
				p.WindowWidth = v
				out.Mouthpiece.Fipple = &p
				return out
			},
		},
		scalarField{
			name: "fipple-factor", unit: "", lower: 0.1, upper: 5.0,
			get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Fipple.FippleFactor },
			set: func(inst geometry.Instrument, v float64) geometry.Instrument {
				out := inst
				p := *inst.Mouthpiece.Fipple
				p.FippleFactor = v
				out.Mouthpiece.Fipple = &p
				return out
			},
		},
	}}
}

// NewReedCalibrationFunction tunes a single/double/lip reed's alpha
// (effective reed compliance) against a reference tuning, per spec.md
// 4.10's reed calibration objective.
func NewReedCalibrationFunction(lower, upper float64) Function {
	return scalarField{
		name: "reed-calibration-alpha", unit: "", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 { return reedAlpha(inst) },
		set: func(inst geometry.Instrument, v float64) geometry.Instrument { return setReedAlpha(inst, v) },
	}
}

// NewStopperCalibrationFunction tunes the mouthpiece-end offset used as a
// stopper-position proxy (e.g. a cork's insertion depth in a closed-pipe
// head joint) against a reference tuning.
func NewStopperCalibrationFunction(lower, upper float64) Function {
	return scalarField{
		name: "stopper-calibration-position", unit: "m", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Position },
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			out.Mouthpiece.Position = v
			return out
		},
	}
}

// NewFluteCalibrationFunction tunes an embouchure hole's airstream length
// against a reference tuning.
func NewFluteCalibrationFunction(lower, upper float64) Function {
	return scalarField{
		name: "flute-calibration-airstream", unit: "m", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Embouchure.AirstreamLength },
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			p := *inst.Mouthpiece.Embouchure
			p.AirstreamLength = v
			out.Mouthpiece.Embouchure = &p
			return out
		},
	}
}

// NewWhistleCalibrationFunction tunes a fipple mouthpiece's fipple factor
// against a reference tuning (the whistle analogue of reed calibration).
func NewWhistleCalibrationFunction(lower, upper float64) Function {
	return scalarField{
		name: "whistle-calibration-fipple-factor", unit: "", lower: lower, upper: upper,
		get: func(inst geometry.Instrument) float64 { return inst.Mouthpiece.Fipple.FippleFactor },
		set: func(inst geometry.Instrument, v float64) geometry.Instrument {
			out := inst
			p := *inst.Mouthpiece.Fipple
			p.FippleFactor = v
			out.Mouthpiece.Fipple = &p
			return out
		},
	}
}

func reedAlpha(inst geometry.Instrument) float64 {
	switch inst.Mouthpiece.Kind {
	case geometry.SingleReed:
		return inst.Mouthpiece.SingleReed.Alpha
	case geometry.DoubleReed:
		return inst.Mouthpiece.DoubleReed.Alpha
	case geometry.LipReed:
		return inst.Mouthpiece.LipReed.Alpha
	default:
		return 0
	}
}

func setReedAlpha(inst geometry.Instrument, v float64) geometry.Instrument {
	out := inst
	switch inst.Mouthpiece.Kind {
	case geometry.SingleReed:
		p := *inst.Mouthpiece.SingleReed
		p.Alpha = v
		out.Mouthpiece.SingleReed = &p
	case geometry.DoubleReed:
		p := *inst.Mouthpiece.DoubleReed
		p.Alpha = v
		out.Mouthpiece.DoubleReed = &p
	case geometry.LipReed:
		p := *inst.Mouthpiece.LipReed
		p.Alpha = v
		out.Mouthpiece.LipReed = &p
	}
	return out
}

// NewHoleAndBoreFunction combines hole-position search with a bore-length
// adjustment in one objective, per spec.md 4.10's combined hole+bore
// family, demonstrating Composite.
func NewHoleAndBoreFunction(lengthLower, lengthUpper float64) Function {
	return Composite{Parts: []Function{HolePositionFunction{}, NewBoreLengthFunction(lengthLower, lengthUpper)}}
}
