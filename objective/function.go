// Package objective implements spec.md 4.10's ObjectiveFunction contract:
// a bidirectional mapping between an optimizer's flat parameter vector and
// a concrete geometry.Instrument, plus the scoring that turns a tuning's
// predicted-vs-target deviations into the scalar the optimizer minimizes.
package objective

import (
	"math"

	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/physics"
)

// Function is one parameterization of an instrument: which numbers the
// optimizer is allowed to move, how they read back out of and write back
// into a geometry.Instrument, and what bounds apply to them.
type Function interface {
	// Name identifies this objective function for logging and reporting.
	Name() string
	// Dimension is the length of the parameter vector this Function
	// consumes and produces for base (some Functions, e.g. per-hole ones,
	// size their vector off the instrument's hole count).
	Dimension(base geometry.Instrument) int
	// Encode extracts the current parameter vector from inst.
	Encode(inst geometry.Instrument) []float64
	// Decode returns a copy of inst with params applied.
	Decode(inst geometry.Instrument, params []float64) geometry.Instrument
	// Constraints describes the suggested bounds for each parameter.
	Constraints() geometry.ConstraintSet
	// Evaluate scores params against tuning, using evaluator to turn each
	// fingering's predicted-vs-target deviation into a per-fingering cost.
	// A geometrically invalid instrument or an evaluator failure scores
	// +Inf rather than propagating an error, per spec.md 7's
	// ArithmeticFailure-as-+Inf rule.
	Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64
}

// evaluateDecoded is the shared scoring loop every Function.Evaluate
// implementation delegates to once it has decoded params into an
// instrument: build a Calculator, score every fingering, sum the
// weighted squared costs.
func evaluateDecoded(inst geometry.Instrument, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	calc, err := instrument.NewCalculator(inst, physicsCalc, env)
	if err != nil {
		return math.Inf(1)
	}
	total := 0.0
	for _, fingering := range tuning.Fingerings {
		score, err := evaluator.Score(calc, fingering)
		if err != nil || math.IsNaN(score) {
			return math.Inf(1)
		}
		total += score * score * fingering.EffectiveWeight()
	}
	return total
}

// Composite concatenates several Functions' parameter vectors at fixed
// offsets, letting the optimizer move multiple objectives' parameters
// together (e.g. hole positions and bore length in one search).
type Composite struct {
	Parts []Function
}

// Name joins the component functions' names.
func (c Composite) Name() string {
	name := "composite("
	for i, p := range c.Parts {
		if i > 0 {
			name += "+"
		}
		name += p.Name()
	}
	return name + ")"
}

// Dimension is the sum of the component dimensions, evaluated against
// base since some components size off base's hole count.
func (c Composite) Dimension(base geometry.Instrument) int {
	d := 0
	for _, p := range c.Parts {
		d += p.Dimension(base)
	}
	return d
}

// Encode concatenates each component's encoded parameters in order.
func (c Composite) Encode(inst geometry.Instrument) []float64 {
	params := make([]float64, 0, c.Dimension(inst))
	for _, p := range c.Parts {
		params = append(params, p.Encode(inst)...)
	}
	return params
}

// Decode applies each component's slice of params in turn, threading the
// instrument through sequentially so later components see earlier edits.
// Each component's width is resolved against the instrument state as it
// stood before that component's own edits, matching Encode's order.
func (c Composite) Decode(inst geometry.Instrument, params []float64) geometry.Instrument {
	offset := 0
	for _, p := range c.Parts {
		d := p.Dimension(inst)
		inst = p.Decode(inst, params[offset:offset+d])
		offset += d
	}
	return inst
}

// Constraints concatenates each component's constraint set. The set's
// Dimension field is not filled in (it stays 0); callers needing an exact
// width should use Dimension(base) instead.
func (c Composite) Constraints() geometry.ConstraintSet {
	set := geometry.ConstraintSet{ObjectiveName: c.Name()}
	for _, p := range c.Parts {
		set.Constraints = append(set.Constraints, p.Constraints().Constraints...)
	}
	return set
}

// Evaluate decodes the full parameter vector through every component in
// sequence, then scores the resulting instrument once.
func (c Composite) Evaluate(base geometry.Instrument, params []float64, tuning geometry.Tuning, physicsCalc physics.Calculator, env physics.Parameters, evaluator Evaluator) float64 {
	inst := c.Decode(base, params)
	return evaluateDecoded(inst, tuning, physicsCalc, env, evaluator)
}
