// Package instrument composes the per-element transfer matrices of the
// elements package into the whole-instrument acoustic impedance, per
// spec.md 4.7: Calculator walks the bore from the sounding end up to the
// mouthpiece, one fingering and frequency at a time.
package instrument

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-woodwind/complexmath"
	"github.com/cwbudde/algo-woodwind/elements"
	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/transfer"
)

// ErrAllHolesClosed is returned when a fingering closes the instrument's
// end (openEnd=false) and leaves every tone hole closed too, so there is
// no sounding point to compose a state vector from.
var ErrAllHolesClosed = errors.New("instrument: fingering closes the end with no open hole")

// node is one cut point along the bore between the mouthpiece and the
// sounding end: either a bare bore sample or a tone hole.
type node struct {
	position float64
	diameter float64
	hole     *geometry.Hole
	holeIdx  int
}

// Calculator predicts the acoustic input impedance of one Instrument
// across frequency and fingering. It holds no mutable state beyond its
// configuration, so a single Calculator is safe to share across
// goroutines as long as each call supplies its own Fingering.
type Calculator struct {
	Instrument  geometry.Instrument
	Physics     physics.Calculator
	Environment physics.Parameters
}

// NewCalculator validates inst and returns a ready Calculator. A nil
// Physics calculator defaults to physics.Full{}.
func NewCalculator(inst geometry.Instrument, calc physics.Calculator, env physics.Parameters) (*Calculator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if calc == nil {
		calc = physics.Full{}
	}
	return &Calculator{Instrument: inst, Physics: calc, Environment: env}, nil
}

// CalcZ returns the complex acoustic input impedance at the mouthpiece,
// at the given frequency, for the given fingering, per spec.md 4.7:
//  1. pick the sounding end (termination if openEnd, else the lowest open
//     hole);
//  2. start from that end's boundary state vector;
//  3. walk upward toward the mouthpiece, applying each bore segment's and
//     tone hole's transfer matrix in turn;
//  4. apply the mouthpiece's matrix and read off Z = P/U.
func (c *Calculator) CalcZ(frequency float64, fingering geometry.Fingering) (complexmath.Complex, error) {
	if err := fingering.Validate(len(c.Instrument.Holes)); err != nil {
		return complexmath.Zero, err
	}
	props, err := c.Physics.Properties(c.Environment)
	if err != nil {
		return complexmath.Zero, err
	}

	sortedBore := c.Instrument.SortedBore()
	sortedHoles := c.Instrument.SortedHoles()
	openEnd := fingering.IsOpenEnd()

	endPos, endIdx, err := c.soundingEnd(sortedHoles, fingering, openEnd)
	if err != nil {
		return complexmath.Zero, err
	}

	// The walk below skips endIdx's own hole (buildNodes still places a
	// node at it): its acoustic opening is what the closed-end/radiation
	// boundary state below already represents.
	nodes := buildNodes(sortedBore, sortedHoles, c.Instrument.Mouthpiece.Position, endPos)
	boreDiameterAtEnd := geometry.BoreDiameterAt(sortedBore, endPos)
	state := elements.TerminationState(props, boreDiameterAtEnd, c.Instrument.Termination, frequency, openEnd)

	for i := len(nodes) - 1; i >= 1; i-- {
		lo, hi := nodes[i-1], nodes[i]
		seg := elements.Cone(props, 0.5*lo.diameter, 0.5*hi.diameter, hi.position-lo.position, frequency)
		state = seg.Apply(state)

		if lo.hole != nil && lo.holeIdx != endIdx {
			holeState := fingeringHoleState(*lo.hole, fingering, lo.holeIdx)
			hm := elements.HoleMatrix(props, *lo.hole, lo.diameter, frequency, holeState, 1.0)
			state = hm.Apply(state)
		}
	}

	mouthMatrix, err := c.mouthpieceMatrix(props, nodes[0].diameter, sortedBore, frequency)
	if err != nil {
		return complexmath.Zero, err
	}
	final := mouthMatrix.Apply(state)
	return final.Impedance(), nil
}

// CalcReflectionCoefficient returns the normalized reflection coefficient
// (Z - Z0) / (Z + Z0) at the mouthpiece bore radius, a convenience used by
// objective functions that prefer to work in reflection-coefficient space.
func (c *Calculator) CalcReflectionCoefficient(frequency float64, fingering geometry.Fingering) (complexmath.Complex, error) {
	z, err := c.CalcZ(frequency, fingering)
	if err != nil {
		return complexmath.Zero, err
	}
	props, err := c.Physics.Properties(c.Environment)
	if err != nil {
		return complexmath.Zero, err
	}
	boreDiameter := geometry.BoreDiameterAt(c.Instrument.SortedBore(), c.Instrument.Mouthpiece.Position)
	z0 := complexmath.New(physics.CharacteristicImpedance(props, 0.5*boreDiameter), 0)
	return z.Sub(z0).Divide(z.Add(z0)), nil
}

// Gain is a simple playability proxy: the magnitude of the input
// admittance 1/|Z|, larger where the bore couples more strongly to the
// excitation at this frequency and fingering.
func (c *Calculator) Gain(frequency float64, fingering geometry.Fingering) (float64, error) {
	z, err := c.CalcZ(frequency, fingering)
	if err != nil {
		return 0, err
	}
	if z.Abs() == 0 {
		return 0, nil
	}
	return 1 / z.Abs(), nil
}

func (c *Calculator) soundingEnd(sortedHoles []geometry.Hole, fingering geometry.Fingering, openEnd bool) (float64, int, error) {
	if openEnd {
		return c.Instrument.TerminationPosition(), -1, nil
	}
	idx := geometry.LowestOpenHoleIndex(fingering.Open)
	if idx == -1 {
		return 0, -1, ErrAllHolesClosed
	}
	return sortedHoles[idx].Position, idx, nil
}

func buildNodes(sortedBore []geometry.BorePoint, sortedHoles []geometry.Hole, mouthpiecePos, endPos float64) []node {
	const eps = 1e-9
	positions := map[float64]struct{}{mouthpiecePos: {}, endPos: {}}
	for _, bp := range sortedBore {
		if bp.Position >= mouthpiecePos-eps && bp.Position <= endPos+eps {
			positions[bp.Position] = struct{}{}
		}
	}
	holeAt := map[float64]int{}
	for i, h := range sortedHoles {
		if h.Position > mouthpiecePos-eps && h.Position < endPos+eps {
			positions[h.Position] = struct{}{}
			holeAt[h.Position] = i
		}
	}

	ordered := make([]float64, 0, len(positions))
	for p := range positions {
		ordered = append(ordered, p)
	}
	sort.Float64s(ordered)

	nodes := make([]node, 0, len(ordered))
	for _, p := range ordered {
		n := node{position: p, diameter: geometry.BoreDiameterAt(sortedBore, p), holeIdx: -1}
		if idx, ok := holeAt[p]; ok {
			h := sortedHoles[idx]
			n.hole = &h
			n.holeIdx = idx
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func fingeringHoleState(hole geometry.Hole, fingering geometry.Fingering, idx int) elements.HoleState {
	if hole.Plugged {
		return elements.HolePlugged
	}
	if idx < len(fingering.Open) && fingering.Open[idx] {
		return elements.HoleOpen
	}
	return elements.HoleClosed
}

func (c *Calculator) mouthpieceMatrix(props physics.Properties, boreDiameterAtMouthpiece float64, sortedBore []geometry.BorePoint, frequency float64) (transfer.Matrix, error) {
	mp := c.Instrument.Mouthpiece
	switch mp.Kind {
	case geometry.Fipple:
		z := elements.FippleWindowImpedance(props, *mp.Fipple, frequency)
		headspace := elements.Headspace(sortedBore, mp.Position)
		return elements.FlowNodeMatrix(z, props, headspace, frequency), nil
	case geometry.Embouchure:
		z := elements.EmbouchureWindowImpedance(props, *mp.Embouchure, frequency)
		headspace := elements.Headspace(sortedBore, mp.Position)
		return elements.FlowNodeMatrix(z, props, headspace, frequency), nil
	case geometry.SingleReed:
		return elements.ReedMatrix(props, 0.5*boreDiameterAtMouthpiece, mp.SingleReed.Alpha, 0, frequency, mp.Kind), nil
	case geometry.DoubleReed:
		return elements.ReedMatrix(props, 0.5*boreDiameterAtMouthpiece, mp.DoubleReed.Alpha, mp.DoubleReed.CrowFrequency, frequency, mp.Kind), nil
	case geometry.LipReed:
		return elements.ReedMatrix(props, 0.5*boreDiameterAtMouthpiece, mp.LipReed.Alpha, 0, frequency, mp.Kind), nil
	default:
		return transfer.Matrix{}, fmt.Errorf("instrument: unsupported mouthpiece kind %v", mp.Kind)
	}
}
