// Package geometry defines the instrument data model of spec.md 3:
// bore profile, tone holes, mouthpiece, termination, fingerings, tunings,
// and constraint sets, plus the validation invariants the rest of the core
// relies on. The calculator packages borrow an Instrument and never mutate
// the caller's copy.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidInput is returned when an Instrument, Tuning, or Fingering
// fails the validation invariants of spec.md 3.
var ErrInvalidInput = errors.New("geometry: invalid input")

// BorePoint is a single (position, diameter) sample of the bore profile.
type BorePoint struct {
	Position float64
	Diameter float64
}

// MouthpieceKind tags which sound-generation variant a Mouthpiece carries.
type MouthpieceKind int

const (
	// Fipple is a whistle-type mouthpiece: windway, splitting edge.
	Fipple MouthpieceKind = iota
	// Embouchure is a transverse (flute-style) side-blown hole.
	Embouchure
	// SingleReed is a clarinet-style beating reed.
	SingleReed
	// DoubleReed is an oboe/bassoon-style double beating reed.
	DoubleReed
	// LipReed is a brass-style lip-buzzed mouthpiece.
	LipReed
)

// String returns the mouthpiece kind's name.
func (k MouthpieceKind) String() string {
	switch k {
	case Fipple:
		return "fipple"
	case Embouchure:
		return "embouchure"
	case SingleReed:
		return "single-reed"
	case DoubleReed:
		return "double-reed"
	case LipReed:
		return "lip-reed"
	default:
		return "unknown"
	}
}

// FippleParams describes a whistle-type windway/splitting-edge mouthpiece.
type FippleParams struct {
	WindowLength float64
	WindowWidth  float64
	WindwayHeight float64
	FippleFactor float64
}

// EmbouchureParams describes a transverse blowing hole.
type EmbouchureParams struct {
	Length         float64
	Width          float64
	Height         float64
	AirstreamLength float64
	AirstreamHeight float64
}

// SingleReedParams describes a beating single reed.
type SingleReedParams struct {
	Alpha float64
}

// DoubleReedParams describes a beating double reed.
type DoubleReedParams struct {
	Alpha         float64
	CrowFrequency float64
}

// LipReedParams describes a lip-buzzed (brass) mouthpiece.
type LipReedParams struct {
	Alpha float64
}

// Mouthpiece is a tagged union over the five sound-generation mechanisms
// spec.md 3 lists. Exactly one of the parameter pointers matching Kind is
// populated; Validate enforces this.
type Mouthpiece struct {
	Position float64
	Kind     MouthpieceKind

	Fipple     *FippleParams
	Embouchure *EmbouchureParams
	SingleReed *SingleReedParams
	DoubleReed *DoubleReedParams
	LipReed    *LipReedParams
}

// IsFlowNode reports whether this mouthpiece is a volume-velocity source
// (fipple/embouchure) as opposed to a pressure node (any reed).
func (m Mouthpiece) IsFlowNode() bool {
	return m.Kind == Fipple || m.Kind == Embouchure
}

// Validate checks that exactly one parameter struct matching Kind is set.
func (m Mouthpiece) Validate() error {
	set := 0
	if m.Fipple != nil {
		set++
	}
	if m.Embouchure != nil {
		set++
	}
	if m.SingleReed != nil {
		set++
	}
	if m.DoubleReed != nil {
		set++
	}
	if m.LipReed != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: mouthpiece must have exactly one sound-generation variant, found %d", ErrInvalidInput, set)
	}
	switch m.Kind {
	case Fipple:
		if m.Fipple == nil {
			return fmt.Errorf("%w: mouthpiece kind fipple without FippleParams", ErrInvalidInput)
		}
	case Embouchure:
		if m.Embouchure == nil {
			return fmt.Errorf("%w: mouthpiece kind embouchure without EmbouchureParams", ErrInvalidInput)
		}
	case SingleReed:
		if m.SingleReed == nil {
			return fmt.Errorf("%w: mouthpiece kind single-reed without SingleReedParams", ErrInvalidInput)
		}
	case DoubleReed:
		if m.DoubleReed == nil {
			return fmt.Errorf("%w: mouthpiece kind double-reed without DoubleReedParams", ErrInvalidInput)
		}
	case LipReed:
		if m.LipReed == nil {
			return fmt.Errorf("%w: mouthpiece kind lip-reed without LipReedParams", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown mouthpiece kind %d", ErrInvalidInput, m.Kind)
	}
	return nil
}

// KeyParams describes a keyed (as opposed to finger-closed) tone hole.
type KeyParams struct {
	// VentGap is the key's venting gap above the hole when open.
	VentGap float64
}

// Hole is a single tone hole.
type Hole struct {
	Name     string
	Position float64
	Diameter float64
	Height   float64 // chimney / wall height
	Key      *KeyParams

	// Plugged marks a tone hole as permanently stopped (e.g. an unused
	// bore hole from manufacturing), regardless of any fingering's
	// open/closed entry for it.
	Plugged bool

	// BoreDiameter is the bore diameter directly beneath the hole,
	// derived from the instrument's bore profile. Neither this package nor
	// the calculator layer sets or reads it; the calculator interpolates
	// the bore diameter beneath each hole with BoreDiameterAt instead.
	BoreDiameter float64
}

// IsKeyed reports whether this hole is mechanically keyed.
func (h Hole) IsKeyed() bool { return h.Key != nil }

// Termination is the open or closed end of the bore.
type Termination struct {
	FlangeDiameter float64
}

// IsFlanged reports whether t radiates as a flanged opening at the given
// bore diameter, per spec.md 4.6: flanged iff flange diameter > bore
// diameter at the termination.
func (t Termination) IsFlanged(boreDiameterAtEnd float64) bool {
	return t.FlangeDiameter > boreDiameterAtEnd
}

// Instrument is the complete physical description of a woodwind.
type Instrument struct {
	Name        string
	Unit        string
	Mouthpiece  Mouthpiece
	Bore        []BorePoint
	Holes       []Hole
	Termination Termination
}

// SortedBore returns a copy of the bore points sorted by position.
func (inst Instrument) SortedBore() []BorePoint {
	bore := append([]BorePoint(nil), inst.Bore...)
	sort.Slice(bore, func(i, j int) bool { return bore[i].Position < bore[j].Position })
	return bore
}

// SortedHoles returns a copy of the holes sorted by position.
func (inst Instrument) SortedHoles() []Hole {
	holes := append([]Hole(nil), inst.Holes...)
	sort.Slice(holes, func(i, j int) bool { return holes[i].Position < holes[j].Position })
	return holes
}

// BoreDiameterAt linearly interpolates the bore diameter at an arbitrary
// position along the (sorted) bore profile.
func BoreDiameterAt(bore []BorePoint, position float64) float64 {
	if len(bore) == 0 {
		return 0
	}
	if position <= bore[0].Position {
		return bore[0].Diameter
	}
	last := bore[len(bore)-1]
	if position >= last.Position {
		return last.Diameter
	}
	for i := 1; i < len(bore); i++ {
		if position <= bore[i].Position {
			lo, hi := bore[i-1], bore[i]
			if hi.Position == lo.Position {
				return hi.Diameter
			}
			t := (position - lo.Position) / (hi.Position - lo.Position)
			return lo.Diameter + t*(hi.Diameter-lo.Diameter)
		}
	}
	return last.Diameter
}

// TerminationPosition returns the bore position of the far (open/closed)
// end: the position of the last bore point.
func (inst Instrument) TerminationPosition() float64 {
	bore := inst.SortedBore()
	if len(bore) == 0 {
		return 0
	}
	return bore[len(bore)-1].Position
}

// Validate checks the structural invariants of spec.md 3: at least two
// bore points, every hole strictly between the mouthpiece and the
// termination, all diameters positive, and a consistent mouthpiece.
func (inst Instrument) Validate() error {
	if len(inst.Bore) < 2 {
		return fmt.Errorf("%w: instrument %q needs at least two bore points, has %d", ErrInvalidInput, inst.Name, len(inst.Bore))
	}
	for _, bp := range inst.Bore {
		if bp.Diameter <= 0 || math.IsNaN(bp.Diameter) {
			return fmt.Errorf("%w: bore point at %.6f has non-positive diameter %.6f", ErrInvalidInput, bp.Position, bp.Diameter)
		}
		if math.IsNaN(bp.Position) {
			return fmt.Errorf("%w: bore point has NaN position", ErrInvalidInput)
		}
	}
	if err := inst.Mouthpiece.Validate(); err != nil {
		return err
	}

	bore := inst.SortedBore()
	mouthpiecePos := inst.Mouthpiece.Position
	termPos := bore[len(bore)-1].Position
	if !(mouthpiecePos < termPos) {
		return fmt.Errorf("%w: mouthpiece position %.6f must be upstream of termination %.6f", ErrInvalidInput, mouthpiecePos, termPos)
	}

	for _, h := range inst.Holes {
		if h.Diameter <= 0 || math.IsNaN(h.Diameter) {
			return fmt.Errorf("%w: hole %q has non-positive diameter %.6f", ErrInvalidInput, h.Name, h.Diameter)
		}
		if !(h.Position > mouthpiecePos && h.Position < termPos) {
			return fmt.Errorf("%w: hole %q at %.6f must lie strictly between mouthpiece (%.6f) and termination (%.6f)",
				ErrInvalidInput, h.Name, h.Position, mouthpiecePos, termPos)
		}
	}
	return nil
}
