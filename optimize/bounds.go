package optimize

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-woodwind/internal/numutil"
)

// ErrInvalidBounds is returned when a Bounds value is malformed: mismatched
// lengths, or a lower bound that doesn't sit below its matching upper bound.
var ErrInvalidBounds = errors.New("optimize: invalid bounds")

// Bounds is the box an optimizer's search is confined to, one (lower,
// upper) pair per parameter.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// Dimension returns the number of parameters the bounds describe.
func (b Bounds) Dimension() int { return len(b.Lower) }

// Validate checks that Lower and Upper have matching, positive length and
// that every lower bound is strictly below its upper bound.
func (b Bounds) Validate() error {
	if len(b.Lower) == 0 || len(b.Lower) != len(b.Upper) {
		return fmt.Errorf("%w: lower/upper length mismatch (%d vs %d)", ErrInvalidBounds, len(b.Lower), len(b.Upper))
	}
	for i := range b.Lower {
		if !(b.Lower[i] < b.Upper[i]) {
			return fmt.Errorf("%w: dimension %d lower %.6g must be < upper %.6g", ErrInvalidBounds, i, b.Lower[i], b.Upper[i])
		}
	}
	return nil
}

// Clamp projects x into the box in place, returning x.
func (b Bounds) Clamp(x []float64) []float64 {
	for i := range x {
		x[i] = numutil.Clamp(x[i], b.Lower[i], b.Upper[i])
	}
	return x
}

// Center returns the box's midpoint.
func (b Bounds) Center() []float64 {
	c := make([]float64, len(b.Lower))
	for i := range c {
		c[i] = 0.5 * (b.Lower[i] + b.Upper[i])
	}
	return c
}

// Width returns the extent of dimension i.
func (b Bounds) Width(i int) float64 { return b.Upper[i] - b.Lower[i] }

// ToUnit maps x (in the box) to the unit hypercube [0,1]^n.
func (b Bounds) ToUnit(x []float64) []float64 {
	u := make([]float64, len(x))
	for i := range x {
		u[i] = (x[i] - b.Lower[i]) / b.Width(i)
	}
	return u
}

// FromUnit maps u (in the unit hypercube) back into the box.
func (b Bounds) FromUnit(u []float64) []float64 {
	x := make([]float64, len(u))
	for i := range u {
		x[i] = b.Lower[i] + u[i]*b.Width(i)
	}
	return x
}
