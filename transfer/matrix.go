// Package transfer implements the 2x2 complex transfer matrix and state
// vector algebra the acoustic model is built from (spec.md 4.2): matrix
// composition, matrix-vector application, and an allocation-free scratch
// variant for the per-frequency hot path.
package transfer

import (
	"errors"

	"github.com/cwbudde/algo-woodwind/complexmath"
)

// ErrSingular is returned by Inverse when the matrix determinant is zero.
var ErrSingular = errors.New("transfer: matrix is singular")

// Matrix is an immutable 2x2 complex transfer matrix relating acoustic
// state at two points: [P_out; U_out] = M . [P_in; U_in].
type Matrix struct {
	PP, PU, UP, UU complexmath.Complex
}

// Identity returns the multiplicative identity matrix.
func Identity() Matrix {
	return Matrix{PP: complexmath.One, UU: complexmath.One}
}

// State is a (pressure, volume velocity) acoustic state pair.
type State struct {
	P, U complexmath.Complex
}

// Impedance returns Z = P / U, the input impedance represented by s.
func (s State) Impedance() complexmath.Complex {
	return s.P.Divide(s.U)
}

// Multiply returns m composed with right, i.e. the matrix that represents
// "right" followed by "m" when applied to a state vector: (m.Multiply(
// right)).Apply(s) == m.Apply(right.Apply(s)). Per spec.md 4.2, composition
// is non-commutative; the element further from the mouthpiece ends up as
// the right-hand factor.
func (m Matrix) Multiply(right Matrix) Matrix {
	return Matrix{
		PP: m.PP.Multiply(right.PP).Add(m.PU.Multiply(right.UP)),
		PU: m.PP.Multiply(right.PU).Add(m.PU.Multiply(right.UU)),
		UP: m.UP.Multiply(right.PP).Add(m.UU.Multiply(right.UP)),
		UU: m.UP.Multiply(right.PU).Add(m.UU.Multiply(right.UU)),
	}
}

// Apply returns the state vector produced by applying m to s.
func (m Matrix) Apply(s State) State {
	return State{
		P: m.PP.Multiply(s.P).Add(m.PU.Multiply(s.U)),
		U: m.UP.Multiply(s.P).Add(m.UU.Multiply(s.U)),
	}
}

// Determinant returns det(m) = PP*UU - PU*UP.
func (m Matrix) Determinant() complexmath.Complex {
	return m.PP.Multiply(m.UU).Sub(m.PU.Multiply(m.UP))
}

// Inverse returns the matrix inverse, computed from the determinant.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det.Abs() == 0 {
		return Matrix{}, ErrSingular
	}
	invDet := complexmath.One.Divide(det)
	return Matrix{
		PP: m.UU.Multiply(invDet),
		PU: m.PU.Neg().Multiply(invDet),
		UP: m.UP.Neg().Multiply(invDet),
		UU: m.PP.Multiply(invDet),
	}, nil
}

// Equal reports whether m and o agree within tol, component-wise.
func (m Matrix) Equal(o Matrix, tol float64) bool {
	return m.PP.Equal(o.PP, tol) && m.PU.Equal(o.PU, tol) &&
		m.UP.Equal(o.UP, tol) && m.UU.Equal(o.UU, tol)
}

// Scratch is a mutable 2x2 complex matrix for the allocation-free
// composition hot path: repeated MultiplyInto calls inside per-frequency,
// per-fingering impedance evaluations (spec.md 4.2, 4.7).
type Scratch struct {
	PP, PU, UP, UU complexmath.Scratch
}

// SetIdentity resets s to the identity matrix.
func (s *Scratch) SetIdentity() {
	s.PP.Set(1, 0)
	s.PU.Set(0, 0)
	s.UP.Set(0, 0)
	s.UU.Set(1, 0)
}

// SetMatrix copies an immutable Matrix into the scratch buffer.
func (s *Scratch) SetMatrix(m Matrix) {
	s.PP.SetComplex(m.PP)
	s.PU.SetComplex(m.PU)
	s.UP.SetComplex(m.UP)
	s.UU.SetComplex(m.UU)
}

// Matrix returns the scratch buffer as an immutable Matrix.
func (s *Scratch) Matrix() Matrix {
	return Matrix{PP: s.PP.Complex(), PU: s.PU.Complex(), UP: s.UP.Complex(), UU: s.UU.Complex()}
}

// MultiplyInto sets s = left . right without allocating. s may alias left
// or right; all cross terms are accumulated into local temporaries first.
func (s *Scratch) MultiplyInto(left, right *Scratch) {
	var pp, pu, up, uu complexmath.Scratch
	var t1, t2 complexmath.Scratch

	t1.MultiplyInto(&left.PP, &right.PP)
	t2.MultiplyInto(&left.PU, &right.UP)
	pp.AddInto(&t1, &t2)

	t1.MultiplyInto(&left.PP, &right.PU)
	t2.MultiplyInto(&left.PU, &right.UU)
	pu.AddInto(&t1, &t2)

	t1.MultiplyInto(&left.UP, &right.PP)
	t2.MultiplyInto(&left.UU, &right.UP)
	up.AddInto(&t1, &t2)

	t1.MultiplyInto(&left.UP, &right.PU)
	t2.MultiplyInto(&left.UU, &right.UU)
	uu.AddInto(&t1, &t2)

	s.PP, s.PU, s.UP, s.UU = pp, pu, up, uu
}

// ApplyInto sets (dstP, dstU) = s . (p, u) without allocating.
func (s *Scratch) ApplyInto(dstP, dstU *complexmath.Scratch, p, u *complexmath.Scratch) {
	var t1, t2, outP, outU complexmath.Scratch

	t1.MultiplyInto(&s.PP, p)
	t2.MultiplyInto(&s.PU, u)
	outP.AddInto(&t1, &t2)

	t1.MultiplyInto(&s.UP, p)
	t2.MultiplyInto(&s.UU, u)
	outU.AddInto(&t1, &t2)

	*dstP, *dstU = outP, outU
}
