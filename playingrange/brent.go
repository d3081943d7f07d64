package playingrange

import (
	"errors"
	"math"
)

// errBracketSameSign is an internal sentinel for brentRoot's precondition
// check; callers of FindPlayingFrequency never see it directly.
var errBracketSameSign = errors.New("playingrange: bracket endpoints have the same sign")

// scalarFunc is a real-valued function of frequency that can fail (the
// underlying impedance evaluation can return an error).
type scalarFunc func(frequency float64) (float64, error)

// brentRoot finds a root of f within [a, b] using Brent's method: a hybrid
// of inverse quadratic interpolation, the secant method, and bisection,
// chosen so that it never does worse than bisection while converging much
// faster on well-behaved functions. f(a) and f(b) must have opposite signs.
func brentRoot(f scalarFunc, a, b, tol float64, maxIter int) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa*fb > 0 {
		return 0, errBracketSameSign
	}

	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant method.
			s = b - fb*(b-a)/(fb-fa)
		}

		cond1 := (s-(3*a+b)/4)*(s-b) >= 0
		cond2 := mflag && math.Abs(s-b) >= math.Abs(b-c)/2
		cond3 := !mflag && math.Abs(s-b) >= math.Abs(c-d)/2
		cond4 := mflag && math.Abs(b-c) < tol
		cond5 := !mflag && math.Abs(c-d) < tol
		if cond1 || cond2 || cond3 || cond4 || cond5 {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs, err := f(s)
		if err != nil {
			return 0, err
		}
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b, nil
}
