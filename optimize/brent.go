package optimize

import "math"

const (
	goldenRatio    = 0.3819660112501051 // 1 - 1/phi
	brentZeroEps   = 1e-11
	maxBrentPasses = 100
)

// lineFunc evaluates the objective along a 1-D line, parameterized by the
// scalar step alpha.
type lineFunc func(alpha float64) float64

// brentMinimize finds a local minimum of f over [a, b] using Brent's
// golden-section/parabolic-interpolation hybrid (the same family of method
// as playingrange's root-finding Brent, adapted here to minimize rather
// than bracket a zero crossing).
func brentMinimize(f lineFunc, a, b, tol float64) (alpha, value float64) {
	x := a + goldenRatio*(b-a)
	w, v := x, x
	fx := f(x)
	fw, fv := fx, fx

	d, e := 0.0, 0.0

	for i := 0; i < maxBrentPasses; i++ {
		mid := 0.5 * (a + b)
		tol1 := tol*math.Abs(x) + brentZeroEps
		tol2 := 2 * tol1

		if math.Abs(x-mid) <= tol2-0.5*(b-a) {
			return x, fx
		}

		useGolden := true
		if math.Abs(e) > tol1 {
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			etemp := e
			e = d

			if math.Abs(p) < math.Abs(0.5*q*etemp) && p > q*(a-x) && p < q*(b-x) {
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = signedTol(tol1, mid-x)
				}
				useGolden = false
			}
		}

		if useGolden {
			if x >= mid {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenRatio * e
		}

		var u float64
		if math.Abs(d) >= tol1 {
			u = x + d
		} else {
			u = x + signedTol(tol1, d)
		}
		fu := f(u)

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			if fu <= fw || w == x {
				v, fv = w, fw
				w, fw = u, fu
			} else if fu <= fv || v == x || v == w {
				v, fv = u, fu
			}
		}
	}
	return x, fx
}

func signedTol(tol, ref float64) float64 {
	if ref >= 0 {
		return tol
	}
	return -tol
}
