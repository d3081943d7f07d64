package optimize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	powellLineTol = 1e-6
	powellFuncTol = 1e-8
	powellEps     = 1e-12
)

// powellResult carries one run of Powell's method's outcome, independent
// of the public Result type so the orchestration layer can attach timing
// and decode the vector into an Instrument itself.
type powellResult struct {
	X     []float64
	Value float64
	Evals int
}

// powellMinimize runs Powell's conjugate-direction method from x0, confined
// to bounds, polishing each direction with a 1-D Brent line search per
// Numerical-Recipes-style Powell: after every full pass over the direction
// set, the net displacement is tried as a new conjugate direction and
// swapped in for the direction that contributed the largest single
// decrease, provided the extrapolated point doesn't look like it would
// re-use an already-exhausted direction.
func powellMinimize(f func([]float64) float64, x0 []float64, bounds Bounds, maxIter int, cancel <-chan struct{}) (powellResult, error) {
	n := len(x0)
	p := append([]float64(nil), x0...)
	bounds.Clamp(p)

	directions := make([][]float64, n)
	for i := range directions {
		dir := make([]float64, n)
		dir[i] = 1
		directions[i] = dir
	}

	evals := 0
	eval := func(x []float64) float64 {
		evals++
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	fp := eval(p)

	for iter := 0; iter < maxIter; iter++ {
		select {
		case <-cancel:
			return powellResult{X: p, Value: fp, Evals: evals}, ErrAborted
		default:
		}

		pStart := append([]float64(nil), p...)
		fStart := fp

		biggestDecrease := 0.0
		biggestIdx := -1
		fPrev := fp

		for i, dir := range directions {
			aMin, aMax, ok := lineBracket(p, dir, bounds)
			if !ok {
				continue
			}
			g := func(alpha float64) float64 {
				x := make([]float64, n)
				floats.AddScaledTo(x, p, alpha, dir)
				bounds.Clamp(x)
				return eval(x)
			}
			alpha, fNew := brentMinimize(g, aMin, aMax, powellLineTol)
			floats.AddScaled(p, alpha, dir)
			bounds.Clamp(p)

			decrease := fPrev - fNew
			if decrease > biggestDecrease {
				biggestDecrease = decrease
				biggestIdx = i
			}
			fPrev = fNew
		}
		fp = fPrev

		if 2*(fStart-fp) <= powellFuncTol*(math.Abs(fStart)+math.Abs(fp))+powellEps {
			return powellResult{X: p, Value: fp, Evals: evals}, nil
		}

		extrapolated := make([]float64, n)
		for i := range extrapolated {
			extrapolated[i] = 2*p[i] - pStart[i]
		}
		bounds.Clamp(extrapolated)
		fExtrapolated := eval(extrapolated)

		if biggestIdx >= 0 && fExtrapolated < fStart {
			t := 2*(fStart-2*fp+fExtrapolated)*square(fStart-fp-biggestDecrease) - biggestDecrease*square(fStart-fExtrapolated)
			if t < 0 {
				newDir := make([]float64, n)
				floats.SubTo(newDir, p, pStart)
				if floats.Norm(newDir, 2) > powellEps {
					aMin, aMax, ok := lineBracket(p, newDir, bounds)
					if ok {
						g := func(alpha float64) float64 {
							x := make([]float64, n)
							floats.AddScaledTo(x, p, alpha, newDir)
							bounds.Clamp(x)
							return eval(x)
						}
						alpha, fNew := brentMinimize(g, aMin, aMax, powellLineTol)
						floats.AddScaled(p, alpha, newDir)
						bounds.Clamp(p)
						fp = fNew
					}
					directions[biggestIdx] = directions[n-1]
					directions[n-1] = newDir
				}
			}
		}
	}

	return powellResult{X: p, Value: fp, Evals: evals}, nil
}

// lineBracket returns the range of alpha for which p + alpha*dir stays
// inside bounds, or ok=false if dir is the zero vector.
func lineBracket(p, dir []float64, bounds Bounds) (aMin, aMax float64, ok bool) {
	aMin, aMax = math.Inf(-1), math.Inf(1)
	nonZero := false
	for i := range dir {
		if dir[i] == 0 {
			continue
		}
		nonZero = true
		lo := (bounds.Lower[i] - p[i]) / dir[i]
		hi := (bounds.Upper[i] - p[i]) / dir[i]
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > aMin {
			aMin = lo
		}
		if hi < aMax {
			aMax = hi
		}
	}
	if !nonZero || aMin >= aMax {
		return 0, 0, false
	}
	return aMin, aMax, true
}

func square(v float64) float64 { return v * v }
