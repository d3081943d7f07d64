package optimize

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-woodwind/internal/numutil"
	"gonum.org/v1/gonum/floats"
)

// directEpsilon is Jones' global-search slack: a rectangle is only
// potentially optimal if it promises an improvement of at least this
// fraction (or this absolute amount, if the incumbent is ~0) over the
// current best value.
const directEpsilon = 1e-4

// directRect is one hyper-rectangle of the DIRECT search, tracked in the
// normalized unit hypercube. divisions[i] counts how many times dimension
// i has been trisected; the physical side length of dimension i is
// bounds.Width(i) * 3^(-divisions[i]).
type directRect struct {
	center    []float64 // unit-cube coordinates
	divisions []int
	value     float64
}

// size is Jones' rectangle-size metric: half the Euclidean diagonal of the
// rectangle's unit-cube extent.
func (r directRect) size() float64 {
	sum := 0.0
	for _, d := range r.divisions {
		side := math.Pow(3, -float64(d))
		sum += side * side
	}
	return 0.5 * math.Sqrt(sum)
}

// directResult mirrors powellResult for the global-search optimizer.
type directResult struct {
	X     []float64
	Value float64
	Evals int
}

// directMinimize runs a bounded global search over bounds using the DIRECT
// algorithm (Jones, Perttunen & Stuckman): it repeatedly identifies the
// "potentially optimal" rectangles on the lower convex hull of (size,
// value) and trisects each along its longest dimension(s), narrowing in on
// promising regions without gradient information or an initial guess.
func directMinimize(f func([]float64) float64, bounds Bounds, maxEvals int, cancel <-chan struct{}) (directResult, error) {
	n := bounds.Dimension()
	evals := 0
	eval := func(unit []float64) float64 {
		evals++
		x := bounds.FromUnit(unit)
		v := f(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	center := make([]float64, n)
	for i := range center {
		center[i] = 0.5
	}
	root := directRect{center: center, divisions: make([]int, n), value: eval(center)}
	rects := []directRect{root}
	best := root

	for evals < maxEvals {
		select {
		case <-cancel:
			return directResult{X: bounds.FromUnit(best.center), Value: best.value, Evals: evals}, ErrAborted
		default:
		}

		candidates := potentiallyOptimal(rects, best.value)
		if len(candidates) == 0 {
			break
		}

		var next []directRect
		divided := make(map[int]bool, len(candidates))
		for _, idx := range candidates {
			if divided[idx] || evals >= maxEvals {
				continue
			}
			divided[idx] = true
			children, remaining := divideRect(rects[idx], eval)
			next = append(next, children...)
			rects[idx] = remaining
		}
		rects = append(rects, next...)

		for _, r := range rects {
			if r.value < best.value {
				best = r
			}
		}
	}

	return directResult{X: bounds.FromUnit(best.center), Value: best.value, Evals: evals}, nil
}

// potentiallyOptimal returns the indices of rects lying on the lower
// convex hull of (size, value), restricted to points that promise at
// least directEpsilon improvement over bestValue, per Jones' selection
// rule.
func potentiallyOptimal(rects []directRect, bestValue float64) []int {
	type point struct {
		idx        int
		size, value float64
	}

	bySize := map[float64]point{}
	for i, r := range rects {
		s := r.size()
		if cur, ok := bySize[s]; !ok || r.value < cur.value {
			bySize[s] = point{idx: i, size: s, value: r.value}
		}
	}

	points := make([]point, 0, len(bySize))
	for _, p := range bySize {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].size != points[j].size {
			return points[i].size < points[j].size
		}
		return points[i].idx < points[j].idx
	})

	// The hull runs from the lowest-valued point (the largest one on ties)
	// out to the largest size; smaller rectangles cannot lie on it.
	start := 0
	for i, p := range points {
		if p.value <= points[start].value {
			start = i
		}
	}
	points = points[start:]

	hull := make([]point, 0, len(points))
	for _, p := range points {
		for len(hull) >= 2 {
			a, b := hull[len(hull)-2], hull[len(hull)-1]
			cross := (b.size-a.size)*(p.value-a.value) - (p.size-a.size)*(b.value-a.value)
			if cross > 0 {
				break
			}
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	threshold := bestValue - directEpsilon*math.Abs(bestValue)
	if bestValue == 0 {
		threshold = -directEpsilon
	}

	// Each hull point but the last is kept only if the line to its right
	// neighbour (slope K) extrapolates to at most threshold at size 0.
	var out []int
	for i, p := range hull {
		last := i == len(hull)-1
		if last || math.IsInf(bestValue, 1) ||
			p.value-(hull[i+1].value-p.value)/(hull[i+1].size-p.size)*p.size <= threshold {
			out = append(out, p.idx)
		}
	}
	if len(out) == 0 && len(hull) > 0 {
		out = append(out, hull[0].idx)
	}
	return out
}

// divideRect trisects r along each of its longest dimensions, in order of
// increasing best-of-two-sibling function value (Jones' ordering), and
// returns the new child rectangles plus the shrunken remainder of r.
func divideRect(r directRect, eval func([]float64) float64) (children []directRect, remainder directRect) {
	minDiv := r.divisions[0]
	for _, d := range r.divisions {
		minDiv = numutil.MinInt(minDiv, d)
	}
	var longDims []int
	for i, d := range r.divisions {
		if d == minDiv {
			longDims = append(longDims, i)
		}
	}

	type trial struct {
		dim        int
		bestValue  float64
		plusCenter, minusCenter []float64
		plusValue, minusValue   float64
	}

	trials := make([]trial, 0, len(longDims))
	delta := math.Pow(3, -float64(minDiv)-1)
	for _, dim := range longDims {
		plus := append([]float64(nil), r.center...)
		minus := append([]float64(nil), r.center...)
		plus[dim] += delta
		minus[dim] -= delta
		fPlus := eval(plus)
		fMinus := eval(minus)
		trials = append(trials, trial{
			dim: dim, bestValue: math.Min(fPlus, fMinus),
			plusCenter: plus, minusCenter: minus,
			plusValue: fPlus, minusValue: fMinus,
		})
	}
	sort.SliceStable(trials, func(i, j int) bool { return trials[i].bestValue < trials[j].bestValue })

	remainder = directRect{center: append([]float64(nil), r.center...), divisions: append([]int(nil), r.divisions...), value: r.value}
	for _, t := range trials {
		remainder.divisions[t.dim]++
		plusDiv := append([]int(nil), remainder.divisions...)
		minusDiv := append([]int(nil), remainder.divisions...)
		children = append(children,
			directRect{center: t.plusCenter, divisions: plusDiv, value: t.plusValue},
			directRect{center: t.minusCenter, divisions: minusDiv, value: t.minusValue},
		)
	}
	return children, remainder
}

// centerDistance reports the Euclidean distance between two rectangle
// centers in the unit hypercube. Nothing in this package calls it.
func centerDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
