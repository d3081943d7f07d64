// Package optimize implements spec.md 4.11's bounded geometry optimizer: a
// DIRECT global search and a Powell-with-Brent-line-search local refiner,
// orchestrated with multi-start restarts across goroutines.
package optimize

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-woodwind/internal/numutil"
	"golang.org/x/sync/errgroup"
)

// ErrAborted is returned when an optimization run is cancelled before
// converging, via Options.Cancel or a context cancellation.
var ErrAborted = errors.New("optimize: aborted before convergence")

// ObjectiveFunc scores a parameter vector; it must already fold arithmetic
// failure into +Inf (as objective.Function.Evaluate does) rather than
// returning NaN or an error.
type ObjectiveFunc func(x []float64) float64

// Options configures one optimization run.
type Options struct {
	Bounds Bounds

	// ForceDirectOptimizer runs DIRECT's global search over the whole box
	// in place of Powell's search from the initial guess. DIRECT's result
	// is returned as is; no Powell polish follows it. Useful when the
	// initial guess is unreliable or absent.
	ForceDirectOptimizer bool

	// MaxEvals bounds the number of DIRECT objective evaluations per start.
	// Zero selects a dimension-scaled default. Powell runs do not use it;
	// MaxIterations bounds them.
	MaxEvals int

	// MaxIterations bounds Powell's outer iteration count. Zero selects a
	// dimension-scaled default.
	MaxIterations int

	// Starts is the number of multi-start restarts to run concurrently.
	// Start 0 begins at the initial guess; every later start i begins at a
	// point drawn uniformly within bounds from a generator seeded with
	// Seed+7919*i. Starts<=1 runs a single deterministic pass from the
	// initial guess.
	Starts int
	Seed   int64

	// Cancel, if non-nil, aborts every in-flight start as soon as it is
	// closed.
	Cancel <-chan struct{}

	// ProgressFunc, if non-nil, is called after each start completes with
	// that start's index and resulting value.
	ProgressFunc func(start int, value float64)
}

// Result reports the outcome of an optimization run.
type Result struct {
	X            []float64
	Value        float64
	InitialValue float64
	Evals        int
	Success      bool
	Elapsed      time.Duration
	UsedDirect   bool
}

func (o Options) maxEvals() int {
	if o.MaxEvals > 0 {
		return o.MaxEvals
	}
	n := o.Bounds.Dimension()
	return 200 * (n + 1)
}

func (o Options) maxIterations() int {
	if o.MaxIterations > 0 {
		return o.MaxIterations
	}
	return 50 * (o.Bounds.Dimension() + 1)
}

func (o Options) starts() int {
	return numutil.MaxInt(1, o.Starts)
}

// Run optimizes objective starting from x0 (ignored when
// ForceDirectOptimizer is set, since DIRECT needs no initial guess),
// confined to opts.Bounds. With opts.Starts > 1, one goroutine per start
// runs independently via errgroup.Group, each with its own working copy of
// x0; the best-scoring start's result wins.
func Run(ctx context.Context, objective ObjectiveFunc, x0 []float64, opts Options) (Result, error) {
	if err := opts.Bounds.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()

	safeObjective := func(x []float64) float64 {
		v := objective(x)
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}

	initial := append([]float64(nil), x0...)
	if len(initial) == 0 {
		initial = opts.Bounds.Center()
	}
	opts.Bounds.Clamp(initial)
	initialValue := safeObjective(initial)

	n := opts.starts()
	results := make([]Result, n)
	runErrs := make([]error, n)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			cancel := mergeCancel(groupCtx.Done(), opts.Cancel)
			x := jitteredStart(initial, opts.Bounds, opts.Seed, i)
			res, err := runSingleStart(safeObjective, x, opts, cancel)
			results[i] = res
			runErrs[i] = err
			if opts.ProgressFunc != nil {
				opts.ProgressFunc(i, res.Value)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	bestIdx := 0
	for i := 1; i < n; i++ {
		if results[i].Value < results[bestIdx].Value {
			bestIdx = i
		}
	}
	best := results[bestIdx]
	best.InitialValue = initialValue
	best.Elapsed = time.Since(start)
	best.Success = runErrs[bestIdx] == nil && !math.IsInf(best.Value, 1)

	if runErrs[bestIdx] != nil {
		return best, runErrs[bestIdx]
	}
	return best, nil
}

// mergeCancel returns a channel that closes as soon as either a or b does;
// either may be nil.
func mergeCancel(a, b <-chan struct{}) <-chan struct{} {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	select {
	case <-a:
		return a
	case <-b:
		return b
	default:
	}
	merged := make(chan struct{})
	go func() {
		select {
		case <-a:
		case <-b:
		}
		close(merged)
	}()
	return merged
}

func runSingleStart(objective ObjectiveFunc, x0 []float64, opts Options, cancel <-chan struct{}) (Result, error) {
	if opts.ForceDirectOptimizer {
		res, err := directMinimize(objective, opts.Bounds, opts.maxEvals(), cancel)
		return Result{X: res.X, Value: res.Value, Evals: res.Evals, UsedDirect: true}, err
	}

	res, err := powellMinimize(objective, x0, opts.Bounds, opts.maxIterations(), cancel)
	return Result{X: res.X, Value: res.Value, Evals: res.Evals}, err
}

// jitteredStart returns x0 unperturbed for the first start, and a seeded
// uniform random point within bounds for every subsequent one, so
// multi-start restarts explore distinct basins deterministically for a
// fixed seed.
func jitteredStart(x0 []float64, bounds Bounds, seed int64, start int) []float64 {
	x := append([]float64(nil), x0...)
	if start == 0 {
		return x
	}
	rng := rand.New(rand.NewSource(seed + int64(start)*7919))
	for i := range x {
		x[i] = bounds.Lower[i] + rng.Float64()*bounds.Width(i)
	}
	return x
}
