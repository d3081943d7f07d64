// Command wwoptimize runs the bounded geometry optimizer against the
// fixture D-whistle, searching for tone-hole positions that minimize cent
// deviation across the fixture's D-major tuning.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/cwbudde/algo-woodwind/geometry"
	"github.com/cwbudde/algo-woodwind/internal/fixture"
	"github.com/cwbudde/algo-woodwind/internal/numutil"
	"github.com/cwbudde/algo-woodwind/objective"
	"github.com/cwbudde/algo-woodwind/optimize"
	"github.com/cwbudde/algo-woodwind/physics"
)

func main() {
	margin := flag.Float64("margin", 0.01, "Keep-out distance from the mouthpiece and termination, in meters")
	startsFlag := flag.String("starts", "auto", `Number of concurrent multi-start restarts, or "auto" for one per CPU`)
	seed := flag.Int64("seed", 1, "Random seed for multi-start jitter")
	maxEvals := flag.Int("max-evals", 0, "DIRECT objective evaluation budget per start, used with -direct (0 = dimension-scaled default)")
	forceDirect := flag.Bool("direct", false, "Force the DIRECT global search instead of Powell-from-incumbent")
	includeBoreLength := flag.Bool("with-bore-length", false, "Also search the bore length alongside hole positions")
	jsonOut := flag.Bool("json", false, "Print the result as JSON")
	flag.Parse()

	starts, err := numutil.ParseWorkers(*startsFlag)
	if err != nil {
		die("invalid -starts: %v", err)
	}
	if starts == 0 {
		starts = runtime.GOMAXPROCS(0)
	}

	base := fixture.DWhistle()
	tuning := fixture.DMajorTuning()
	env := fixture.Environment()

	lengthLower, lengthUpper := base.TerminationPosition()*0.8, base.TerminationPosition()*1.2

	var fn objective.Function = objective.HolePositionFunction{MinSpacing: 0.005}
	if *includeBoreLength {
		fn = objective.NewHoleAndBoreFunction(lengthLower, lengthUpper)
	}

	x0 := fn.Encode(base)
	bounds := holeAndLengthBounds(base, len(base.Holes), *includeBoreLength, *margin, lengthLower, lengthUpper)

	evaluator := objective.CentsDeviationEvaluator{}
	objectiveFunc := func(x []float64) float64 {
		return fn.Evaluate(base, x, tuning, physics.Full{}, env, evaluator)
	}

	opts := optimize.Options{
		Bounds:               bounds,
		ForceDirectOptimizer: *forceDirect,
		MaxEvals:             *maxEvals,
		Starts:               starts,
		Seed:                 *seed,
	}

	started := time.Now()
	result, err := optimize.Run(context.Background(), objectiveFunc, x0, opts)
	if err != nil {
		die("optimization failed: %v", err)
	}
	result.Elapsed = time.Since(started)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			die("json encode failed: %v", err)
		}
		return
	}

	fmt.Printf("objective:      %s\n", fn.Name())
	fmt.Printf("used DIRECT:    %v\n", result.UsedDirect)
	fmt.Printf("initial value:  %.6f\n", result.InitialValue)
	fmt.Printf("final value:    %.6f\n", result.Value)
	fmt.Printf("evaluations:    %d\n", result.Evals)
	fmt.Printf("elapsed:        %s\n", result.Elapsed)
	fmt.Printf("success:        %v\n", result.Success)
	fmt.Println("parameters:")
	for i, v := range result.X {
		fmt.Printf("  [%d] %.6f\n", i, v)
	}
}

// holeAndLengthBounds builds per-parameter bounds matching the layout
// HolePositionFunction (and NewHoleAndBoreFunction, which appends one
// bore-length parameter after the hole positions) produce: every hole
// position is confined to (mouthpiece+margin, termination-margin), and an
// appended bore-length parameter is confined to [lengthLower, lengthUpper].
func holeAndLengthBounds(base geometry.Instrument, holeCount int, withLength bool, margin, lengthLower, lengthUpper float64) optimize.Bounds {
	lower := base.Mouthpiece.Position + margin
	upper := base.TerminationPosition() - margin

	n := holeCount
	if withLength {
		n++
	}
	b := optimize.Bounds{Lower: make([]float64, n), Upper: make([]float64, n)}
	for i := 0; i < holeCount; i++ {
		b.Lower[i] = lower
		b.Upper[i] = upper
	}
	if withLength {
		b.Lower[holeCount] = lengthLower
		b.Upper[holeCount] = lengthUpper
	}
	return b
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
