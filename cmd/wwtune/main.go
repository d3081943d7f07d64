// Command wwtune predicts the playing frequency of every fingering in the
// fixture D-whistle tuning and reports each one's deviation from its
// target note, in cents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-woodwind/instrument"
	"github.com/cwbudde/algo-woodwind/internal/fixture"
	"github.com/cwbudde/algo-woodwind/physics"
	"github.com/cwbudde/algo-woodwind/tuner"
)

func main() {
	temperature := flag.Float64("temperature", 20, "Air temperature in degrees Celsius")
	humidity := flag.Float64("humidity", 50, "Relative humidity percentage")
	seed := flag.Float64("seed", tuner.DefaultSeedFrequency, "Seed frequency for fingerings with no target note")
	simplePhysics := flag.Bool("simple-physics", false, "Use the simplified air-properties model instead of the full one")
	jsonOut := flag.Bool("json", false, "Print predictions as JSON")
	flag.Parse()

	env := fixture.Environment()
	env.Temperature = *temperature
	env.Humidity = *humidity

	var physicsCalc physics.Calculator = physics.Full{}
	if *simplePhysics {
		physicsCalc = physics.Simple{}
	}

	calc, err := instrument.NewCalculator(fixture.DWhistle(), physicsCalc, env)
	if err != nil {
		die("failed to build calculator: %v", err)
	}

	tuning := fixture.DMajorTuning()
	predictions := tuner.PredictTuning(calc, tuning, *seed)
	stats := tuner.ComputeStatistics(predictions)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Predictions []tuner.PredictedNote
			Statistics  tuner.Statistics
		}{predictions, stats}); err != nil {
			die("json encode failed: %v", err)
		}
		return
	}

	fmt.Printf("%-6s %-10s %12s %10s\n", "Note", "Target Hz", "Predicted Hz", "Cents")
	fmt.Println("──────────────────────────────────────────")
	for i, p := range predictions {
		name := "?"
		target := 0.0
		if f := tuning.Fingerings[i].Note; f != nil {
			name = f.Name
			target = f.Frequency
		}
		if p.Err != nil {
			fmt.Printf("%-6s %-10.2f %12s %10s  (%v)\n", name, target, "-", "-", p.Err)
			continue
		}
		fmt.Printf("%-6s %-10.2f %12.2f %10.1f\n", name, target, p.Frequency, p.CentsDeviation)
	}
	fmt.Println("──────────────────────────────────────────")
	fmt.Printf("count=%d failed=%d mean=%.1fc stddev=%.1fc rms=%.1fc max=%.1fc\n",
		stats.Count, stats.Failed, stats.MeanCents, stats.StdDevCents, stats.RMSCents, stats.MaxAbsCents)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
