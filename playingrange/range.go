// Package playingrange predicts the frequency at which a fingering
// actually sounds, per spec.md 5: the nearest zero crossing of the
// reactance Im(Z) to a seed frequency, subject to Re(Z) > 0 (a genuine
// resonance, not an anti-resonance).
package playingrange

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-woodwind/complexmath"
)

// ErrNoPlayingRange is the sentinel wrapped by SeedError; check for it
// with errors.Is.
var ErrNoPlayingRange = errors.New("playingrange: no playing frequency found near seed")

// SeedError reports that no playing frequency could be bracketed within
// the search window around Seed.
type SeedError struct {
	Seed float64
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("playingrange: no playing range found near seed %.4f Hz", e.Seed)
}

// Unwrap lets errors.Is(err, ErrNoPlayingRange) succeed against a SeedError.
func (e *SeedError) Unwrap() error { return ErrNoPlayingRange }

// ImpedanceFunc evaluates an instrument's acoustic impedance at a
// frequency; instrument.Calculator.CalcZ bound to a fixed fingering
// satisfies this signature.
type ImpedanceFunc func(frequency float64) (complexmath.Complex, error)

// maxExpansions bounds the exponential bracket search to roughly 8
// octaves in each direction before giving up, per spec.md 5.
const maxExpansions = 64

// expansionFactor is the per-step multiplicative growth of the bracket
// search; 64 steps of 1.0905 span just under 2^8.
const expansionFactor = 1.0905

// brentTolerance is the absolute frequency tolerance (Hz) Brent's method
// refines the root to.
const brentTolerance = 1e-4

// FindPlayingFrequency returns the frequency nearest seed at which z's
// reactance crosses zero with positive resistance, per spec.md 5.
func FindPlayingFrequency(z ImpedanceFunc, seed float64) (float64, error) {
	root, err := findRoot(func(f float64) (float64, error) {
		val, err := z(f)
		if err != nil {
			return 0, err
		}
		return val.Im(), nil
	}, seed)
	if err != nil {
		return 0, err
	}

	val, err := z(root)
	if err != nil {
		return 0, err
	}
	if val.Re() <= 0 {
		return 0, &SeedError{Seed: seed}
	}
	return root, nil
}

// findRoot is the shared bracket-then-refine search used by
// FindPlayingFrequency, FindX, and FindZRatio: it does not itself impose
// the Re(Z) > 0 playing-frequency constraint.
func findRoot(f scalarFunc, seed float64) (float64, error) {
	lo, hi, err := bracketReactanceRoot(f, seed)
	if err != nil {
		return 0, err
	}
	root, err := brentRoot(f, lo, hi, brentTolerance, 100)
	if err != nil {
		return 0, &SeedError{Seed: seed}
	}
	return root, nil
}

// bracketReactanceRoot searches outward from seed, alternating upward and
// downward multiplicative steps, until the reactance changes sign between
// two consecutive samples.
func bracketReactanceRoot(reactance scalarFunc, seed float64) (float64, float64, error) {
	prevUp, prevDown := seed, seed
	valUp, err := reactance(prevUp)
	if err != nil {
		return 0, 0, err
	}
	valDown := valUp

	for i := 0; i < maxExpansions; i++ {
		nextUp := prevUp * expansionFactor
		vu, err := reactance(nextUp)
		if err != nil {
			return 0, 0, err
		}
		if !sameSign(valUp, vu) {
			return prevUp, nextUp, nil
		}
		prevUp, valUp = nextUp, vu

		nextDown := prevDown / expansionFactor
		if nextDown <= 0 {
			continue
		}
		vd, err := reactance(nextDown)
		if err != nil {
			return 0, 0, err
		}
		if !sameSign(valDown, vd) {
			return nextDown, prevDown, nil
		}
		prevDown, valDown = nextDown, vd
	}
	return 0, 0, &SeedError{Seed: seed}
}

func sameSign(a, b float64) bool {
	if a == 0 || b == 0 {
		return false
	}
	return math.Signbit(a) == math.Signbit(b)
}
