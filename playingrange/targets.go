package playingrange

import "github.com/cwbudde/algo-woodwind/physics"

// FindX locates the frequency nearest seed at which the reactance Im(Z)
// equals the target value x, generalizing FindPlayingFrequency's x=0
// search, for tuning against a nonzero target reactance (e.g. matching a
// known reference instrument's phase). No objective function calls it.
func FindX(z ImpedanceFunc, seed, x float64) (float64, error) {
	return findRoot(func(frequency float64) (float64, error) {
		val, err := z(frequency)
		if err != nil {
			return 0, err
		}
		return val.Im() - x, nil
	}, seed)
}

// FindZRatio locates the frequency nearest seed at which |Z| / Z0 equals
// the target ratio, where Z0 is the characteristic impedance at the
// given bore radius under props. Useful for locating impedance peaks or
// troughs relative to the bore's natural scale rather than an absolute
// reactance crossing.
func FindZRatio(z ImpedanceFunc, props physics.Properties, boreRadius, seed, targetRatio float64) (float64, error) {
	z0 := physics.CharacteristicImpedance(props, boreRadius)
	return findRoot(func(frequency float64) (float64, error) {
		val, err := z(frequency)
		if err != nil {
			return 0, err
		}
		return val.Abs()/z0 - targetRatio, nil
	}, seed)
}
