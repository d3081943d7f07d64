// Package physics computes the air properties a woodwind acoustic model
// needs: speed of sound, density, and the viscous/thermal boundary-layer
// loss constant, as a function of temperature, humidity, pressure, and CO2
// content.
//
// Two Calculator implementations are provided, matching spec.md's
// Physics/4.1: Full (general-purpose, humidity- and CO2-aware) and Simple
// (a NAF-oriented, temperature-only linearization with fixed 45% humidity).
package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a Parameters value falls outside the
// range this package can model (e.g. sub-absolute-zero temperature or
// non-positive pressure).
var ErrInvalidInput = errors.New("physics: invalid physical input")

// AbsoluteZeroCelsius is the lowest physically valid temperature.
const AbsoluteZeroCelsius = -273.15

// Parameters describes the ambient air a calculator computes Properties
// for. Temperature is in degrees Celsius, Pressure in kPa, Humidity as a
// percentage in [0, 100], CO2Fraction as a mole fraction in [0, 1].
type Parameters struct {
	Temperature float64
	Pressure    float64
	Humidity    float64
	CO2Fraction float64
}

// Properties is the derived set of air properties a bore-segment or
// mouthpiece calculator needs.
type Properties struct {
	SpeedOfSound        float64 // c, m/s
	Density             float64 // rho, kg/m^3
	DynamicViscosity    float64 // mu, Pa*s
	ThermalConductivity float64 // kappa, W/(m*K)
	Gamma               float64 // ratio of specific heats, dimensionless
	SqrtPrandtl         float64 // sqrt(Pr), dimensionless
	AlphaConstant       float64 // alpha0, boundary-layer loss constant
}

// Calculator derives Properties from Parameters.
type Calculator interface {
	Properties(p Parameters) (Properties, error)
}

func validate(p Parameters) error {
	if p.Temperature < AbsoluteZeroCelsius {
		return fmt.Errorf("%w: temperature %.2f C below absolute zero", ErrInvalidInput, p.Temperature)
	}
	if p.Pressure <= 0 {
		return fmt.Errorf("%w: pressure %.4f kPa must be > 0", ErrInvalidInput, p.Pressure)
	}
	if p.Humidity < 0 || p.Humidity > 100 {
		return fmt.Errorf("%w: humidity %.2f%% out of [0,100]", ErrInvalidInput, p.Humidity)
	}
	if p.CO2Fraction < 0 || p.CO2Fraction > 1 {
		return fmt.Errorf("%w: CO2 fraction %.4f out of [0,1]", ErrInvalidInput, p.CO2Fraction)
	}
	return nil
}

// WaveNumber returns k(f) = 2*pi*f/c.
func WaveNumber(frequency, speedOfSound float64) float64 {
	return 2 * math.Pi * frequency / speedOfSound
}

// CharacteristicImpedance returns Z0 = rho*c/(pi*r^2) for a cylindrical
// bore of radius r.
func CharacteristicImpedance(props Properties, radius float64) float64 {
	return props.Density * props.SpeedOfSound / (math.Pi * radius * radius)
}

// ComplexWaveNumber returns the lossy complex wave number
// k* = j*k + (1+j)*alpha, alpha = alpha0*sqrt(k)/r, per spec.md 4.1.
func ComplexWaveNumber(props Properties, frequency, radius float64) complex128 {
	k := WaveNumber(frequency, props.SpeedOfSound)
	alpha := props.AlphaConstant * math.Sqrt(k) / radius
	return complex(0, k) + complex(alpha, alpha)
}

// Full implements the general-purpose air-property model: CIPM-2007-style
// compressibility/enhancement for density and a Sutherland-law viscosity
// with a Tsilingiris-style thermal-conductivity correction.
type Full struct{}

// Properties computes the full (humidity- and CO2-aware) air properties.
func (Full) Properties(p Parameters) (Properties, error) {
	if err := validate(p); err != nil {
		return Properties{}, err
	}

	tKelvin := p.Temperature + 273.15
	pressurePa := p.Pressure * 1000.0
	relHumidity := p.Humidity / 100.0

	// Saturation vapor pressure (simplified CIPM-2007 form) and resulting
	// mole fraction of water vapor in the mixture.
	satPressure := 1000.0 * math.Exp(1.2378847e-5*tKelvin*tKelvin-1.9121316e-2*tKelvin+33.93711047-6.3431645e3/tKelvin)
	enhancement := 1.00062 + 3.14e-8*pressurePa + 5.6e-7*p.Temperature*p.Temperature
	xv := enhancement * relHumidity * satPressure / pressurePa
	if xv < 0 {
		xv = 0
	}
	if xv > 1 {
		xv = 1
	}
	xc := p.CO2Fraction

	// Molar mass of the moist, CO2-adjusted mixture (kg/mol).
	const mDryAir = 0.0289635
	const mWater = 0.018015
	const mCO2 = 0.04401
	xDry := 1 - xv
	molarMass := xDry*((1-xc)*mDryAir+xc*mCO2) + xv*mWater

	// Compressibility factor, CIPM-2007-style correction (close to 1 at
	// atmospheric pressure, included for the pack's texture rather than
	// third-decimal accuracy).
	compressibility := 1 - (pressurePa/tKelvin)*(1.58123e-6-2.9331e-8*p.Temperature+
		1.1043e-10*p.Temperature*p.Temperature) + (pressurePa/tKelvin)*(pressurePa/tKelvin)*5.707e-9

	const gasConstant = 8.314462618
	density := pressurePa * molarMass / (compressibility * gasConstant * tKelvin)

	// Gamma decreases very slightly with humidity (water vapor has fewer
	// active vibrational modes than dry air near room temperature).
	gamma := 1.4 - 0.017*xv

	// Sutherland's law for dynamic viscosity of dry air, nudged by the
	// vapor mole fraction (water vapor is less viscous than dry air).
	const mu0 = 1.716e-5
	const t0 = 273.15
	const sutherlandC = 110.4
	muDryAir := mu0 * math.Pow(tKelvin/t0, 1.5) * (t0 + sutherlandC) / (tKelvin + sutherlandC)
	viscosity := muDryAir * (1 - 0.07*xv)

	// Tsilingiris-style thermal conductivity correction: mostly linear in
	// temperature, slightly reduced by water vapor content.
	kappaDryAir := 0.02624 * math.Pow(tKelvin/t0, 0.8646)
	thermalConductivity := kappaDryAir * (1 - 0.05*xv)

	const cp = 1006.0 // J/(kg*K), approximate for moist air near room temp
	prandtl := viscosity * cp / thermalConductivity
	sqrtPr := math.Sqrt(prandtl)

	c := math.Sqrt(gamma * gasConstant * tKelvin / molarMass)
	alpha0 := math.Sqrt(viscosity/(2*density*c)) * (1 + (gamma-1)/sqrtPr)

	return Properties{
		SpeedOfSound:        c,
		Density:             density,
		DynamicViscosity:    viscosity,
		ThermalConductivity: thermalConductivity,
		Gamma:               gamma,
		SqrtPrandtl:         sqrtPr,
		AlphaConstant:       alpha0,
	}, nil
}

// Simple implements the NAF-specific linearization: a Yang-Yili speed-of-
// sound formula depending on temperature only, with humidity fixed at 45%.
type Simple struct{}

// FixedHumidityPercent is the humidity Simple always assumes.
const FixedHumidityPercent = 45.0

// Properties computes the simplified (temperature-only) air properties.
func (Simple) Properties(p Parameters) (Properties, error) {
	fixed := p
	fixed.Humidity = FixedHumidityPercent
	if err := validate(fixed); err != nil {
		return Properties{}, err
	}

	t := fixed.Temperature
	// Yang-Yili linearization of the speed of sound in air near room
	// temperature.
	c := 331.45 + 0.607*t - 0.0005*t*t

	tKelvin := t + 273.15
	const gasConstant = 8.314462618
	const molarMassDryAir = 0.0289635
	pressurePa := fixed.Pressure * 1000.0
	density := pressurePa * molarMassDryAir / (gasConstant * tKelvin)

	gamma := 1.4
	const mu0 = 1.716e-5
	const t0 = 273.15
	const sutherlandC = 110.4
	viscosity := mu0 * math.Pow(tKelvin/t0, 1.5) * (t0 + sutherlandC) / (tKelvin + sutherlandC)
	kappaDryAir := 0.02624 * math.Pow(tKelvin/t0, 0.8646)
	const cp = 1006.0
	prandtl := viscosity * cp / kappaDryAir
	sqrtPr := math.Sqrt(prandtl)

	alpha0 := math.Sqrt(viscosity/(2*density*c)) * (1 + (gamma-1)/sqrtPr)

	return Properties{
		SpeedOfSound:        c,
		Density:             density,
		DynamicViscosity:    viscosity,
		ThermalConductivity: kappaDryAir,
		Gamma:               gamma,
		SqrtPrandtl:         sqrtPr,
		AlphaConstant:       alpha0,
	}, nil
}
