// Package footprint estimates the CO2 footprint of reported household activity.
package footprint

import "math"

// Band is a coarse classification of a total footprint.
type Band string

const (
	BandLow      Band = "LOW"
	BandModerate Band = "MODERATE"
	BandHigh     Band = "HIGH"
)

// DefaultComparisonBaselineKg is the total that fills the comparison bar.
const DefaultComparisonBaselineKg = 700.0

// Factors holds kg of CO2 emitted per unit of each activity.
type Factors struct {
	Electricity float64 // per kWh
	CarTravel   float64 // per km
	MeatMeals   float64 // per meal
	Flights     float64 // per flight hour
}

// DefaultFactors returns the illustrative emission factors the dashboard ships with.
func DefaultFactors() Factors {
	return Factors{
		Electricity: 0.5,
		CarTravel:   0.2,
		MeatMeals:   3.0,
		Flights:     0.25,
	}
}

// Thresholds are the lower bounds (kg) of the MODERATE and HIGH bands.
type Thresholds struct {
	Moderate float64
	High     float64
}

// DefaultThresholds returns the 200/500 kg band boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Moderate: 200, High: 500}
}

// UsageInput is a single calculation request.
type UsageInput struct {
	ElectricityKwh float64
	CarTravelKm    float64
	MeatMeals      float64
	FlightHours    float64
}

// Normalize returns a copy where every negative, NaN or infinite quantity is 0.
func (u UsageInput) Normalize() UsageInput {
	return UsageInput{
		ElectricityKwh: Sanitize(u.ElectricityKwh),
		CarTravelKm:    Sanitize(u.CarTravelKm),
		MeatMeals:      Sanitize(u.MeatMeals),
		FlightHours:    Sanitize(u.FlightHours),
	}
}

// Result is the per-category and total footprint in kg of CO2.
type Result struct {
	Electricity float64
	Transport   float64
	Diet        float64
	Flights     float64
	Total       float64
	Band        Band
}

type Estimator struct {
	factors    Factors
	thresholds Thresholds
	baseline   float64
}

// Option customizes an Estimator.
type Option func(*Estimator)

// WithFactors overrides the emission factors. A factor that is not a
// positive finite number keeps its current value.
func WithFactors(f Factors) Option {
	return func(e *Estimator) {
		override := func(dst *float64, v float64) {
			if ValidFactor(v) {
				*dst = v
			}
		}
		override(&e.factors.Electricity, f.Electricity)
		override(&e.factors.CarTravel, f.CarTravel)
		override(&e.factors.MeatMeals, f.MeatMeals)
		override(&e.factors.Flights, f.Flights)
	}
}

// ValidFactor reports whether v can serve as an emission factor.
func ValidFactor(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// WithThresholds overrides the rating band boundaries.
func WithThresholds(t Thresholds) Option {
	return func(e *Estimator) {
		e.thresholds = t
	}
}

// WithComparisonBaseline overrides the total that maps to a full comparison bar.
// Non-positive values are ignored.
func WithComparisonBaseline(kg float64) Option {
	return func(e *Estimator) {
		if kg > 0 {
			e.baseline = kg
		}
	}
}

// New returns an Estimator using the default factors, thresholds and baseline
// unless overridden by opts.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		factors:    DefaultFactors(),
		thresholds: DefaultThresholds(),
		baseline:   DefaultComparisonBaselineKg,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Factors returns the emission factors in use.
func (e *Estimator) Factors() Factors {
	return e.factors
}

// Estimate computes the footprint of in. It never fails: unusable quantities
// contribute nothing.
func (e *Estimator) Estimate(in UsageInput) Result {
	in = in.Normalize()

	r := Result{
		Electricity: capKg(in.ElectricityKwh * e.factors.Electricity),
		Transport:   capKg(in.CarTravelKm * e.factors.CarTravel),
		Diet:        capKg(in.MeatMeals * e.factors.MeatMeals),
		Flights:     capKg(in.FlightHours * e.factors.Flights),
	}
	r.Total = capKg(r.Electricity + r.Transport + r.Diet + r.Flights)
	r.Band = e.Classify(r.Total)
	return r
}

// Classify maps a total to its rating band.
func (e *Estimator) Classify(total float64) Band {
	switch {
	case total < e.thresholds.Moderate:
		return BandLow
	case total < e.thresholds.High:
		return BandModerate
	default:
		return BandHigh
	}
}

// ComparisonPercent is the width of the comparison bar for total, in [0, 100].
// NaN and negative totals give 0.
func (e *Estimator) ComparisonPercent(total float64) float64 {
	if math.IsNaN(total) || total <= 0 {
		return 0
	}
	return min(total/e.baseline*100, 100)
}

// capKg keeps an overflowing amount at the largest finite float.
func capKg(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

var defaultEstimator = New()

// Estimate computes a footprint with the default configuration.
func Estimate(in UsageInput) Result {
	return defaultEstimator.Estimate(in)
}
