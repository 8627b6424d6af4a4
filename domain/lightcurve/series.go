// Package lightcurve defines the time-series types the vetting pipeline
// consumes: raw lightcurves, trial ephemerides, and their folded and binned
// derivatives.
package lightcurve

import (
	"math"

	"modshift/internal/errors"
)

// TimeSeries is a lightcurve: paired observation times (days) and fluxes
// (fractional amplitude, out-of-transit baseline near zero). Read-only input
// to the pipeline.
type TimeSeries struct {
	Time []float64 `json:"time"`
	Flux []float64 `json:"flux"`
}

// Len returns the number of samples
func (ts TimeSeries) Len() int {
	return len(ts.Time)
}

// Validate checks the series invariants: matching non-zero lengths and
// finite values throughout.
func (ts TimeSeries) Validate() error {
	if len(ts.Time) == 0 {
		return errors.InputValidation("time series is empty")
	}
	if len(ts.Time) != len(ts.Flux) {
		return errors.Newf(errors.CodeInputValidation,
			"time and flux lengths differ: %d vs %d", len(ts.Time), len(ts.Flux))
	}
	if !allFinite(ts.Time) {
		return errors.InputValidation("time contains non-finite values")
	}
	if !allFinite(ts.Flux) {
		return errors.InputValidation("flux contains non-finite values")
	}
	return nil
}

// Ephemeris describes when and how often a transit recurs.
type Ephemeris struct {
	PeriodDays  float64 `json:"period_days"`
	EpochDays   float64 `json:"epoch_days"`
	DurationHrs float64 `json:"duration_hrs"`
}

// DurationDays returns the transit duration in days
func (e Ephemeris) DurationDays() float64 {
	return e.DurationHrs / 24.0
}

// Validate checks the ephemeris invariants: positive finite scalars and a
// transit shorter than the orbit.
func (e Ephemeris) Validate() error {
	if !isFinite(e.PeriodDays) || e.PeriodDays <= 0 {
		return errors.Newf(errors.CodeInputValidation,
			"period must be positive and finite, got %v", e.PeriodDays)
	}
	if !isFinite(e.EpochDays) || e.EpochDays <= 0 {
		return errors.Newf(errors.CodeInputValidation,
			"epoch must be positive and finite, got %v", e.EpochDays)
	}
	if !isFinite(e.DurationHrs) || e.DurationHrs <= 0 {
		return errors.Newf(errors.CodeInputValidation,
			"duration must be positive and finite, got %v", e.DurationHrs)
	}
	if e.DurationDays() >= e.PeriodDays {
		return errors.Newf(errors.CodeInputValidation,
			"duration %.4f d must be shorter than period %.4f d",
			e.DurationDays(), e.PeriodDays)
	}
	return nil
}

// FoldedSeries is a lightcurve mapped onto one orbital cycle. Phase values
// lie in [0, PeriodDays); ordering follows the source TimeSeries, not phase.
type FoldedSeries struct {
	Phase []float64 `json:"phase"`
	Flux  []float64 `json:"flux"`
}

// Len returns the number of samples
func (fs FoldedSeries) Len() int {
	return len(fs.Phase)
}

// BinnedSeries holds the occupied phase bins of a folded series. Phase is
// the bin's left edge on a strictly increasing grid of spacing
// period/numBins; Value is the unweighted mean of the samples that fell in
// the bin; Count is how many did. Empty bins never appear.
type BinnedSeries struct {
	Phase []float64 `json:"phase"`
	Value []float64 `json:"value"`
	Count []int     `json:"count"`
}

// Len returns the number of retained bins
func (bs BinnedSeries) Len() int {
	return len(bs.Phase)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// AllFinite reports whether every value in the slice is finite.
func AllFinite(values []float64) bool {
	return allFinite(values)
}
