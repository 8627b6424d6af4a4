// Package boxcar generates the simplest transit model: a point is either
// fully in or fully out of transit.
package boxcar

import (
	"math"

	"modshift/domain/lightcurve"
	"modshift/internal/errors"
)

// Generator builds box-car transit models from an ephemeris.
type Generator struct{}

// NewGenerator creates a box-car model generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns the expected flux deviation at each time sample: a flat
// dip of depthFrac centered on every transit predicted by the ephemeris,
// zero elsewhere. offsetFrac shifts the transit center by that fraction of
// the period.
func (g *Generator) Generate(time []float64, eph lightcurve.Ephemeris, depthFrac, offsetFrac float64) ([]float64, error) {
	if err := eph.Validate(); err != nil {
		return nil, err
	}
	if depthFrac <= 0 || math.IsNaN(depthFrac) || math.IsInf(depthFrac, 0) {
		return nil, errors.Newf(errors.CodeInvalidInput,
			"model depth must be positive and finite, got %v", depthFrac)
	}

	center := eph.EpochDays + offsetFrac*eph.PeriodDays
	halfDur := eph.DurationDays() / 2.0

	model := make([]float64, len(time))
	for i, t := range time {
		// Signed distance to the nearest transit center, in (-P/2, P/2].
		d := math.Mod(t-center, eph.PeriodDays)
		if d < 0 {
			d += eph.PeriodDays
		}
		if d > eph.PeriodDays/2 {
			d -= eph.PeriodDays
		}
		if math.Abs(d) <= halfDur {
			model[i] = -depthFrac
		}
	}
	return model, nil
}
