package pipeline

import (
	"math"

	"modshift/domain/lightcurve"
)

// Fold maps observation times onto phase within one orbital period:
//
//	phase(t) = (t - epoch + offset*period) mod period
//
// The offset rotates the primary transit away from the 0/period wrap seam so
// later windowing around it never straddles the boundary. Output values are
// always in [0, period). Total over finite inputs.
func Fold(time []float64, eph lightcurve.Ephemeris, offsetFrac float64) []float64 {
	phase := make([]float64, len(time))
	for i, t := range time {
		phase[i] = wrapPhase(t-eph.EpochDays+offsetFrac*eph.PeriodDays, eph.PeriodDays)
	}
	return phase
}

// FoldSeries folds a full lightcurve, preserving sample order.
func FoldSeries(ts lightcurve.TimeSeries, eph lightcurve.Ephemeris, offsetFrac float64) lightcurve.FoldedSeries {
	return lightcurve.FoldedSeries{
		Phase: Fold(ts.Time, eph, offsetFrac),
		Flux:  append([]float64(nil), ts.Flux...),
	}
}

// wrapPhase reduces v into [0, period). math.Mod keeps the sign of the
// dividend, so negative arguments need one more period added.
func wrapPhase(v, period float64) float64 {
	p := math.Mod(v, period)
	if p < 0 {
		p += period
	}
	return p
}
