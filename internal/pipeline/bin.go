package pipeline

import (
	"gonum.org/v1/gonum/floats"

	"modshift/domain/lightcurve"
	"modshift/internal/errors"
)

// NumBins derives the phase-bin count from the ephemeris and the
// bins-per-transit resolution:
//
//	numBins = floor(overRes * period_days * 24 / duration_hrs)
//
// A count below two means the transit is too long relative to the period for
// binning to resolve anything, which is a configuration error.
func NumBins(eph lightcurve.Ephemeris, overRes int) (int, error) {
	n := int(float64(overRes) * eph.PeriodDays * 24.0 / eph.DurationHrs)
	if n < 2 {
		return 0, errors.Newf(errors.CodeConfiguration,
			"bin count %d < 2: duration %.2f h too large for period %.4f d",
			n, eph.DurationHrs, eph.PeriodDays)
	}
	return n, nil
}

// BinSeries partitions [0, period) into numBins equal-width bins and emits,
// for each occupied bin, its left-edge phase, the unweighted mean of the
// values whose phase fell in the bin's half-open interval, and the sample
// count. Empty bins are dropped rather than filled, so the output length is
// data-dependent.
func BinSeries(phase, values []float64, periodDays float64, numBins int) (lightcurve.BinnedSeries, error) {
	var out lightcurve.BinnedSeries
	if len(phase) != len(values) {
		return out, errors.Newf(errors.CodeInputValidation,
			"phase and value lengths differ: %d vs %d", len(phase), len(values))
	}
	if numBins < 2 {
		return out, errors.Newf(errors.CodeConfiguration, "bin count %d < 2", numBins)
	}

	edges := make([]float64, numBins+1)
	floats.Span(edges, 0, periodDays)

	width := periodDays / float64(numBins)
	sums := make([]float64, numBins)
	counts := make([]int, numBins)
	for i, p := range phase {
		idx := int(p / width)
		if idx >= numBins {
			// phase < period, but the division can round up at the seam
			idx = numBins - 1
		}
		sums[idx] += values[i]
		counts[idx]++
	}

	for i := 0; i < numBins; i++ {
		if counts[i] == 0 {
			continue
		}
		out.Phase = append(out.Phase, edges[i])
		out.Value = append(out.Value, sums[i]/float64(counts[i]))
		out.Count = append(out.Count, counts[i])
	}
	if out.Len() == 0 {
		return out, errors.EmptyBin("binning retained no occupied bins")
	}
	return out, nil
}
