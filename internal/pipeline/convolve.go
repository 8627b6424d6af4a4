package pipeline

import (
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// CircularConvolve slides the binned model against the binned flux with
// periodic wrap-around, producing one match statistic per retained bin:
//
//	stat[i] = -sum_m model[m] * flux[(i-m) mod N]
//
// The model is negated so that a matching dip drives the statistic negative;
// deeper is more significant. The output phase is relabeled by
//
//	(phase - offset*period) mod period
//
// which undoes the fold offset and re-expresses the statistic in the same
// phase convention the fold produced. Downstream event locations depend on
// this exact relabeling.
//
// Kernels here run about ten bins per transit duration, far below the size
// where FFT-based convolution pays for itself, so the direct form is used.
func CircularConvolve(binned, model lightcurve.BinnedSeries, periodDays, offsetFrac float64) (vetting.ConvolutionSeries, error) {
	var out vetting.ConvolutionSeries
	n := binned.Len()
	if n == 0 {
		return out, errors.InputValidation("convolution input is empty")
	}
	if model.Len() != n {
		return out, errors.Newf(errors.CodeInputValidation,
			"binned flux and model lengths differ: %d vs %d", n, model.Len())
	}
	if !lightcurve.AllFinite(binned.Value) {
		return out, errors.InputValidation("binned flux contains non-finite values")
	}
	if !lightcurve.AllFinite(model.Value) {
		return out, errors.InputValidation("binned model contains non-finite values")
	}

	out.Phase = make([]float64, n)
	out.Stat = make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for m := 0; m < n; m++ {
			j := i - m
			if j < 0 {
				j += n
			}
			sum += model.Value[m] * binned.Value[j]
		}
		out.Stat[i] = -sum
		out.Phase[i] = wrapPhase(binned.Phase[i]-offsetFrac*periodDays, periodDays)
	}
	return out, nil
}
