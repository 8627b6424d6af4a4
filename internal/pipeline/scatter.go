package pipeline

import (
	"github.com/montanaflynn/stats"

	"modshift/domain/lightcurve"
	"modshift/internal/errors"
)

// EstimateScatter measures the residual noise of the unbinned folded
// lightcurve away from the two located dips: every sample whose phase lies
// within halfWidthDays of pri or sec is excluded, and the population
// standard deviation of the rest is returned.
//
// A scatter that is not strictly positive is unusable as a significance
// denominator, so zero-variance survivors and empty survivor sets are both
// surfaced as degenerate-scatter errors rather than defaulted.
func EstimateScatter(folded lightcurve.FoldedSeries, priPhase, secPhase, halfWidthDays float64) (float64, error) {
	if folded.Len() == 0 {
		return 0, errors.InputValidation("folded series is empty")
	}
	if len(folded.Phase) != len(folded.Flux) {
		return 0, errors.Newf(errors.CodeInputValidation,
			"phase and flux lengths differ: %d vs %d", len(folded.Phase), len(folded.Flux))
	}

	kept := make([]float64, 0, folded.Len())
	for i, p := range folded.Phase {
		nearPri := priPhase-halfWidthDays < p && p < priPhase+halfWidthDays
		nearSec := secPhase-halfWidthDays < p && p < secPhase+halfWidthDays
		if nearPri || nearSec {
			continue
		}
		kept = append(kept, folded.Flux[i])
	}
	if len(kept) == 0 {
		return 0, errors.DegenerateScatter("no samples survive the event exclusion windows")
	}

	sd, err := stats.StandardDeviationPopulation(kept)
	if err != nil {
		return 0, errors.Wrap(err, "scatter estimation failed")
	}
	if sd <= 0 {
		return 0, errors.Newf(errors.CodeDegenerateScatter,
			"scatter %.6g is not strictly positive over %d surviving samples", sd, len(kept))
	}
	return sd, nil
}
