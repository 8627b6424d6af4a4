package pipeline

import (
	"math"

	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// Rescale divides every statistic by the scatter estimate, converting the
// series from raw flux-times-model units into statistical significances.
func Rescale(conv *vetting.ConvolutionSeries, scatter float64) error {
	if scatter <= 0 {
		return errors.Newf(errors.CodeDegenerateScatter,
			"cannot rescale by non-positive scatter %.6g", scatter)
	}
	for i := range conv.Stat {
		conv.Stat[i] /= scatter
	}
	return nil
}

// EventSignificances reads the rescaled statistic at each located event: for
// every event phase, the entry with the nearest phase (lowest index on ties)
// supplies its significance.
func EventSignificances(conv vetting.ConvolutionSeries, locs vetting.EventLocations) (pri, sec, ter, pos float64, err error) {
	if conv.Len() == 0 {
		return 0, 0, 0, 0, errors.InputValidation("convolution series is empty")
	}
	pri = conv.Stat[nearestPhase(conv.Phase, locs.Pri)]
	sec = conv.Stat[nearestPhase(conv.Phase, locs.Sec)]
	ter = conv.Stat[nearestPhase(conv.Phase, locs.Ter)]
	pos = conv.Stat[nearestPhase(conv.Phase, locs.Pos)]
	return pri, sec, ter, pos, nil
}

// nearestPhase returns the index minimizing |phase[i] - target|, preferring
// the lowest index on ties.
func nearestPhase(phase []float64, target float64) int {
	best := 0
	bestDist := math.Abs(phase[0] - target)
	for i := 1; i < len(phase); i++ {
		d := math.Abs(phase[i] - target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
