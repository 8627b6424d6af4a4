package pipeline

import (
	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// LocateEvents extracts the four diagnostic events from the convolution
// series by sequential exclusion:
//
//   - pri: phase of the global minimum of the raw statistic
//   - sec: minimum after excluding phases within 2 transit widths of pri
//   - ter: minimum after additionally excluding 2 widths around sec
//   - pos: maximum after excluding 3 widths around pri and sec (the ter
//     window is not excluded for pos)
//
// Exclusion is an explicit boolean mask and the extremum searches skip
// masked indices. The historical implementation zeroed masked entries
// instead, which silently conflates a genuine near-zero significance with
// "excluded"; the mask avoids that.
//
// Ties break to the lowest index.
func LocateEvents(conv vetting.ConvolutionSeries, durationHrs float64) (vetting.EventLocations, error) {
	var locs vetting.EventLocations
	if conv.Len() == 0 {
		return locs, errors.InputValidation("convolution series is empty")
	}

	transitWidth := durationHrs / 24.0
	gap := 2 * transitWidth
	posGap := 3 * transitWidth

	excluded := make([]bool, conv.Len())

	iPri, ok := argMin(conv.Stat, excluded)
	if !ok {
		return locs, errors.InternalError("no candidate for primary event")
	}
	locs.Pri = conv.Phase[iPri]
	maskWindow(excluded, conv.Phase, locs.Pri, gap)

	iSec, ok := argMin(conv.Stat, excluded)
	if !ok {
		return locs, errors.Newf(errors.CodeInternalError,
			"secondary search space fully masked (gap %.4f d over %d bins)", gap, conv.Len())
	}
	locs.Sec = conv.Phase[iSec]
	maskWindow(excluded, conv.Phase, locs.Sec, gap)

	iTer, ok := argMin(conv.Stat, excluded)
	if !ok {
		return locs, errors.Newf(errors.CodeInternalError,
			"tertiary search space fully masked (gap %.4f d over %d bins)", gap, conv.Len())
	}
	locs.Ter = conv.Phase[iTer]

	// The positive-excursion search works from the pri+sec state, not the
	// ter state, with wider windows around both dips.
	posExcluded := make([]bool, conv.Len())
	maskWindow(posExcluded, conv.Phase, locs.Pri, gap)
	maskWindow(posExcluded, conv.Phase, locs.Sec, gap)
	maskWindow(posExcluded, conv.Phase, locs.Pri, posGap)
	maskWindow(posExcluded, conv.Phase, locs.Sec, posGap)

	iPos, ok := argMax(conv.Stat, posExcluded)
	if !ok {
		return locs, errors.Newf(errors.CodeInternalError,
			"positive-excursion search space fully masked (gap %.4f d over %d bins)", posGap, conv.Len())
	}
	locs.Pos = conv.Phase[iPos]

	return locs, nil
}

// maskWindow excludes indices whose phase lies strictly inside
// (center-halfWidth, center+halfWidth).
func maskWindow(excluded []bool, phase []float64, center, halfWidth float64) {
	for i, p := range phase {
		if center-halfWidth < p && p < center+halfWidth {
			excluded[i] = true
		}
	}
}

// argMin returns the index of the smallest unmasked value, preferring the
// lowest index on ties. ok is false when every index is masked.
func argMin(values []float64, excluded []bool) (int, bool) {
	best := -1
	for i, v := range values {
		if excluded[i] {
			continue
		}
		if best < 0 || v < values[best] {
			best = i
		}
	}
	return best, best >= 0
}

// argMax mirrors argMin for the largest unmasked value.
func argMax(values []float64, excluded []bool) (int, bool) {
	best := -1
	for i, v := range values {
		if excluded[i] {
			continue
		}
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best, best >= 0
}
