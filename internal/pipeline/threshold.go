package pipeline

import (
	"gonum.org/v1/gonum/stat/distuv"

	"modshift/domain/lightcurve"
	"modshift/internal/errors"
)

// FalseAlarmThreshold converts the fraction of the period covered by one
// transit window into a one-sided Gaussian significance threshold:
//
//	threshold = sqrt(2) * erfcinv(duration_days / period_days)
//
// under the assumption that one period holds period/duration independent
// trial phases. Computed through the unit-normal quantile, which satisfies
// Quantile(1 - r/2) = sqrt(2)*erfcinv(r).
//
// The threshold is per-candidate; correcting for many candidates is the
// caller's responsibility.
func FalseAlarmThreshold(eph lightcurve.Ephemeris) (float64, error) {
	ratio := eph.DurationDays() / eph.PeriodDays
	if ratio <= 0 || ratio >= 1 {
		return 0, errors.Newf(errors.CodeRangeError,
			"duration/period ratio %.6g outside (0, 1)", ratio)
	}
	return distuv.UnitNormal.Quantile(1 - ratio/2), nil
}
