// Package vetting defines the result types of the modshift significance
// test and the configuration that shapes a run.
package vetting

import (
	"modshift/domain/core"
	"modshift/domain/lightcurve"
)

// Config carries the pipeline's tunable constants. Both were embedded
// literals in the Kepler-era implementation; threading them explicitly keeps
// the pipeline a pure function of inputs and config.
type Config struct {
	// PhaseOffset is the fraction of the period the primary transit is
	// rotated away from the phase-wrap seam. Quarter phase keeps the
	// primary's exclusion windows clear of the 0/period boundary.
	PhaseOffset float64 `json:"phase_offset"`
	// OverRes is the number of phase bins per transit duration.
	OverRes int `json:"overres"`
}

// DefaultConfig returns the canonical modshift constants.
func DefaultConfig() Config {
	return Config{
		PhaseOffset: 0.25,
		OverRes:     10,
	}
}

// ConvolutionSeries is the match statistic per retained phase bin. Stat is
// in raw flux-times-model units until the scatter rescale, after which each
// entry is the statistical significance of a transit at that phase.
// Invariant: same length as the BinnedSeries it was built from.
type ConvolutionSeries struct {
	Phase []float64 `json:"phase"`
	Stat  []float64 `json:"stat"`
}

// Len returns the number of entries
func (cs ConvolutionSeries) Len() int {
	return len(cs.Phase)
}

// EventLocations holds the phases of the four diagnostic events: the three
// strongest dips and the strongest positive excursion. Each value is a phase
// pulled from the convolution series.
type EventLocations struct {
	Pri float64 `json:"pri"`
	Sec float64 `json:"sec"`
	Ter float64 `json:"ter"`
	Pos float64 `json:"pos"`
}

// Result is the modshift metric set for one candidate. Immutable once
// produced.
type Result struct {
	Pri float64 `json:"pri"`
	Sec float64 `json:"sec"`
	Ter float64 `json:"ter"`
	Pos float64 `json:"pos"`

	SigmaPri float64 `json:"sigma_pri"`
	SigmaSec float64 `json:"sigma_sec"`
	SigmaTer float64 `json:"sigma_ter"`
	SigmaPos float64 `json:"sigma_pos"`

	// FalseAlarmThreshold is the per-candidate significance above which the
	// primary event is unlikely to be Gaussian noise. Callers vetting many
	// candidates must correct for the look-elsewhere effect themselves.
	FalseAlarmThreshold float64 `json:"false_alarm_threshold"`
}

// Diagnostics bundles the pipeline's intermediate arrays for an optional
// diagnostic sink. Purely observational; nothing downstream of the sink may
// mutate pipeline state through it.
type Diagnostics struct {
	Folded      lightcurve.FoldedSeries `json:"folded"`
	Model       []float64               `json:"model"`
	BinnedFlux  lightcurve.BinnedSeries `json:"binned_flux"`
	BinnedModel lightcurve.BinnedSeries `json:"binned_model"`
	Convolution ConvolutionSeries       `json:"convolution"`
	Scatter     float64                 `json:"scatter"`
}

// Report wraps a Result with run identity for persistence and transport.
type Report struct {
	RunID     core.RunID           `json:"run_id"`
	Target    core.TargetKey       `json:"target"`
	Ephemeris lightcurve.Ephemeris `json:"ephemeris"`
	Result    Result               `json:"result"`
	CreatedAt core.Timestamp       `json:"created_at"`
}
