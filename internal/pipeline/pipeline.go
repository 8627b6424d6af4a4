// Package pipeline implements the modshift transit-significance test: fold
// a lightcurve on a trial ephemeris, bin it, convolve the binned data
// against the transit model, locate the three strongest dips and the
// strongest positive excursion, estimate the off-event scatter, and report
// the significance of each event together with a per-candidate false-alarm
// threshold.
//
// Every stage is a pure function over numeric arrays; Compute sequences
// them. The algorithm follows the transit-significance portion of the
// Kepler Robovetter's modshift test (KSCI-19105-002).
package pipeline

import (
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
	"modshift/internal/errors"
)

// Pipeline runs the modshift test under a fixed configuration.
type Pipeline struct {
	cfg vetting.Config
}

// New creates a pipeline with the given configuration.
func New(cfg vetting.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// NewDefault creates a pipeline with the canonical modshift constants.
func NewDefault() *Pipeline {
	return New(vetting.DefaultConfig())
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() vetting.Config {
	return p.cfg
}

// Compute runs the full significance test for one candidate. The model must
// be the expected transit-induced flux deviation at each time sample
// (negative in transit), with the same length and time alignment as the
// series.
//
// Inputs are validated eagerly before any stage runs; each stage re-checks
// its own preconditions and fails fast. The same inputs always produce the
// same Result or the same error.
func (p *Pipeline) Compute(ts lightcurve.TimeSeries, model []float64, eph lightcurve.Ephemeris) (*vetting.Result, *vetting.Diagnostics, error) {
	if err := p.validate(ts, model, eph); err != nil {
		return nil, nil, err
	}

	numBins, err := NumBins(eph, p.cfg.OverRes)
	if err != nil {
		return nil, nil, err
	}

	folded := FoldSeries(ts, eph, p.cfg.PhaseOffset)

	binnedFlux, err := BinSeries(folded.Phase, folded.Flux, eph.PeriodDays, numBins)
	if err != nil {
		return nil, nil, errors.Wrap(err, "binning flux")
	}
	binnedModel, err := BinSeries(folded.Phase, model, eph.PeriodDays, numBins)
	if err != nil {
		return nil, nil, errors.Wrap(err, "binning model")
	}

	conv, err := CircularConvolve(binnedFlux, binnedModel, eph.PeriodDays, p.cfg.PhaseOffset)
	if err != nil {
		return nil, nil, errors.Wrap(err, "convolving")
	}

	locs, err := LocateEvents(conv, eph.DurationHrs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "locating events")
	}

	// Exclusion half-width of twice the transit duration, in days.
	scatter, err := EstimateScatter(folded, locs.Pri, locs.Sec, 2*eph.DurationDays())
	if err != nil {
		return nil, nil, errors.Wrap(err, "estimating scatter")
	}

	if err := Rescale(&conv, scatter); err != nil {
		return nil, nil, err
	}
	sigmaPri, sigmaSec, sigmaTer, sigmaPos, err := EventSignificances(conv, locs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "scoring events")
	}

	threshold, err := FalseAlarmThreshold(eph)
	if err != nil {
		return nil, nil, err
	}

	result := &vetting.Result{
		Pri:                 locs.Pri,
		Sec:                 locs.Sec,
		Ter:                 locs.Ter,
		Pos:                 locs.Pos,
		SigmaPri:            sigmaPri,
		SigmaSec:            sigmaSec,
		SigmaTer:            sigmaTer,
		SigmaPos:            sigmaPos,
		FalseAlarmThreshold: threshold,
	}
	diag := &vetting.Diagnostics{
		Folded:      folded,
		Model:       append([]float64(nil), model...),
		BinnedFlux:  binnedFlux,
		BinnedModel: binnedModel,
		Convolution: conv,
		Scatter:     scatter,
	}
	return result, diag, nil
}

// validate checks the inbound contract before any stage runs.
func (p *Pipeline) validate(ts lightcurve.TimeSeries, model []float64, eph lightcurve.Ephemeris) error {
	if err := ts.Validate(); err != nil {
		return err
	}
	if len(model) != ts.Len() {
		return errors.Newf(errors.CodeInputValidation,
			"model and time lengths differ: %d vs %d", len(model), ts.Len())
	}
	if !lightcurve.AllFinite(model) {
		return errors.InputValidation("model contains non-finite values")
	}
	if err := eph.Validate(); err != nil {
		return err
	}
	if p.cfg.OverRes < 1 {
		return errors.Newf(errors.CodeConfiguration, "overres %d < 1", p.cfg.OverRes)
	}
	if p.cfg.PhaseOffset < 0 || p.cfg.PhaseOffset >= 1 {
		return errors.Newf(errors.CodeConfiguration,
			"phase offset %.3f outside [0, 1)", p.cfg.PhaseOffset)
	}
	return nil
}
