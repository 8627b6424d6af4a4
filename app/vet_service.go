// Package app wires the significance pipeline to its collaborators: model
// generation, report persistence, and the optional diagnostic sink.
package app

import (
	"context"
	"log"

	"modshift/domain/core"
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
	"modshift/internal/errors"
	"modshift/internal/pipeline"
	"modshift/ports"
)

// VetService runs the modshift test for one candidate at a time.
type VetService struct {
	pipeline *pipeline.Pipeline
	models   ports.ModelGenerator
	ledger   ports.ReportLedger
	diag     ports.DiagnosticSink
}

// VetRequest defines one candidate to test. Model is optional: when nil,
// the model generator builds a box-car model of DepthFrac from the
// ephemeris. Target is an optional catalog label carried into the report.
type VetRequest struct {
	Target    core.TargetKey        `json:"target"`
	Series    lightcurve.TimeSeries `json:"series"`
	Ephemeris lightcurve.Ephemeris  `json:"ephemeris"`
	Model     []float64             `json:"model,omitempty"`
	DepthFrac float64               `json:"depth_frac,omitempty"`
}

// NewVetService creates a vetting service. ledger and diag may be nil for
// callers that neither persist nor visualize.
func NewVetService(p *pipeline.Pipeline, models ports.ModelGenerator, ledger ports.ReportLedger, diag ports.DiagnosticSink) *VetService {
	return &VetService{
		pipeline: p,
		models:   models,
		ledger:   ledger,
		diag:     diag,
	}
}

// Vet runs the significance test for one candidate, persists the report
// when a ledger is configured, and offers the intermediates to the
// diagnostic sink. A sink failure is logged, not propagated: diagnostics
// never invalidate a computed result.
func (s *VetService) Vet(ctx context.Context, req VetRequest) (*vetting.Report, error) {
	model := req.Model
	if model == nil {
		if s.models == nil {
			return nil, errors.InvalidInput("no model supplied and no model generator configured")
		}
		if req.DepthFrac <= 0 {
			return nil, errors.InvalidInput("model generation requires a positive depth_frac")
		}
		var err error
		model, err = s.models.Generate(req.Series.Time, req.Ephemeris, req.DepthFrac, 0)
		if err != nil {
			return nil, errors.Wrap(err, "generating transit model")
		}
	}

	result, diag, err := s.pipeline.Compute(req.Series, model, req.Ephemeris)
	if err != nil {
		return nil, err
	}

	report := &vetting.Report{
		RunID:     core.NewRunID(),
		Target:    req.Target,
		Ephemeris: req.Ephemeris,
		Result:    *result,
		CreatedAt: core.Now(),
	}

	if s.ledger != nil {
		if err := s.ledger.Save(ctx, report); err != nil {
			return nil, errors.Wrap(err, "persisting vetting report")
		}
	}
	if s.diag != nil {
		if err := s.diag.Write(ctx, diag, report); err != nil {
			log.Printf("[Vet] diagnostic sink failed for run %s: %v", report.RunID, err)
		}
	}
	return report, nil
}
