// Package ports defines the interfaces between the vetting core and its
// collaborators: model generation, lightcurve input, diagnostics, and result
// persistence.
package ports

import (
	"context"

	"modshift/domain/core"
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
)

// ModelGenerator produces the expected transit-induced flux deviation at
// each time sample for a candidate ephemeris. offsetFrac shifts the transit
// center by that fraction of the period for callers working in a rotated
// phase frame; time-domain callers pass 0.
type ModelGenerator interface {
	Generate(time []float64, eph lightcurve.Ephemeris, depthFrac, offsetFrac float64) ([]float64, error)
}

// DiagnosticSink consumes the pipeline's intermediate arrays for
// visualization or export. Purely observational: implementations must not
// mutate what they are handed, and a failed sink never invalidates the
// report it was shown.
type DiagnosticSink interface {
	Write(ctx context.Context, diag *vetting.Diagnostics, report *vetting.Report) error
}

// ReportLedger persists vetting reports.
type ReportLedger interface {
	Save(ctx context.Context, report *vetting.Report) error
	GetByRunID(ctx context.Context, id core.RunID) (*vetting.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*vetting.Report, error)
}

// LightcurveSource reads a lightcurve from an external store.
type LightcurveSource interface {
	Read(path string) (*lightcurve.TimeSeries, error)
}
