package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"modshift/adapters/boxcar"
	"modshift/domain/core"
	"modshift/domain/vetting"
	"modshift/internal/errors"
	"modshift/internal/pipeline"
	"modshift/internal/testkit"
)

// fakeLedger keeps reports in memory, newest first.
type fakeLedger struct {
	mu      sync.Mutex
	reports []*vetting.Report
	saveErr error
}

func (f *fakeLedger) Save(_ context.Context, report *vetting.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.reports = append([]*vetting.Report{report}, f.reports...)
	return nil
}

func (f *fakeLedger) GetByRunID(_ context.Context, id core.RunID) (*vetting.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.RunID == id {
			return r, nil
		}
	}
	return nil, errors.NotFound("vetting report " + id.String())
}

func (f *fakeLedger) ListRecent(_ context.Context, limit int) ([]*vetting.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.reports) {
		limit = len(f.reports)
	}
	return f.reports[:limit], nil
}

// spySink records what it was shown and can be forced to fail.
type spySink struct {
	mu     sync.Mutex
	calls  int
	lastID core.RunID
	err    error
}

func (s *spySink) Write(_ context.Context, _ *vetting.Diagnostics, report *vetting.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastID = report.RunID
	return s.err
}

func testRequest(t *testing.T) VetRequest {
	t.Helper()
	cfg := testkit.DefaultTransitConfig()
	cfg.CadenceMin = 13.0
	cfg.DepthFrac = 1e-2
	ts := testkit.NewTransitGenerator(cfg).Generate()
	return VetRequest{
		Target:    core.TargetKey("KIC-8462852"),
		Series:    ts,
		Ephemeris: cfg.Ephemeris,
		DepthFrac: cfg.DepthFrac,
	}
}

func TestVet_GeneratesModelAndPersists(t *testing.T) {
	ledger := &fakeLedger{}
	sink := &spySink{}
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), ledger, sink)

	report, err := svc.Vet(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.False(t, core.ID(report.RunID).IsEmpty())
	require.Equal(t, core.TargetKey("KIC-8462852"), report.Target)
	require.Negative(t, report.Result.SigmaPri)
	require.False(t, report.CreatedAt.IsZero())

	stored, err := ledger.GetByRunID(context.Background(), report.RunID)
	require.NoError(t, err)
	require.Equal(t, report.Result, stored.Result)

	require.Equal(t, 1, sink.calls)
	require.Equal(t, report.RunID, sink.lastID)
}

func TestVet_UsesSuppliedModel(t *testing.T) {
	req := testRequest(t)
	model, err := boxcar.NewGenerator().Generate(req.Series.Time, req.Ephemeris, req.DepthFrac, 0)
	require.NoError(t, err)
	req.Model = model
	req.DepthFrac = 0

	// No generator configured: the supplied model must be enough.
	svc := NewVetService(pipeline.NewDefault(), nil, nil, nil)
	report, err := svc.Vet(context.Background(), req)
	require.NoError(t, err)
	require.Negative(t, report.Result.SigmaPri)
}

func TestVet_RequiresModelOrGenerator(t *testing.T) {
	req := testRequest(t)
	svc := NewVetService(pipeline.NewDefault(), nil, nil, nil)

	_, err := svc.Vet(context.Background(), req)
	require.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestVet_RequiresDepthForGeneration(t *testing.T) {
	req := testRequest(t)
	req.DepthFrac = 0
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), nil, nil)

	_, err := svc.Vet(context.Background(), req)
	require.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

func TestVet_LedgerFailurePropagates(t *testing.T) {
	ledger := &fakeLedger{saveErr: errors.DatabaseError("saving report: connection reset")}
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), ledger, nil)

	_, err := svc.Vet(context.Background(), testRequest(t))
	require.Error(t, err)
	require.True(t, errors.HasCode(err, errors.CodeDatabaseError))
}

func TestVet_SinkFailureDoesNotFailRun(t *testing.T) {
	sink := &spySink{err: errors.InternalError("disk full")}
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), nil, sink)

	report, err := svc.Vet(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Equal(t, 1, sink.calls)
}

func TestVet_PipelineErrorSkipsPersistence(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewVetService(pipeline.NewDefault(), boxcar.NewGenerator(), ledger, nil)

	req := testRequest(t)
	req.Series.Flux = req.Series.Flux[:3] // length mismatch
	_, err := svc.Vet(context.Background(), req)
	require.True(t, errors.HasCode(err, errors.CodeInputValidation))
	require.Empty(t, ledger.reports)
}
