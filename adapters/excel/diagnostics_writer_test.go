package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"modshift/domain/core"
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
)

func TestDiagnosticsWriter_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewDiagnosticsWriter(dir)

	report := &vetting.Report{
		RunID:  core.RunID("run-123"),
		Target: core.TargetKey("KOI-1"),
		Ephemeris: lightcurve.Ephemeris{
			PeriodDays:  10,
			EpochDays:   2,
			DurationHrs: 3,
		},
		Result: vetting.Result{
			Pri: 2.5, SigmaPri: -12.3, FalseAlarmThreshold: 2.5,
		},
		CreatedAt: core.Now(),
	}
	diag := &vetting.Diagnostics{
		Folded: lightcurve.FoldedSeries{
			Phase: []float64{0.1, 0.2, 0.3},
			Flux:  []float64{0, -0.01, 0},
		},
		Model: []float64{0, -0.01, 0},
		BinnedFlux: lightcurve.BinnedSeries{
			Phase: []float64{0.1, 0.2},
			Value: []float64{0, -0.01},
			Count: []int{2, 1},
		},
		BinnedModel: lightcurve.BinnedSeries{
			Phase: []float64{0.1, 0.2},
			Value: []float64{0, -0.01},
			Count: []int{2, 1},
		},
		Convolution: vetting.ConvolutionSeries{
			Phase: []float64{0.1, 0.2},
			Stat:  []float64{1.1, -12.3},
		},
		Scatter: 0.001,
	}

	if err := w.Write(context.Background(), diag, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "modshift_run-123.xlsx")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Metrics", "Folded", "Binned", "BinnedModel", "Convolution"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("sheet %s missing (idx %d, err %v)", sheet, idx, err)
		}
	}

	got, err := f.GetCellValue("Metrics", "B1")
	if err != nil {
		t.Fatalf("reading run_id cell: %v", err)
	}
	if got != "run-123" {
		t.Errorf("Metrics!B1 = %q, want %q", got, "run-123")
	}
}

func TestDiagnosticsWriter_BinnedSheetsKeepOwnPhases(t *testing.T) {
	dir := t.TempDir()
	w := NewDiagnosticsWriter(dir)

	// Flux and model retain different bins; each sheet must pair values
	// with the phases of its own series.
	report := &vetting.Report{RunID: core.RunID("run-456")}
	diag := &vetting.Diagnostics{
		BinnedFlux: lightcurve.BinnedSeries{
			Phase: []float64{0.1, 0.2, 0.3},
			Value: []float64{1, 2, 3},
			Count: []int{1, 1, 1},
		},
		BinnedModel: lightcurve.BinnedSeries{
			Phase: []float64{0.2},
			Value: []float64{-0.01},
			Count: []int{1},
		},
	}

	if err := w.Write(context.Background(), diag, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "modshift_run-456.xlsx"))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("reading %s!%s: %v", sheet, ref, err)
		}
		return v
	}

	if got := cell("Binned", "A2"); got != "0.1" {
		t.Errorf("Binned!A2 = %q, want %q", got, "0.1")
	}
	if got := cell("BinnedModel", "A2"); got != "0.2" {
		t.Errorf("BinnedModel!A2 = %q, want %q", got, "0.2")
	}
	if got := cell("BinnedModel", "B2"); got != "-0.01" {
		t.Errorf("BinnedModel!B2 = %q, want %q", got, "-0.01")
	}
	if got := cell("BinnedModel", "A3"); got != "" {
		t.Errorf("BinnedModel!A3 = %q, want empty past the model's last bin", got)
	}
}

func TestDiagnosticsWriter_BadDirectory(t *testing.T) {
	w := NewDiagnosticsWriter(filepath.Join(t.TempDir(), "does", "not", "exist"))
	report := &vetting.Report{RunID: core.RunID("run-x")}
	diag := &vetting.Diagnostics{}

	if err := w.Write(context.Background(), diag, report); err == nil {
		t.Error("expected error for missing target directory")
	}
}
