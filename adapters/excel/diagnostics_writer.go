package excel

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"modshift/domain/vetting"
)

// DiagnosticsWriter implements ports.DiagnosticSink by writing the
// pipeline's intermediate arrays to an Excel workbook next to the metrics,
// one sheet per stage. It replaces the plotting side-channel of the
// original modshift tooling for non-visual environments.
type DiagnosticsWriter struct {
	dir string
}

// NewDiagnosticsWriter creates a writer placing one workbook per run in dir.
func NewDiagnosticsWriter(dir string) *DiagnosticsWriter {
	return &DiagnosticsWriter{dir: dir}
}

// Write exports the diagnostics for one report to
// <dir>/modshift_<run_id>.xlsx.
func (w *DiagnosticsWriter) Write(ctx context.Context, diag *vetting.Diagnostics, report *vetting.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeMetrics(f, diag, report); err != nil {
		return err
	}
	if err := writeColumns(f, "Folded", [][]float64{diag.Folded.Phase, diag.Folded.Flux, diag.Model},
		[]string{"phase_days", "flux", "model"}); err != nil {
		return err
	}
	// The flux and model drop their own empty bins, so each gets its own
	// sheet with its own phase column.
	if err := writeColumns(f, "Binned", [][]float64{diag.BinnedFlux.Phase, diag.BinnedFlux.Value},
		[]string{"phase_days", "mean_flux"}); err != nil {
		return err
	}
	if err := writeColumns(f, "BinnedModel", [][]float64{diag.BinnedModel.Phase, diag.BinnedModel.Value},
		[]string{"phase_days", "model_amplitude"}); err != nil {
		return err
	}
	if err := writeColumns(f, "Convolution", [][]float64{diag.Convolution.Phase, diag.Convolution.Stat},
		[]string{"phase_days", "significance"}); err != nil {
		return err
	}

	path := filepath.Join(w.dir, fmt.Sprintf("modshift_%s.xlsx", report.RunID))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save diagnostics workbook: %w", err)
	}
	return nil
}

func (w *DiagnosticsWriter) writeMetrics(f *excelize.File, diag *vetting.Diagnostics, report *vetting.Report) error {
	const sheet = "Metrics"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	rows := [][]interface{}{
		{"run_id", report.RunID.String()},
		{"target", report.Target.String()},
		{"period_days", report.Ephemeris.PeriodDays},
		{"epoch_days", report.Ephemeris.EpochDays},
		{"duration_hrs", report.Ephemeris.DurationHrs},
		{"pri", report.Result.Pri},
		{"sec", report.Result.Sec},
		{"ter", report.Result.Ter},
		{"pos", report.Result.Pos},
		{"sigma_pri", report.Result.SigmaPri},
		{"sigma_sec", report.Result.SigmaSec},
		{"sigma_ter", report.Result.SigmaTer},
		{"sigma_pos", report.Result.SigmaPos},
		{"false_alarm_threshold", report.Result.FalseAlarmThreshold},
		{"scatter", diag.Scatter},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write metrics row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeColumns(f *excelize.File, sheet string, cols [][]float64, headers []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", sheet, err)
	}

	rows := 0
	for _, col := range cols {
		if len(col) > rows {
			rows = len(col)
		}
	}
	for r := 0; r < rows; r++ {
		row := make([]interface{}, len(cols))
		for c, col := range cols {
			if r < len(col) {
				row[c] = col[r]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
		}
	}
	return nil
}
