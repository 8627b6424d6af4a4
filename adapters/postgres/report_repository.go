// Package postgres persists vetting reports with sqlx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"modshift/domain/core"
	"modshift/domain/lightcurve"
	"modshift/domain/vetting"
	"modshift/ports"
)

// reportRepository implements ports.ReportLedger
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a report ledger backed by postgres.
func NewReportRepository(db *sqlx.DB) ports.ReportLedger {
	return &reportRepository{db: db}
}

// Save inserts a vetting report.
func (r *reportRepository) Save(ctx context.Context, report *vetting.Report) error {
	query := `INSERT INTO vetting_reports (
		run_id, target, period_days, epoch_days, duration_hrs,
		pri, sec, ter, pos,
		sigma_pri, sigma_sec, sigma_ter, sigma_pos,
		false_alarm_threshold, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	)`

	_, err := r.db.ExecContext(ctx, query,
		report.RunID.String(), report.Target.String(),
		report.Ephemeris.PeriodDays, report.Ephemeris.EpochDays, report.Ephemeris.DurationHrs,
		report.Result.Pri, report.Result.Sec, report.Result.Ter, report.Result.Pos,
		report.Result.SigmaPri, report.Result.SigmaSec, report.Result.SigmaTer, report.Result.SigmaPos,
		report.Result.FalseAlarmThreshold, report.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save vetting report: %w", err)
	}
	return nil
}

// GetByRunID retrieves a report by its run ID.
func (r *reportRepository) GetByRunID(ctx context.Context, id core.RunID) (*vetting.Report, error) {
	query := `SELECT
		run_id, target, period_days, epoch_days, duration_hrs,
		pri, sec, ter, pos,
		sigma_pri, sigma_sec, sigma_ter, sigma_pos,
		false_alarm_threshold, created_at
	FROM vetting_reports WHERE run_id = $1`

	report, err := scanReport(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vetting report not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get vetting report: %w", err)
	}
	return report, nil
}

// ListRecent retrieves the most recent reports, newest first.
func (r *reportRepository) ListRecent(ctx context.Context, limit int) ([]*vetting.Report, error) {
	query := `SELECT
		run_id, target, period_days, epoch_days, duration_hrs,
		pri, sec, ter, pos,
		sigma_pri, sigma_sec, sigma_ter, sigma_pos,
		false_alarm_threshold, created_at
	FROM vetting_reports ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vetting reports: %w", err)
	}
	defer rows.Close()

	var reports []*vetting.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vetting report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vetting reports: %w", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*vetting.Report, error) {
	var (
		runID, target string
		eph           lightcurve.Ephemeris
		res           vetting.Result
		createdAt     sql.NullTime
	)
	err := row.Scan(
		&runID, &target,
		&eph.PeriodDays, &eph.EpochDays, &eph.DurationHrs,
		&res.Pri, &res.Sec, &res.Ter, &res.Pos,
		&res.SigmaPri, &res.SigmaSec, &res.SigmaTer, &res.SigmaPos,
		&res.FalseAlarmThreshold, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	report := &vetting.Report{
		RunID:     core.RunID(runID),
		Target:    core.TargetKey(target),
		Ephemeris: eph,
		Result:    res,
	}
	if createdAt.Valid {
		report.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return report, nil
}
