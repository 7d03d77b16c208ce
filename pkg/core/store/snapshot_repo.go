package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"findash/pkg/core/analysis"
)

// SnapshotRepo stores the latest analysis report per company.
type SnapshotRepo struct{}

// NewSnapshotRepo creates a new repository instance.
func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// Save persists a report, replacing any earlier snapshot for the same
// company. The report is stored as a single JSONB blob keyed by corp code.
func (r *SnapshotRepo) Save(ctx context.Context, report *analysis.Report) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO analysis_snapshots (corp_code, corp_name, report_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (corp_code)
		DO UPDATE SET
			corp_name = EXCLUDED.corp_name,
			report_json = EXCLUDED.report_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, report.CorpCode, report.CorpName, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves the latest snapshot for a company.
func (r *SnapshotRepo) Load(ctx context.Context, corpCode string) (*analysis.Report, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT report_json FROM analysis_snapshots WHERE corp_code = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, corpCode).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no snapshot found for corp %s", corpCode)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var report analysis.Report
	if err := json.Unmarshal(jsonData, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &report, nil
}

// List returns the stored snapshots, newest first, up to limit.
func (r *SnapshotRepo) List(ctx context.Context, limit int) ([]*analysis.Report, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT report_json FROM analysis_snapshots ORDER BY updated_at DESC LIMIT $1`

	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var reports []*analysis.Report
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		var report analysis.Report
		if err := json.Unmarshal(jsonData, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
