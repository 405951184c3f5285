// Package repository persists run records so every generated artifact
// stays traceable to the command and inputs that produced it.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/astroplot/orrery/internal/types"
)

// SQLiteRunRepo stores run results in the archive database.
type SQLiteRunRepo struct {
	db *sql.DB
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(db *sql.DB) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

// createdAtLayout is fixed-width so the stored strings sort
// chronologically. RFC3339Nano trims trailing fraction zeros and would
// break the ORDER BY created_at queries for sub-second spacing.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (r *SQLiteRunRepo) Create(ctx context.Context, run *types.RunResult) error {
	params, err := json.Marshal(run.Metadata.Parameters)
	if err != nil {
		return fmt.Errorf("encoding run parameters: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO runs (id, command, status, catalog_file, body_count, parameters, version, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		run.ID,
		run.Command,
		run.Status,
		run.Metadata.CatalogFile,
		run.Metadata.BodyCount,
		string(params),
		run.Metadata.Version,
		run.Error,
		run.Duration.Milliseconds(),
		run.Timestamp.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, path := range run.Artifacts {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO artifacts (run_id, position, path) VALUES (?, ?, ?)`,
			run.ID, i, path,
		)
		if err != nil {
			return fmt.Errorf("inserting artifact %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*types.RunResult, error) {
	query := `SELECT id, command, status, catalog_file, body_count, parameters, version, error, duration_ms, created_at
		FROM runs WHERE id = ?`
	run, err := r.scanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadArtifacts(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first. command filters to one command name
// when non-empty; limit <= 0 means no limit.
func (r *SQLiteRunRepo) List(ctx context.Context, command string, limit int) ([]*types.RunResult, error) {
	query := `SELECT id, command, status, catalog_file, body_count, parameters, version, error, duration_ms, created_at
		FROM runs`
	var args []any
	if command != "" {
		query += ` WHERE command = ?`
		args = append(args, command)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.RunResult
	for rows.Next() {
		run, err := r.scanRunFromRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for _, run := range runs {
		if err := r.loadArtifacts(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	return nil
}

// Prune removes all but the newest keep runs.
func (r *SQLiteRunRepo) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id NOT IN (
		SELECT id FROM runs ORDER BY created_at DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned runs: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRunRepo) loadArtifacts(ctx context.Context, run *types.RunResult) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT path FROM artifacts WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("loading artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("scanning artifact: %w", err)
		}
		run.Artifacts = append(run.Artifacts, path)
	}
	return rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *SQLiteRunRepo) scanRun(row *sql.Row) (*types.RunResult, error) {
	run, err := scanRunFields(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	return run, err
}

func (r *SQLiteRunRepo) scanRunFromRows(rows *sql.Rows) (*types.RunResult, error) {
	return scanRunFields(rows)
}

func scanRunFields(s scannable) (*types.RunResult, error) {
	var run types.RunResult
	var paramsStr, createdAtStr string
	var durationMs int64

	err := s.Scan(
		&run.ID, &run.Command, &run.Status,
		&run.Metadata.CatalogFile, &run.Metadata.BodyCount,
		&paramsStr, &run.Metadata.Version,
		&run.Error, &durationMs, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if paramsStr != "" && paramsStr != "{}" {
		if err := json.Unmarshal([]byte(paramsStr), &run.Metadata.Parameters); err != nil {
			return nil, fmt.Errorf("decoding run parameters: %w", err)
		}
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.Timestamp, err = time.Parse(createdAtLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &run, nil
}
