package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"holiday_planner/internal/domain"
)

// Repo persists plan requests and their generated packages. Intent and
// packages are stored as JSON columns; the scalar columns exist for
// indexing and ad-hoc querying.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) SaveRecord(ctx context.Context, rec domain.TripRecord) error {
	intentJSON, err := json.Marshal(rec.Intent)
	if err != nil {
		return fmt.Errorf("marshal intent: %w", err)
	}
	pkgJSON, err := json.Marshal(rec.Packages)
	if err != nil {
		return fmt.Errorf("marshal packages: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertRecordSQL,
		rec.ID,
		rec.Intent.Destination,
		rec.Intent.RangeStart,
		rec.Intent.RangeEnd,
		rec.Intent.Travelers,
		string(intentJSON),
		string(pkgJSON),
		rec.GeneratedAt,
	)
	return err
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TripRecord
	for rows.Next() {
		var (
			rec           domain.TripRecord
			intentB, pkgB sql.RawBytes
			generatedAt   sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &intentB, &pkgB, &generatedAt); err != nil {
			return nil, err
		}
		if len(intentB) > 0 {
			if err := json.Unmarshal(intentB, &rec.Intent); err != nil {
				return nil, fmt.Errorf("decode intent for %s: %w", rec.ID, err)
			}
		}
		if len(pkgB) > 0 {
			if err := json.Unmarshal(pkgB, &rec.Packages); err != nil {
				return nil, fmt.Errorf("decode packages for %s: %w", rec.ID, err)
			}
		}
		if generatedAt.Valid {
			rec.GeneratedAt = generatedAt.Time
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
