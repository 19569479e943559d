// Package postgres provides a PostgreSQL history repository so an
// emulator instance can keep its submission log across restarts.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PrathamBhavsar2112/LogoPulse/internal/upstream/repo"
	"github.com/PrathamBhavsar2112/LogoPulse/pkg/logopulse"
)

// DBTX allows using either a connection pool or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements repo.Repository using PostgreSQL. Labels are
// stored as jsonb; a NULL label marks a pending job.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// EnsureSchema creates the history table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS submission_history (
			id BIGSERIAL PRIMARY KEY,
			image_key TEXT NOT NULL,
			label JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create submission_history table: %w", err)
	}
	return nil
}

func (r *Repository) Append(ctx context.Context, rec repo.Record) error {
	label, err := marshalLabel(rec.Label)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO submission_history (image_key, label, created_at)
		VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, rec.ImageKey, label, rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}

func (r *Repository) SetLabel(ctx context.Context, imageKey string, label *logopulse.Label) error {
	data, err := marshalLabel(label)
	if err != nil {
		return err
	}

	query := `
		UPDATE submission_history SET label = $2
		WHERE id = (
			SELECT id FROM submission_history
			WHERE image_key = $1
			ORDER BY id DESC LIMIT 1
		)`

	tag, err := r.db.Exec(ctx, query, imageKey, data)
	if err != nil {
		return fmt.Errorf("failed to set label: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no history record for key %q", imageKey)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]repo.Record, error) {
	query := `
		SELECT image_key, label, created_at
		FROM submission_history
		ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []repo.Record
	for rows.Next() {
		var rec repo.Record
		var label []byte
		if err := rows.Scan(&rec.ImageKey, &label, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		if len(label) > 0 {
			rec.Label = &logopulse.Label{}
			if err := json.Unmarshal(label, rec.Label); err != nil {
				return nil, fmt.Errorf("failed to decode stored label: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return records, nil
}

func marshalLabel(label *logopulse.Label) ([]byte, error) {
	if label == nil {
		return nil, nil
	}
	data, err := json.Marshal(label)
	if err != nil {
		return nil, fmt.Errorf("failed to encode label: %w", err)
	}
	return data, nil
}
