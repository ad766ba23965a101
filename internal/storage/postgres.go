package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/romangod6/queuer-site/internal/models"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS builds (
            id UUID PRIMARY KEY,
            base_url VARCHAR(2048) NOT NULL,
            out_dir VARCHAR(1024) NOT NULL,
            status VARCHAR(32) NOT NULL,
            pages INTEGER NOT NULL DEFAULT 0,
            assets INTEGER NOT NULL DEFAULT 0,
            warnings TEXT[],
            error TEXT,
            started_at TIMESTAMP NOT NULL,
            finished_at TIMESTAMP,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) CreateBuild(ctx context.Context, build *models.BuildRecord) error {
	query := `
        INSERT INTO builds (id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `

	_, err := s.db.ExecContext(ctx, query,
		build.ID,
		build.BaseURL,
		build.OutDir,
		string(build.Status),
		build.Pages,
		build.Assets,
		pq.Array(build.Warnings),
		build.Error,
		build.StartedAt,
		build.FinishedAt,
		build.CreatedAt,
		build.UpdatedAt,
	)

	return err
}

func (s *PostgresStore) UpdateBuild(ctx context.Context, build *models.BuildRecord) error {
	query := `
        UPDATE builds SET
            status = $1,
            pages = $2,
            assets = $3,
            warnings = $4,
            error = $5,
            finished_at = $6,
            updated_at = $7
        WHERE id = $8
    `

	_, err := s.db.ExecContext(ctx, query,
		string(build.Status),
		build.Pages,
		build.Assets,
		pq.Array(build.Warnings),
		build.Error,
		build.FinishedAt,
		build.UpdatedAt,
		build.ID,
	)

	return err
}

func (s *PostgresStore) GetBuild(ctx context.Context, id uuid.UUID) (*models.BuildRecord, error) {
	query := `
        SELECT id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at
        FROM builds
        WHERE id = $1
    `

	builds, err := s.queryBuilds(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, nil
	}
	return builds[0], nil
}

func (s *PostgresStore) ListBuilds(ctx context.Context, limit, offset int) ([]*models.BuildRecord, error) {
	query := `
        SELECT id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at
        FROM builds
        ORDER BY started_at DESC
        LIMIT $1 OFFSET $2
    `

	return s.queryBuilds(ctx, query, limit, offset)
}

func (s *PostgresStore) queryBuilds(ctx context.Context, query string, args ...interface{}) ([]*models.BuildRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []*models.BuildRecord
	for rows.Next() {
		build := &models.BuildRecord{}
		var status string
		var warnings []string
		var errText sql.NullString

		err := rows.Scan(
			&build.ID,
			&build.BaseURL,
			&build.OutDir,
			&status,
			&build.Pages,
			&build.Assets,
			pq.Array(&warnings),
			&errText,
			&build.StartedAt,
			&build.FinishedAt,
			&build.CreatedAt,
			&build.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		build.Status = models.BuildStatus(status)
		build.Warnings = warnings
		build.Error = errText.String
		builds = append(builds, build)
	}

	return builds, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
