package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/romangod6/queuer-site/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS builds (
            id TEXT PRIMARY KEY,
            base_url TEXT NOT NULL,
            out_dir TEXT NOT NULL,
            status TEXT NOT NULL,
            pages INTEGER NOT NULL DEFAULT 0,
            assets INTEGER NOT NULL DEFAULT 0,
            warnings TEXT,
            error TEXT,
            started_at DATETIME NOT NULL,
            finished_at DATETIME,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) CreateBuild(ctx context.Context, build *models.BuildRecord) error {
	query := `
        INSERT INTO builds (id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	warningsJSON, err := json.Marshal(build.Warnings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		build.ID.String(),
		build.BaseURL,
		build.OutDir,
		string(build.Status),
		build.Pages,
		build.Assets,
		string(warningsJSON),
		build.Error,
		build.StartedAt,
		build.FinishedAt,
		build.CreatedAt,
		build.UpdatedAt,
	)

	return err
}

func (s *SQLiteStore) UpdateBuild(ctx context.Context, build *models.BuildRecord) error {
	query := `
        UPDATE builds SET
            status = ?,
            pages = ?,
            assets = ?,
            warnings = ?,
            error = ?,
            finished_at = ?,
            updated_at = ?
        WHERE id = ?
    `

	warningsJSON, err := json.Marshal(build.Warnings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		string(build.Status),
		build.Pages,
		build.Assets,
		string(warningsJSON),
		build.Error,
		build.FinishedAt,
		build.UpdatedAt,
		build.ID.String(),
	)

	return err
}

func (s *SQLiteStore) GetBuild(ctx context.Context, id uuid.UUID) (*models.BuildRecord, error) {
	query := `
        SELECT id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at
        FROM builds
        WHERE id = ?
    `

	builds, err := s.queryBuilds(ctx, query, id.String())
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, nil
	}
	return builds[0], nil
}

func (s *SQLiteStore) ListBuilds(ctx context.Context, limit, offset int) ([]*models.BuildRecord, error) {
	query := `
        SELECT id, base_url, out_dir, status, pages, assets, warnings, error, started_at, finished_at, created_at, updated_at
        FROM builds
        ORDER BY started_at DESC
        LIMIT ? OFFSET ?
    `

	return s.queryBuilds(ctx, query, limit, offset)
}

func (s *SQLiteStore) queryBuilds(ctx context.Context, query string, args ...interface{}) ([]*models.BuildRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []*models.BuildRecord
	for rows.Next() {
		var build models.BuildRecord
		var idStr, status string
		var warningsJSON, errText sql.NullString
		var finishedAt sql.NullTime

		err := rows.Scan(
			&idStr,
			&build.BaseURL,
			&build.OutDir,
			&status,
			&build.Pages,
			&build.Assets,
			&warningsJSON,
			&errText,
			&build.StartedAt,
			&finishedAt,
			&build.CreatedAt,
			&build.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		build.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("error parsing build id %q: %w", idStr, err)
		}
		build.Status = models.BuildStatus(status)
		build.Error = errText.String
		if finishedAt.Valid {
			t := finishedAt.Time
			build.FinishedAt = &t
		}
		if warningsJSON.Valid {
			if err := json.Unmarshal([]byte(warningsJSON.String), &build.Warnings); err != nil {
				return nil, fmt.Errorf("error decoding warnings for build %s: %w", build.ID, err)
			}
		}

		builds = append(builds, &build)
	}

	return builds, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
