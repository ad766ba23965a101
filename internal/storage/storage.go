package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/romangod6/queuer-site/internal/models"
)

type Store interface {
	Initialize() error
	Close() error

	// Build operations
	CreateBuild(ctx context.Context, build *models.BuildRecord) error
	UpdateBuild(ctx context.Context, build *models.BuildRecord) error
	GetBuild(ctx context.Context, id uuid.UUID) (*models.BuildRecord, error)
	ListBuilds(ctx context.Context, limit, offset int) ([]*models.BuildRecord, error)
}

// Open returns the store for driver: "sqlite", "postgres" or "memory".
func Open(driver, url string) (Store, error) {
	switch driver {
	case "sqlite", "sqlite3":
		store, err := NewSQLiteStore(url)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres", "postgresql":
		store, err := NewPostgresStore(url)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
