package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/romangod6/queuer-site/internal/models"
)

// MemoryStore keeps build records for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	builds map[uuid.UUID]models.BuildRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{builds: make(map[uuid.UUID]models.BuildRecord)}
}

func (s *MemoryStore) Initialize() error { return nil }
func (s *MemoryStore) Close() error      { return nil }

func (s *MemoryStore) CreateBuild(ctx context.Context, build *models.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds[build.ID] = copyBuild(build)
	return nil
}

func (s *MemoryStore) UpdateBuild(ctx context.Context, build *models.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.builds[build.ID]; ok {
		s.builds[build.ID] = copyBuild(build)
	}
	return nil
}

func (s *MemoryStore) GetBuild(ctx context.Context, id uuid.UUID) (*models.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	build, ok := s.builds[id]
	if !ok {
		return nil, nil
	}
	out := copyBuild(&build)
	return &out, nil
}

func (s *MemoryStore) ListBuilds(ctx context.Context, limit, offset int) ([]*models.BuildRecord, error) {
	s.mu.RLock()
	all := make([]*models.BuildRecord, 0, len(s.builds))
	for _, build := range s.builds {
		b := copyBuild(&build)
		all = append(all, &b)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].StartedAt.After(all[j].StartedAt)
	})

	if offset >= len(all) {
		return []*models.BuildRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func copyBuild(build *models.BuildRecord) models.BuildRecord {
	out := *build
	out.Warnings = append([]string(nil), build.Warnings...)
	if build.FinishedAt != nil {
		t := *build.FinishedAt
		out.FinishedAt = &t
	}
	return out
}
