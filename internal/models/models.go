package models

import (
	"time"

	"github.com/google/uuid"
)

type BuildStatus string

const (
	BuildRunning   BuildStatus = "running"
	BuildSucceeded BuildStatus = "succeeded"
	BuildFailed    BuildStatus = "failed"
)

// BuildRecord is one run of the static pre-render pipeline.
type BuildRecord struct {
	ID         uuid.UUID   `json:"id"`
	BaseURL    string      `json:"baseUrl"`
	OutDir     string      `json:"outDir"`
	Status     BuildStatus `json:"status"`
	Pages      int         `json:"pages"`
	Assets     int         `json:"assets"`
	Warnings   []string    `json:"warnings,omitempty"`
	Error      string      `json:"error,omitempty"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewBuildRecord creates a running build record with generated UUID and timestamps
func NewBuildRecord(baseURL, outDir string) *BuildRecord {
	now := time.Now()
	return &BuildRecord{
		ID:        uuid.New(),
		BaseURL:   baseURL,
		OutDir:    outDir,
		Status:    BuildRunning,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Finish stamps the record with its outcome. A nil err means the build succeeded.
func (b *BuildRecord) Finish(err error) {
	now := time.Now()
	b.FinishedAt = &now
	b.UpdatedAt = now
	if err != nil {
		b.Status = BuildFailed
		b.Error = err.Error()
		return
	}
	b.Status = BuildSucceeded
}
