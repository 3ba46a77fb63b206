// Package store persists the history of rewrite runs. History is write-only
// from the pipeline's point of view: nothing recorded here feeds back into
// lookups.
package store

import (
	"context"
	"time"
)

// Store records rewrite runs.
type Store interface {
	Close() error

	AppendRun(ctx context.Context, r Run) error
	// GetRun returns internalerr.ErrNotFound for unknown ids.
	GetRun(ctx context.Context, id string) (Run, error)
	// RecentRuns returns up to limit runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run statuses
const (
	StatusOK          = "ok"
	StatusTooLong     = "too_long"
	StatusRateLimited = "rate_limited"
	StatusCanceled    = "canceled"
	StatusError       = "error"
)

// Run is one call to the rewrite pipeline.
type Run struct {
	ID        string     `json:"id"` // ULID, sortable by creation time
	Input     string     `json:"input"`
	Output    string     `json:"output"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	Decisions []Decision `json:"decisions"`
}

// Decision is the per-token outcome of a run.
type Decision struct {
	Word        string `json:"word"`
	Tag         string `json:"tag"`
	WordType    string `json:"word_type,omitempty"`
	Reason      string `json:"reason"`
	Replacement string `json:"replacement,omitempty"`
}

// DefaultLimit applies when RecentRuns is called with a non-positive limit.
const DefaultLimit = 20
