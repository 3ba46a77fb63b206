package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu    sync.RWMutex
	runs  []store.Run
	index map[string]int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AppendRun implements store.Store. Appending an existing id replaces it.
func (s *Store) AppendRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id required", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r = copyRun(r)
	if i, ok := s.index[r.ID]; ok {
		s.runs[i] = r
		return nil
	}
	s.index[r.ID] = len(s.runs)
	s.runs = append(s.runs, r)
	return nil
}

// GetRun implements store.Store.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(s.runs[i]), nil
}

// RecentRuns implements store.Store.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.Run, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, copyRun(s.runs[i]))
	}
	return result, nil
}

func copyRun(r store.Run) store.Run {
	r.Decisions = append([]store.Decision(nil), r.Decisions...)
	return r
}
