// Package store owns the single process-wide dataset. An admin upload
// replaces it wholesale; every render pass works on one pointer
// snapshot, so an in-flight view never observes a half-replaced table.
// Last writer wins across uploads; single-admin operation is assumed.
package store

import (
	"sync"

	"skillboard/domain/tabular"
)

// DatasetStore guards the current dataset behind a read-write lock.
type DatasetStore struct {
	mu      sync.RWMutex
	current *tabular.Dataset
}

// NewDatasetStore creates an empty store (no dataset loaded).
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Snapshot returns the current dataset pointer for one render pass, or
// nil when nothing is loaded. The returned dataset is never mutated.
func (s *DatasetStore) Snapshot() *tabular.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a freshly parsed dataset.
func (s *DatasetStore) Replace(ds *tabular.Dataset) {
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
}

// Loaded reports whether a dataset is available.
func (s *DatasetStore) Loaded() bool {
	return s.Snapshot() != nil
}
