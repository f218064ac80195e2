// Package memory provides an in-memory storage.Store, used in tests and for
// running without a database.
package memory

import (
	"context"
	"sync"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps the snapshot in memory. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the stored snapshot.
func (s *Store) Load(ctx context.Context) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snapshot models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Clone()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
