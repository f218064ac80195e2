// Package storage provides abstractions for persisting ledger snapshots.
package storage

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// Store persists the authoritative ledger snapshot. The engine treats it as
// an opaque load/save pair; each successful mutation is followed by one Save
// of the full new state. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// Load returns the last saved snapshot, or an empty snapshot when
	// nothing has been saved yet.
	Load(ctx context.Context) (models.Snapshot, error)

	// Save replaces the persisted state with the given snapshot.
	Save(ctx context.Context, snapshot models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
