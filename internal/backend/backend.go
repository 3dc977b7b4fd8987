// Package backend selects and constructs the ledger data store.
package backend

import (
	"context"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// Store is the persistence surface the rest of the application sees.
// Both the SQLite repository and the in-memory store implement it.
type Store interface {
	SnapshotLedger(ctx context.Context) (core.Snapshot, error)
	CreateTransaction(ctx context.Context, t core.Transaction) error
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	LatestBalance(ctx context.Context) (decimal.Decimal, error)
	Close() error
}

// Type names a supported store implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
