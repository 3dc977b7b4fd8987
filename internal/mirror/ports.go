// Package mirror defines the outbound sheet the ledger is copied to.
// The admin team keeps a shared spreadsheet as an always-available,
// read-only backup of the books.
package mirror

import (
	"context"

	"tally/internal/core"
)

// EntryAppender writes one ledger entry to the mirror sheet.
type EntryAppender interface {
	AppendEntry(ctx context.Context, t core.Transaction) error
}

// EntryRemover deletes a mirrored entry by ledger ID.
type EntryRemover interface {
	RemoveEntry(ctx context.Context, id string) error
}

// Sheet is the full mirror surface the worker drives.
type Sheet interface {
	EntryAppender
	EntryRemover
}
