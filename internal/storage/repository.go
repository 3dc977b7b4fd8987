package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound signals a lookup for an entry that does not exist or has
// been deleted.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SnapshotLedger loads the full live dataset in one pass. Reports run
// against a snapshot so every view of a request sees the same data.
func (r *SQLiteRepository) SnapshotLedger(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot

	txRows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return snap, fmt.Errorf("list transactions: %w", err)
	}
	snap.Transactions = make([]core.Transaction, 0, len(txRows))
	for _, row := range txRows {
		snap.Transactions = append(snap.Transactions, r.toTransaction(ctx, row))
	}

	catRows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return snap, fmt.Errorf("list categories: %w", err)
	}
	for _, row := range catRows {
		snap.Categories = append(snap.Categories, core.Category{ID: row.ID, Name: row.Name, Kind: core.CategoryKind(row.Kind)})
	}

	projRows, err := r.queries.ListProjects(ctx)
	if err != nil {
		return snap, fmt.Errorf("list projects: %w", err)
	}
	for _, row := range projRows {
		snap.Projects = append(snap.Projects, core.Project{
			ID:         row.ID,
			Name:       row.Name,
			ClientName: row.ClientName,
			Budget:     r.storedAmount(ctx, row.ID, "budget", row.Budget),
			Status:     row.Status,
		})
	}

	staffRows, err := r.queries.ListStaff(ctx)
	if err != nil {
		return snap, fmt.Errorf("list staff: %w", err)
	}
	for _, row := range staffRows {
		snap.Staff = append(snap.Staff, core.StaffMember{
			ID:     row.ID,
			Name:   row.Name,
			Salary: r.storedAmount(ctx, row.ID, "salary", row.Salary),
			Status: core.StaffStatus(row.Status),
		})
	}

	return snap, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:        t.ID,
		TxDate:    t.Date.String(),
		Details:   t.Details,
		Category:  t.Category,
		TxType:    string(t.Type),
		Amount:    t.Amount.String(),
		Balance:   t.Balance.String(),
		ProjectID: t.ProjectID,
		StaffID:   t.StaffID,
	})
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"details", t.Details,
		"type", t.Type,
		"amount", t.Amount.String(),
		"date", t.Date.String())
	return nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return r.toTransaction(ctx, row), nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	affected, err := r.queries.SoftDeleteTransaction(ctx, id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// LatestBalance returns the running balance after the most recent live
// entry, zero on an empty ledger.
func (r *SQLiteRepository) LatestBalance(ctx context.Context) (decimal.Decimal, error) {
	raw, err := r.queries.LatestBalance(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("latest balance: %w", err)
	}
	return r.storedAmount(ctx, "latest", "balance", raw), nil
}

// GetPendingMirrorEntries returns entries not yet copied to the
// external mirror sheet.
func (r *SQLiteRepository) GetPendingMirrorEntries(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.GetPendingMirror(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending mirror entries: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.toTransaction(ctx, row))
	}
	return out, nil
}

func (r *SQLiteRepository) MarkMirrored(ctx context.Context, id string) error {
	if err := r.queries.MarkMirrored(ctx, id); err != nil {
		return fmt.Errorf("mark mirrored: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as mirrored", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkMirrorError(ctx context.Context, id string) error {
	if err := r.queries.MarkMirrorError(ctx, id); err != nil {
		return fmt.Errorf("mark mirror error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with mirror error", "id", id)
	return nil
}

// toTransaction converts a stored row to the domain form. Bad stored
// values degrade instead of failing the whole load: an unparseable
// date yields an un-dated entry, an unparseable amount yields zero.
func (r *SQLiteRepository) toTransaction(ctx context.Context, row TransactionRow) core.Transaction {
	t := core.Transaction{
		ID:        row.ID,
		Details:   row.Details,
		Category:  row.Category,
		Type:      core.TransactionType(row.TxType),
		Amount:    r.storedAmount(ctx, row.ID, "amount", row.Amount),
		Balance:   r.storedAmount(ctx, row.ID, "balance", row.Balance),
		ProjectID: row.ProjectID,
		StaffID:   row.StaffID,
	}

	d, err := core.ParseDate(row.TxDate)
	if err != nil {
		slog.WarnContext(ctx, "Stored transaction has malformed date",
			"id", row.ID, "raw", row.TxDate)
	} else {
		t.Date = d
	}
	return t
}

func (r *SQLiteRepository) storedAmount(ctx context.Context, id, field, raw string) decimal.Decimal {
	v, ok := core.ParseStoredAmount(raw)
	if !ok {
		slog.WarnContext(ctx, "Stored value is not a valid amount, treating as zero",
			"id", id, "field", field, "raw", raw)
	}
	return v
}
