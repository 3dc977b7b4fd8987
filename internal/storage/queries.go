package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps the raw SQL statements for the ledger schema.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// TransactionRow is the wire form of a ledger entry. Monetary columns
// are stored as decimal text and parsed at the repository boundary.
type TransactionRow struct {
	ID           string
	TxDate       string
	Details      string
	Category     string
	TxType       string
	Amount       string
	Balance      string
	ProjectID    string
	StaffID      string
	MirrorStatus string
	CreatedAt    time.Time
}

type CategoryRow struct {
	ID   string
	Name string
	Kind string
}

type ProjectRow struct {
	ID         string
	Name       string
	ClientName string
	Budget     string
	Status     string
}

type StaffRow struct {
	ID     string
	Name   string
	Salary string
	Status string
}

type CreateTransactionParams struct {
	ID        string
	TxDate    string
	Details   string
	Category  string
	TxType    string
	Amount    string
	Balance   string
	ProjectID string
	StaffID   string
}

const createTransaction = `
INSERT INTO transactions (id, tx_date, details, category, tx_type, amount, balance, project_id, staff_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateTransaction(ctx context.Context, p CreateTransactionParams) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		p.ID, p.TxDate, p.Details, p.Category, p.TxType, p.Amount, p.Balance, p.ProjectID, p.StaffID)
	return err
}

const getTransaction = `
SELECT id, tx_date, details, category, tx_type, amount, balance, project_id, staff_id, mirror_status, created_at
FROM transactions
WHERE id = ? AND deleted_at IS NULL
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (TransactionRow, error) {
	var r TransactionRow
	err := q.db.QueryRowContext(ctx, getTransaction, id).Scan(
		&r.ID, &r.TxDate, &r.Details, &r.Category, &r.TxType,
		&r.Amount, &r.Balance, &r.ProjectID, &r.StaffID, &r.MirrorStatus, &r.CreatedAt)
	return r, err
}

const listTransactions = `
SELECT id, tx_date, details, category, tx_type, amount, balance, project_id, staff_id, mirror_status, created_at
FROM transactions
WHERE deleted_at IS NULL
ORDER BY tx_date ASC, created_at ASC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var r TransactionRow
		if err := rows.Scan(
			&r.ID, &r.TxDate, &r.Details, &r.Category, &r.TxType,
			&r.Amount, &r.Balance, &r.ProjectID, &r.StaffID, &r.MirrorStatus, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const softDeleteTransaction = `
UPDATE transactions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL
`

func (q *Queries) SoftDeleteTransaction(ctx context.Context, id string, deletedAt string) (int64, error) {
	res, err := q.db.ExecContext(ctx, softDeleteTransaction, deletedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const latestBalance = `
SELECT balance FROM transactions
WHERE deleted_at IS NULL
ORDER BY tx_date DESC, created_at DESC
LIMIT 1
`

// LatestBalance returns the running balance of the most recent live
// entry, or sql.ErrNoRows on an empty ledger.
func (q *Queries) LatestBalance(ctx context.Context) (string, error) {
	var b string
	err := q.db.QueryRowContext(ctx, latestBalance).Scan(&b)
	return b, err
}

const listCategories = `
SELECT id, name, kind FROM categories ORDER BY name ASC
`

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryRow
	for rows.Next() {
		var r CategoryRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const listProjects = `
SELECT id, name, client_name, budget, status FROM projects ORDER BY name ASC
`

func (q *Queries) ListProjects(ctx context.Context) ([]ProjectRow, error) {
	rows, err := q.db.QueryContext(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectRow
	for rows.Next() {
		var r ProjectRow
		if err := rows.Scan(&r.ID, &r.Name, &r.ClientName, &r.Budget, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const listStaff = `
SELECT id, name, salary, status FROM staff ORDER BY name ASC
`

func (q *Queries) ListStaff(ctx context.Context) ([]StaffRow, error) {
	rows, err := q.db.QueryContext(ctx, listStaff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StaffRow
	for rows.Next() {
		var r StaffRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Salary, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const getPendingMirror = `
SELECT id, tx_date, details, category, tx_type, amount, balance, project_id, staff_id, mirror_status, created_at
FROM transactions
WHERE deleted_at IS NULL AND mirror_status = 'pending'
ORDER BY created_at ASC
LIMIT ?
`

func (q *Queries) GetPendingMirror(ctx context.Context, limit int64) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, getPendingMirror, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRow
	for rows.Next() {
		var r TransactionRow
		if err := rows.Scan(
			&r.ID, &r.TxDate, &r.Details, &r.Category, &r.TxType,
			&r.Amount, &r.Balance, &r.ProjectID, &r.StaffID, &r.MirrorStatus, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const markMirrored = `
UPDATE transactions SET mirror_status = 'mirrored' WHERE id = ?
`

func (q *Queries) MarkMirrored(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markMirrored, id)
	return err
}

const markMirrorError = `
UPDATE transactions SET mirror_status = 'error' WHERE id = ?
`

func (q *Queries) MarkMirrorError(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, markMirrorError, id)
	return err
}
