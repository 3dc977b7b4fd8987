// Package memstore keeps the ledger in process memory. It backs local
// development and tests where a SQLite file would be in the way.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	transactions []core.Transaction
	categories   []core.Category
	projects     []core.Project
	staff        []core.StaffMember
}

// New returns a store seeded with the same default categories the
// SQLite migrations install.
func New() *Store {
	return &Store{
		categories: []core.Category{
			{ID: "cat-sales", Name: "Sales", Kind: core.IncomeCategory},
			{ID: "cat-rent", Name: "Rent", Kind: core.ExpenseCategory},
			{ID: "cat-utilities", Name: "Utilities", Kind: core.ExpenseCategory},
			{ID: "cat-materials", Name: "Materials", Kind: core.ExpenseCategory},
			{ID: "cat-salaries", Name: core.SalariesCategory, Kind: core.ExpenseCategory},
			{ID: "cat-owner-draw", Name: "Owner Draw", Kind: core.AmountOutCategory},
		},
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) SnapshotLedger(ctx context.Context) (core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := core.Snapshot{
		Transactions: make([]core.Transaction, len(s.transactions)),
		Categories:   append([]core.Category(nil), s.categories...),
		Projects:     append([]core.Project(nil), s.projects...),
		Staff:        append([]core.StaffMember(nil), s.staff...),
	}
	copy(snap.Transactions, s.transactions)
	// Chronological order, matching what the SQLite backend returns.
	sort.SliceStable(snap.Transactions, func(i, j int) bool {
		return snap.Transactions[i].Date.BeforeDay(snap.Transactions[j].Date)
	})
	return snap, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, storage.ErrNotFound
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// LatestBalance returns the balance of the most recently inserted
// entry, zero when the ledger is empty.
func (s *Store) LatestBalance(ctx context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.transactions) == 0 {
		return decimal.Zero, nil
	}
	return s.transactions[len(s.transactions)-1].Balance, nil
}

// SeedProjects replaces the project list. Intended for dev fixtures.
func (s *Store) SeedProjects(projects []core.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]core.Project(nil), projects...)
}

// SeedStaff replaces the staff roster. Intended for dev fixtures.
func (s *Store) SeedStaff(staff []core.StaffMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff = append([]core.StaffMember(nil), staff...)
}
