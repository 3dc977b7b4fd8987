package services

import (
	"context"
	"fmt"

	"tally/internal/backend"
	"tally/internal/core"
	"tally/internal/report"
)

// ReportService computes read-only views over the ledger. Every call
// takes one snapshot of the store, so the views of a single request
// are mutually consistent.
type ReportService struct {
	store backend.Store
}

func NewReportService(store backend.Store) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) snapshot(ctx context.Context) (core.Snapshot, error) {
	snap, err := s.store.SnapshotLedger(ctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("snapshot ledger: %w", err)
	}
	return snap, nil
}

// Ledger returns the filtered transaction history in the requested
// order.
func (s *ReportService) Ledger(ctx context.Context, f report.Filter, order report.Order) ([]core.Transaction, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.SortTransactions(report.Apply(snap.Transactions, f), order), nil
}

// Grouped returns the filtered history bucketed by category.
func (s *ReportService) Grouped(ctx context.Context, f report.Filter, order report.Order) ([]report.Bucket, error) {
	txs, err := s.Ledger(ctx, f, order)
	if err != nil {
		return nil, err
	}
	return report.GroupByCategory(txs), nil
}

// Summary returns filtered income, expense and net totals.
func (s *ReportService) Summary(ctx context.Context, f report.Filter) (report.Summary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(report.Apply(snap.Transactions, f)), nil
}

// ProfitAndLoss builds the P&L statement for a bounded period.
func (s *ReportService) ProfitAndLoss(ctx context.Context, f report.Filter) (report.ProfitAndLoss, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.ProfitAndLoss{}, err
	}
	return report.ComputeProfitAndLoss(snap.Transactions, f)
}

// Projects returns per-project profitability rows sorted by the given
// column.
func (s *ReportService) Projects(ctx context.Context, f report.Filter, key report.ProfitKey, dir report.Direction) ([]report.ProjectRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := report.ProjectProfitability(report.Apply(snap.Transactions, f), snap.Projects)
	return report.SortProjectRows(rows, key, dir), nil
}

// CategoryChart returns per-category income and expense totals for the
// dashboard chart.
func (s *ReportService) CategoryChart(ctx context.Context, f report.Filter) ([]report.CategoryChartRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.CategoryChart(report.Apply(snap.Transactions, f)), nil
}

// Payroll summarizes salary spend. It always runs over the full
// history, date filters do not apply here.
func (s *ReportService) Payroll(ctx context.Context) (report.Payroll, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.Payroll{}, err
	}
	return report.SummarizePayroll(snap.Transactions, snap.Staff), nil
}

// SalaryPayments returns the payroll transaction history, oldest
// first.
func (s *ReportService) SalaryPayments(ctx context.Context) ([]core.Transaction, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.SalaryPayments(snap.Transactions), nil
}

// Categories lists the known category taxonomy.
func (s *ReportService) Categories(ctx context.Context) ([]core.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// Staff lists the staff roster.
func (s *ReportService) Staff(ctx context.Context) ([]core.StaffMember, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Staff, nil
}
