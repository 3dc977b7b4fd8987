package report

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tally/internal/core"
)

type (
	SortKey   string
	Direction string
	ProfitKey string
)

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"

	Ascending  Direction = "asc"
	Descending Direction = "desc"

	ByName    ProfitKey = "name"
	ByProfit  ProfitKey = "profit"
	ByIncome  ProfitKey = "income"
	ByExpense ProfitKey = "expense"
	ByMargin  ProfitKey = "margin"
)

// Order selects a transaction sort. The zero value is not valid; use
// DefaultOrder for the most-recent-first default.
type Order struct {
	Key SortKey
	Dir Direction
}

// DefaultOrder is date descending: most recent entries first.
func DefaultOrder() Order {
	return Order{Key: SortByDate, Dir: Descending}
}

func (k SortKey) Valid() bool {
	return k == SortByDate || k == SortByAmount
}

func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

func (k ProfitKey) Valid() bool {
	switch k {
	case ByName, ByProfit, ByIncome, ByExpense, ByMargin:
		return true
	default:
		return false
	}
}

// SortTransactions returns a reordered copy of txs. The sort is stable:
// records with equal keys keep their input relative order.
func SortTransactions(txs []core.Transaction, o Order) []core.Transaction {
	if !o.Key.Valid() || !o.Dir.Valid() {
		o = DefaultOrder()
	}
	out := make([]core.Transaction, len(txs))
	copy(out, txs)

	less := func(a, b core.Transaction) bool {
		switch o.Key {
		case SortByAmount:
			return a.Amount.LessThan(b.Amount)
		default:
			return a.Date.BeforeDay(b.Date)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if o.Dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// SortProjectRows returns a reordered copy of profitability rows. Name
// ordering is locale-aware; numeric keys compare by value. Stability
// matches SortTransactions.
func SortProjectRows(rows []ProjectRow, key ProfitKey, dir Direction) []ProjectRow {
	if !key.Valid() {
		key = ByName
	}
	if !dir.Valid() {
		dir = Ascending
	}
	out := make([]ProjectRow, len(rows))
	copy(out, rows)

	// Collators are not safe for concurrent use, so build one per call.
	coll := collate.New(language.Und, collate.IgnoreCase)

	less := func(a, b ProjectRow) bool {
		switch key {
		case ByProfit:
			return a.Profit.LessThan(b.Profit)
		case ByIncome:
			return a.Income.LessThan(b.Income)
		case ByExpense:
			return a.Expense.LessThan(b.Expense)
		case ByMargin:
			return a.Margin.LessThan(b.Margin)
		default:
			return coll.CompareString(a.Name, b.Name) < 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
