package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

func TestSortTransactionsByDate(t *testing.T) {
	txs := sampleLedger()

	asc := SortTransactions(txs, Order{Key: SortByDate, Dir: Ascending})
	if asc[0].ID != "t1" || asc[3].ID != "t4" {
		t.Fatalf("unexpected ascending order: %v", ids(asc))
	}

	desc := SortTransactions(txs, DefaultOrder())
	if desc[0].ID != "t4" || desc[3].ID != "t1" {
		t.Fatalf("unexpected descending order: %v", ids(desc))
	}

	// Input untouched.
	if txs[0].ID != "t1" {
		t.Fatalf("sort must not mutate its input")
	}
}

func TestSortTransactionsStable(t *testing.T) {
	day := core.NewDate(2024, 3, 1)
	txs := []core.Transaction{
		tx("a", day, "first", "Sales", core.Income, 10),
		tx("b", day, "second", "Sales", core.Income, 10),
		tx("c", day, "third", "Sales", core.Income, 10),
	}
	for _, o := range []Order{
		{Key: SortByDate, Dir: Ascending},
		{Key: SortByDate, Dir: Descending},
		{Key: SortByAmount, Dir: Ascending},
		{Key: SortByAmount, Dir: Descending},
	} {
		got := SortTransactions(txs, o)
		if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
			t.Fatalf("%v: equal keys must keep input order, got %v", o, ids(got))
		}
	}
}

func TestSortTransactionsByAmount(t *testing.T) {
	got := SortTransactions(sampleLedger(), Order{Key: SortByAmount, Dir: Descending})
	if got[0].ID != "t1" || got[3].ID != "t4" {
		t.Fatalf("unexpected amount order: %v", ids(got))
	}
}

func TestSortTransactionsInvalidOrderFallsBack(t *testing.T) {
	got := SortTransactions(sampleLedger(), Order{Key: "color", Dir: "sideways"})
	if got[0].ID != "t4" {
		t.Fatalf("invalid order must fall back to date descending, got %v", ids(got))
	}
}

func TestSortProjectRows(t *testing.T) {
	rows := []ProjectRow{
		{Name: "beta", Profit: decimal.NewFromInt(50), Margin: decimal.NewFromInt(10)},
		{Name: "Alpha", Profit: decimal.NewFromInt(200), Margin: decimal.NewFromInt(40)},
		{Name: "gamma", Profit: decimal.NewFromInt(-30), Margin: decimal.Zero},
	}

	byName := SortProjectRows(rows, ByName, Ascending)
	if byName[0].Name != "Alpha" || byName[1].Name != "beta" || byName[2].Name != "gamma" {
		t.Fatalf("case-insensitive name order broken: %v", names(byName))
	}

	byProfit := SortProjectRows(rows, ByProfit, Descending)
	if byProfit[0].Name != "Alpha" || byProfit[2].Name != "gamma" {
		t.Fatalf("unexpected profit order: %v", names(byProfit))
	}

	byMargin := SortProjectRows(rows, ByMargin, Ascending)
	if byMargin[0].Name != "gamma" || byMargin[2].Name != "Alpha" {
		t.Fatalf("unexpected margin order: %v", names(byMargin))
	}
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func names(rows []ProjectRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
