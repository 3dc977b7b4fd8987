package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

func tx(id string, date core.Date, details, category string, typ core.TransactionType, amount int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Date:     date,
		Details:  details,
		Category: category,
		Type:     typ,
		Amount:   decimal.NewFromInt(amount),
	}
}

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		tx("t1", core.NewDate(2024, 1, 5), "web design deposit", "Sales", core.Income, 1000),
		tx("t2", core.NewDate(2024, 1, 10), "office rent january", "Rent", core.Expense, 400),
		tx("t3", core.NewDate(2024, 2, 1), "owner draw", "Owner Draw", core.AmountOut, 200),
		tx("t4", core.NewDate(2024, 2, 3), "Web hosting renewal", "Utilities", core.Expense, 30),
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	txs := sampleLedger()
	got := Apply(txs, Filter{})
	if len(got) != len(txs) {
		t.Fatalf("empty filter should pass all, got %d", len(got))
	}
	for i := range got {
		if got[i].ID != txs[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, got[i].ID, txs[i].ID)
		}
	}
}

func TestDateRangeInclusiveDayGranular(t *testing.T) {
	// Same calendar day, late in the evening: must still pass a filter
	// bounded exactly on that day.
	late := core.Transaction{
		ID:       "late",
		Date:     core.Date{Time: time.Date(2024, 1, 31, 23, 45, 0, 0, time.UTC)},
		Details:  "late invoice",
		Category: "Sales",
		Type:     core.Income,
		Amount:   decimal.NewFromInt(50),
	}
	txs := append(sampleLedger(), late)

	f := Filter{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	got := Apply(txs, f)
	if len(got) != 3 {
		t.Fatalf("expected 3 january records, got %d", len(got))
	}
	if got[2].ID != "late" {
		t.Fatalf("transaction on the end date must be included")
	}

	// Start bound is inclusive too.
	f = Filter{Start: core.NewDate(2024, 1, 5), End: core.NewDate(2024, 1, 5)}
	got = Apply(txs, f)
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("expected exactly t1, got %v", got)
	}
}

func TestCategoryFilter(t *testing.T) {
	txs := sampleLedger()

	got := Apply(txs, Filter{Categories: []string{"Rent", "Utilities"}})
	if len(got) != 2 || got[0].ID != "t2" || got[1].ID != "t4" {
		t.Fatalf("unexpected category filter result: %v", got)
	}

	// Empty set means all categories.
	if got := Apply(txs, Filter{Categories: nil}); len(got) != 4 {
		t.Fatalf("empty category set must pass everything, got %d", len(got))
	}
}

func TestSearchFilterCaseInsensitive(t *testing.T) {
	txs := sampleLedger()
	got := Apply(txs, Filter{Search: "WEB"})
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t4" {
		t.Fatalf("expected t1 and t4 for 'WEB', got %v", got)
	}
	if got := Apply(txs, Filter{Search: "   "}); len(got) != 4 {
		t.Fatalf("blank search must pass everything")
	}
}

func TestFiltersCombineConjunctively(t *testing.T) {
	txs := sampleLedger()
	f := Filter{
		Start:      core.NewDate(2024, 1, 1),
		End:        core.NewDate(2024, 12, 31),
		Categories: []string{"Sales", "Utilities"},
		Search:     "web",
	}
	got := Apply(txs, f)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	f.End = core.NewDate(2024, 1, 31)
	if got := Apply(txs, f); len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("tightening one criterion must narrow the result: %v", got)
	}
}
