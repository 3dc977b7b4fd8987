package report

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger())
	if s.TotalIncome.String() != "1000" {
		t.Fatalf("income: got %s", s.TotalIncome)
	}
	if s.TotalExpense.String() != "430" {
		t.Fatalf("expense: got %s", s.TotalExpense)
	}
	if s.Net.String() != "570" {
		t.Fatalf("net: got %s", s.Net)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.TotalIncome.IsZero() || !s.TotalExpense.IsZero() || !s.Net.IsZero() {
		t.Fatalf("empty set must summarize to zeros, got %+v", s)
	}
}

func TestComputeProfitAndLossJanuary(t *testing.T) {
	// The february owner draw must fall outside the january window.
	f := Filter{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 1, 31)}
	pl, err := ComputeProfitAndLoss(sampleLedger(), f)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if pl.TotalIncome.String() != "1000" || pl.TotalExpense.String() != "400" {
		t.Fatalf("unexpected totals: %+v", pl)
	}
	if pl.GrossProfit.String() != "600" {
		t.Fatalf("gross profit: got %s", pl.GrossProfit)
	}
	if !pl.AmountOut.IsZero() {
		t.Fatalf("february draw leaked into january: %s", pl.AmountOut)
	}
	if pl.NetProfit.String() != "600" {
		t.Fatalf("net profit: got %s", pl.NetProfit)
	}
}

func TestComputeProfitAndLossDeductsAmountOut(t *testing.T) {
	f := Filter{Start: core.NewDate(2024, 1, 1), End: core.NewDate(2024, 12, 31)}
	pl, err := ComputeProfitAndLoss(sampleLedger(), f)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if pl.GrossProfit.String() != "570" || pl.AmountOut.String() != "200" || pl.NetProfit.String() != "370" {
		t.Fatalf("unexpected P&L: %+v", pl)
	}
	// The accounting identities hold exactly.
	if !pl.GrossProfit.Equal(pl.TotalIncome.Sub(pl.TotalExpense)) {
		t.Fatalf("gross profit identity broken")
	}
	if !pl.NetProfit.Equal(pl.GrossProfit.Sub(pl.AmountOut)) {
		t.Fatalf("net profit identity broken")
	}
}

func TestComputeProfitAndLossRequiresBothBounds(t *testing.T) {
	cases := []Filter{
		{},
		{Start: core.NewDate(2024, 1, 1)},
		{End: core.NewDate(2024, 1, 31)},
	}
	for i, f := range cases {
		if _, err := ComputeProfitAndLoss(sampleLedger(), f); !errors.Is(err, ErrInsufficientRange) {
			t.Fatalf("case %d: expected ErrInsufficientRange, got %v", i, err)
		}
	}
}

func TestSummationIsExact(t *testing.T) {
	// Thousands of 0.10 entries: a float accumulator would drift, an
	// exact decimal one must land on the whole number.
	var txs []core.Transaction
	tenCents := decimal.RequireFromString("0.10")
	for i := 0; i < 10000; i++ {
		txs = append(txs, core.Transaction{
			Date: core.NewDate(2024, 1, 1), Details: "d", Category: "Sales",
			Type: core.Income, Amount: tenCents,
		})
	}
	s := Summarize(txs)
	if !s.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected exactly 1000, got %s", s.TotalIncome)
	}
}

func TestProjectProfitability(t *testing.T) {
	projects := []core.Project{
		{ID: "p1", Name: "Website", ClientName: "Acme", Budget: decimal.NewFromInt(2000), Status: "ACTIVE"},
		{ID: "p2", Name: "Rebrand", ClientName: "Globex", Budget: decimal.NewFromInt(500), Status: "ACTIVE"},
	}
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 1, 2), Details: "deposit", Category: "Sales", Type: core.Income, Amount: decimal.NewFromInt(1000), ProjectID: "p1"},
		{Date: core.NewDate(2024, 1, 3), Details: "stock", Category: "Materials", Type: core.Expense, Amount: decimal.NewFromInt(250), ProjectID: "p1"},
		{Date: core.NewDate(2024, 1, 4), Details: "fonts", Category: "Materials", Type: core.Expense, Amount: decimal.NewFromInt(75), ProjectID: "p2"},
		{Date: core.NewDate(2024, 1, 5), Details: "unattributed", Category: "Sales", Type: core.Income, Amount: decimal.NewFromInt(999)},
	}

	rows := ProjectProfitability(txs, projects)
	if len(rows) != 2 {
		t.Fatalf("expected one row per project, got %d", len(rows))
	}

	p1 := rows[0]
	if p1.Income.String() != "1000" || p1.Expense.String() != "250" || p1.Profit.String() != "750" {
		t.Fatalf("p1 totals wrong: %+v", p1)
	}
	if p1.Margin.String() != "75" {
		t.Fatalf("p1 margin: got %s", p1.Margin)
	}

	// Zero income: margin must be 0, not NaN or negative infinity.
	p2 := rows[1]
	if p2.Profit.String() != "-75" || !p2.Margin.IsZero() {
		t.Fatalf("p2 must have zero margin on zero income: %+v", p2)
	}
}

func TestCategoryChartDropsZeroPairs(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 1, 1), Details: "a", Category: "Sales", Type: core.Income, Amount: decimal.NewFromInt(100)},
		{Date: core.NewDate(2024, 1, 2), Details: "b", Category: "Owner Draw", Type: core.AmountOut, Amount: decimal.NewFromInt(50)},
		{Date: core.NewDate(2024, 1, 3), Details: "c", Category: "Rent", Type: core.Expense, Amount: decimal.NewFromInt(40)},
	}
	rows := CategoryChart(txs)
	// Owner Draw contributes neither income nor expense, so it is
	// dropped from the chart.
	if len(rows) != 2 || rows[0].Category != "Sales" || rows[1].Category != "Rent" {
		t.Fatalf("unexpected chart rows: %v", rows)
	}
}

func TestSummarizePayroll(t *testing.T) {
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 1, 31), Details: "jan salaries", Category: core.SalariesCategory, Type: core.Expense, Amount: decimal.NewFromInt(1800)},
		{Date: core.NewDate(2024, 2, 29), Details: "feb salaries", Category: core.SalariesCategory, Type: core.Expense, Amount: decimal.NewFromInt(1800)},
		{Date: core.NewDate(2024, 2, 10), Details: "rent", Category: "Rent", Type: core.Expense, Amount: decimal.NewFromInt(400)},
	}
	staff := []core.StaffMember{
		{Name: "Amina", Salary: decimal.NewFromInt(900), Status: core.StaffActive},
		{Name: "Ben", Salary: decimal.NewFromInt(900), Status: core.StaffActive},
		{Name: "Clio", Salary: decimal.NewFromInt(800), Status: core.StaffInactive},
	}

	p := SummarizePayroll(txs, staff)
	if p.TotalSalariesPaid.String() != "3600" {
		t.Fatalf("salaries paid: got %s", p.TotalSalariesPaid)
	}
	if p.TotalContractualSalary.String() != "1800" || p.ActiveStaff != 2 {
		t.Fatalf("inactive staff must not count: %+v", p)
	}

	payments := SalaryPayments(txs)
	if len(payments) != 2 {
		t.Fatalf("expected 2 salary payments, got %d", len(payments))
	}
}
