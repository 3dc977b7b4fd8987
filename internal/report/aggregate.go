package report

import (
	"errors"

	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// ErrInsufficientRange signals a profit & loss request without both
// date bounds. It guards against accidentally summarizing all-time data
// when the user intends a period report; the caller renders a prompt.
var ErrInsufficientRange = errors.New("profit and loss requires both a start and an end date")

var hundred = decimal.NewFromInt(100)

type (
	// Summary is the general-ledger scalar view of a filtered set.
	Summary struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
		Net          decimal.Decimal
	}

	// ProfitAndLoss extends Summary with owner/partner payments:
	// gross profit before AMOUNT_OUT, net profit after.
	ProfitAndLoss struct {
		Start        core.Date
		End          core.Date
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
		GrossProfit  decimal.Decimal
		AmountOut    decimal.Decimal
		NetProfit    decimal.Decimal
	}

	// ProjectRow is the derived profitability of one project.
	ProjectRow struct {
		ProjectID  string
		Name       string
		ClientName string
		Status     string
		Budget     decimal.Decimal
		Income     decimal.Decimal
		Expense    decimal.Decimal
		Profit     decimal.Decimal
		Margin     decimal.Decimal // percent, 0 when income is 0
	}

	// CategoryChartRow is one chart slice: income/expense per category.
	CategoryChartRow struct {
		Category string
		Income   decimal.Decimal
		Expense  decimal.Decimal
	}

	// Payroll summarizes salary payments and the roster projection.
	Payroll struct {
		TotalSalariesPaid      decimal.Decimal // all-time, from the reserved Salaries category
		TotalContractualSalary decimal.Decimal // roster snapshot over Active staff
		ActiveStaff            int
	}
)

// Summarize computes ledger totals over an already filtered collection.
// An empty collection yields all-zero totals.
func Summarize(txs []core.Transaction) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// ComputeProfitAndLoss filters txs by f and derives the P&L figures.
// Both bounds of f must be set; otherwise ErrInsufficientRange is
// returned and no totals are computed.
func ComputeProfitAndLoss(txs []core.Transaction, f Filter) (ProfitAndLoss, error) {
	if !f.Bounded() {
		return ProfitAndLoss{}, ErrInsufficientRange
	}
	pl := ProfitAndLoss{
		Start:        f.Start,
		End:          f.End,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		AmountOut:    decimal.Zero,
	}
	for _, t := range Apply(txs, f) {
		switch t.Type {
		case core.Income:
			pl.TotalIncome = pl.TotalIncome.Add(t.Amount)
		case core.Expense:
			pl.TotalExpense = pl.TotalExpense.Add(t.Amount)
		case core.AmountOut:
			pl.AmountOut = pl.AmountOut.Add(t.Amount)
		}
	}
	pl.GrossProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	pl.NetProfit = pl.GrossProfit.Sub(pl.AmountOut)
	return pl, nil
}

// ProjectProfitability derives income, expense, profit and margin per
// project from the filtered collection. Rows follow the order of the
// projects slice; projects without matching transactions still appear
// with zero totals so the report covers the whole portfolio.
func ProjectProfitability(txs []core.Transaction, projects []core.Project) []ProjectRow {
	rows := make([]ProjectRow, 0, len(projects))
	byProject := make(map[string]*ProjectRow, len(projects))
	for _, p := range projects {
		rows = append(rows, ProjectRow{
			ProjectID:  p.ID,
			Name:       p.Name,
			ClientName: p.ClientName,
			Status:     p.Status,
			Budget:     p.Budget,
			Income:     decimal.Zero,
			Expense:    decimal.Zero,
		})
		byProject[p.ID] = &rows[len(rows)-1]
	}
	for _, t := range txs {
		row, ok := byProject[t.ProjectID]
		if !ok {
			continue
		}
		switch t.Type {
		case core.Income:
			row.Income = row.Income.Add(t.Amount)
		case core.Expense:
			row.Expense = row.Expense.Add(t.Amount)
		}
	}
	for i := range rows {
		rows[i].Profit = rows[i].Income.Sub(rows[i].Expense)
		rows[i].Margin = margin(rows[i].Profit, rows[i].Income)
	}
	return rows
}

// margin is profit as a percentage of income, 0 when income is 0 so a
// loss-making project without revenue never yields NaN or infinity.
func margin(profit, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return profit.Mul(hundred).Div(income).Round(2)
}

// CategoryChart aggregates an income/expense pair per category for
// chart rendering. Categories where both values are zero are dropped
// from chart output; row order follows first appearance in txs.
func CategoryChart(txs []core.Transaction) []CategoryChartRow {
	index := make(map[string]int, len(txs))
	var all []CategoryChartRow
	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(all)
			index[t.Category] = i
			all = append(all, CategoryChartRow{
				Category: t.Category,
				Income:   decimal.Zero,
				Expense:  decimal.Zero,
			})
		}
		switch t.Type {
		case core.Income:
			all[i].Income = all[i].Income.Add(t.Amount)
		case core.Expense:
			all[i].Expense = all[i].Expense.Add(t.Amount)
		}
	}
	out := make([]CategoryChartRow, 0, len(all))
	for _, row := range all {
		if row.Income.IsZero() && row.Expense.IsZero() {
			continue
		}
		out = append(out, row)
	}
	return out
}

// SummarizePayroll derives payroll totals. Salary payments are summed
// over the full transaction collection regardless of any date filter
// applied elsewhere; the contractual figure is a roster snapshot over
// Active staff only.
func SummarizePayroll(txs []core.Transaction, staff []core.StaffMember) Payroll {
	p := Payroll{
		TotalSalariesPaid:      decimal.Zero,
		TotalContractualSalary: decimal.Zero,
	}
	for _, t := range txs {
		if t.Category == core.SalariesCategory {
			p.TotalSalariesPaid = p.TotalSalariesPaid.Add(t.Amount)
		}
	}
	for _, s := range staff {
		if s.Status == core.StaffActive {
			p.TotalContractualSalary = p.TotalContractualSalary.Add(s.Salary)
			p.ActiveStaff++
		}
	}
	return p
}

// SalaryPayments returns the salary transactions themselves, for the
// payroll history table and export.
func SalaryPayments(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.Category == core.SalariesCategory {
			out = append(out, t)
		}
	}
	return out
}
