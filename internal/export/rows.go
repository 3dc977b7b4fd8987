// Package export serializes report output to delimited flat files. Each
// report type assembles a Document with a fixed header and ordered
// records; one generic writer handles quoting and escaping for all of
// them.
package export

import (
	"tally/internal/core"
	"tally/internal/report"
)

// ContentType is the MIME type for every exported document.
const ContentType = "text/csv; charset=utf-8"

// Document is an ordered tabular export: a suggested filename, a header
// line and the data rows. Field values are final display strings;
// numeric fields carry plain decimal text with no thousands separators.
type Document struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// LedgerDocument builds the transaction-history export from an ordered
// (already filtered and sorted) transaction collection.
func LedgerDocument(txs []core.Transaction) Document {
	d := Document{
		Filename: "transaction_history.csv",
		Header:   []string{"Date", "Details", "Category", "Type", "Amount", "Balance"},
	}
	for _, t := range txs {
		d.Rows = append(d.Rows, []string{
			t.Date.String(),
			t.Details,
			t.Category,
			string(t.Type),
			core.FormatAmount(t.Amount),
			core.FormatAmount(t.Balance),
		})
	}
	return d
}

// ProjectDocument builds the project-profitability export.
func ProjectDocument(rows []report.ProjectRow) Document {
	d := Document{
		Filename: "project_profitability_report.csv",
		Header:   []string{"Project", "Client", "Status", "Budget", "Income", "Expense", "Profit", "Margin %"},
	}
	for _, r := range rows {
		d.Rows = append(d.Rows, []string{
			r.Name,
			r.ClientName,
			r.Status,
			core.FormatAmount(r.Budget),
			core.FormatAmount(r.Income),
			core.FormatAmount(r.Expense),
			core.FormatAmount(r.Profit),
			r.Margin.String(),
		})
	}
	return d
}

// PayrollDocument builds the salary-payments export from the payroll
// transaction history.
func PayrollDocument(payments []core.Transaction) Document {
	d := Document{
		Filename: "salary_payments.csv",
		Header:   []string{"Date", "Details", "Amount"},
	}
	for _, t := range payments {
		d.Rows = append(d.Rows, []string{
			t.Date.String(),
			t.Details,
			core.FormatAmount(t.Amount),
		})
	}
	return d
}
