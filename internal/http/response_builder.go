// This file shapes API responses. Monetary values are serialized as
// fixed two-decimal strings so clients never touch binary floats.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/report"
)

type transactionJSON struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Details   string `json:"details"`
	Category  string `json:"category"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
	ProjectID string `json:"project_id,omitempty"`
	StaffID   string `json:"staff_id,omitempty"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:        t.ID,
		Date:      t.Date.String(),
		Details:   t.Details,
		Category:  t.Category,
		Type:      string(t.Type),
		Amount:    core.FormatAmount(t.Amount),
		Balance:   core.FormatAmount(t.Balance),
		ProjectID: t.ProjectID,
		StaffID:   t.StaffID,
	}
}

func toTransactionsJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txs))
	for i, t := range txs {
		out[i] = toTransactionJSON(t)
	}
	return out
}

type categoryJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func toCategoriesJSON(cats []core.Category) []categoryJSON {
	out := make([]categoryJSON, len(cats))
	for i, c := range cats {
		out[i] = categoryJSON{ID: c.ID, Name: c.Name, Kind: string(c.Kind)}
	}
	return out
}

type staffJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Salary string `json:"salary"`
	Status string `json:"status"`
}

func toStaffJSON(staff []core.StaffMember) []staffJSON {
	out := make([]staffJSON, len(staff))
	for i, m := range staff {
		out[i] = staffJSON{ID: m.ID, Name: m.Name, Salary: core.FormatAmount(m.Salary), Status: string(m.Status)}
	}
	return out
}

type bucketJSON struct {
	Category     string            `json:"category"`
	Transactions []transactionJSON `json:"transactions"`
}

type summaryJSON struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Net          string `json:"net"`
}

func toSummaryJSON(s report.Summary) summaryJSON {
	return summaryJSON{
		TotalIncome:  core.FormatAmount(s.TotalIncome),
		TotalExpense: core.FormatAmount(s.TotalExpense),
		Net:          core.FormatAmount(s.Net),
	}
}

type profitAndLossJSON struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	GrossProfit  string `json:"gross_profit"`
	AmountOut    string `json:"amount_out"`
	NetProfit    string `json:"net_profit"`
}

func toProfitAndLossJSON(pl report.ProfitAndLoss) profitAndLossJSON {
	return profitAndLossJSON{
		TotalIncome:  core.FormatAmount(pl.TotalIncome),
		TotalExpense: core.FormatAmount(pl.TotalExpense),
		GrossProfit:  core.FormatAmount(pl.GrossProfit),
		AmountOut:    core.FormatAmount(pl.AmountOut),
		NetProfit:    core.FormatAmount(pl.NetProfit),
	}
}

type projectRowJSON struct {
	Name       string `json:"name"`
	ClientName string `json:"client_name"`
	Status     string `json:"status"`
	Budget     string `json:"budget"`
	Income     string `json:"income"`
	Expense    string `json:"expense"`
	Profit     string `json:"profit"`
	Margin     string `json:"margin"`
}

func toProjectRowsJSON(rows []report.ProjectRow) []projectRowJSON {
	out := make([]projectRowJSON, len(rows))
	for i, r := range rows {
		out[i] = projectRowJSON{
			Name:       r.Name,
			ClientName: r.ClientName,
			Status:     r.Status,
			Budget:     core.FormatAmount(r.Budget),
			Income:     core.FormatAmount(r.Income),
			Expense:    core.FormatAmount(r.Expense),
			Profit:     core.FormatAmount(r.Profit),
			Margin:     r.Margin.String(),
		}
	}
	return out
}

type categoryChartRowJSON struct {
	Category string `json:"category"`
	Income   string `json:"income"`
	Expense  string `json:"expense"`
}

type payrollJSON struct {
	TotalSalariesPaid      string `json:"total_salaries_paid"`
	TotalContractualSalary string `json:"total_contractual_salary"`
	ActiveStaff            int    `json:"active_staff"`
}

// envelope is the uniform response wrapper. Warnings report inputs
// that were ignored during fail-open parsing.
type envelope struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, warnings []string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data, Warnings: warnings}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
