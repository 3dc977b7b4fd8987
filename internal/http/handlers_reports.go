package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/report"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())

	sum, err := s.reports.Summary(r.Context(), p.Filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, toSummaryJSON(sum), p.Warnings)
}

// handleProfitAndLoss requires both period bounds: an unbounded P&L
// statement is meaningless, so it refuses rather than guessing.
func (s *Server) handleProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())

	pl, err := s.reports.ProfitAndLoss(r.Context(), p.Filter)
	if errors.Is(err, report.ErrInsufficientRange) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build P&L", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build profit and loss")
		return
	}
	writeJSON(w, http.StatusOK, toProfitAndLossJSON(pl), p.Warnings)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())
	key, dir, warnings := ParseProjectSort(r.URL.Query())
	// Date warnings and sort warnings both surface.
	warnings = append(p.Warnings, warnings...)

	rows, err := s.reports.Projects(r.Context(), p.Filter, key, dir)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build project report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build project report")
		return
	}
	writeJSON(w, http.StatusOK, toProjectRowsJSON(rows), warnings)
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())

	rows, err := s.reports.CategoryChart(r.Context(), p.Filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build category chart", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build category chart")
		return
	}
	out := make([]categoryChartRowJSON, len(rows))
	for i, row := range rows {
		out[i] = categoryChartRowJSON{
			Category: row.Category,
			Income:   core.FormatAmount(row.Income),
			Expense:  core.FormatAmount(row.Expense),
		}
	}
	writeJSON(w, http.StatusOK, out, p.Warnings)
}

func (s *Server) handlePayroll(w http.ResponseWriter, r *http.Request) {
	payroll, err := s.reports.Payroll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build payroll report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build payroll report")
		return
	}

	payments, err := s.reports.SalaryPayments(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load salary payments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build payroll report")
		return
	}

	out := struct {
		payrollJSON
		Payments []transactionJSON `json:"payments"`
	}{
		payrollJSON: payrollJSON{
			TotalSalariesPaid:      core.FormatAmount(payroll.TotalSalariesPaid),
			TotalContractualSalary: core.FormatAmount(payroll.TotalContractualSalary),
			ActiveStaff:            payroll.ActiveStaff,
		},
		Payments: toTransactionsJSON(payments),
	}
	writeJSON(w, http.StatusOK, out, nil)
}
