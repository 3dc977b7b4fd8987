package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"tally/internal/export"
)

// serveCSV writes the document as a file download. An empty document
// becomes a JSON notice, never a header-only file.
func serveCSV(w http.ResponseWriter, r *http.Request, d export.Document) {
	body, err := export.Bytes(d)
	if errors.Is(err, export.ErrNothingToExport) {
		writeError(w, http.StatusNotFound, "nothing to export for the current filters")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build export", "filename", d.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleExportTransactions downloads the filtered history as CSV. The
// same filters and sort as the JSON listing apply.
func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())

	txs, err := s.reports.Ledger(r.Context(), p.Filter, p.Order)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load transactions for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	serveCSV(w, r, export.LedgerDocument(txs))
}

func (s *Server) handleExportProjects(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())
	key, dir, _ := ParseProjectSort(r.URL.Query())

	rows, err := s.reports.Projects(r.Context(), p.Filter, key, dir)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load project report for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	serveCSV(w, r, export.ProjectDocument(rows))
}

func (s *Server) handleExportPayroll(w http.ResponseWriter, r *http.Request) {
	payments, err := s.reports.SalaryPayments(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load salary payments for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	serveCSV(w, r, export.PayrollDocument(payments))
}
