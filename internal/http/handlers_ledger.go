package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/storage"
)

// handleListTransactions serves the filtered, sorted transaction
// history. With ?group=category the response is bucketed instead.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	p := ParseFilterParams(r.URL.Query())

	if r.URL.Query().Get("group") == "category" {
		buckets, err := s.reports.Grouped(r.Context(), p.Filter, p.Order)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to group transactions", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load transactions")
			return
		}
		out := make([]bucketJSON, len(buckets))
		for i, b := range buckets {
			out[i] = bucketJSON{Category: b.Category, Transactions: toTransactionsJSON(b.Transactions)}
		}
		writeJSON(w, http.StatusOK, out, p.Warnings)
		return
	}

	txs, err := s.reports.Ledger(r.Context(), p.Filter, p.Order)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	writeJSON(w, http.StatusOK, toTransactionsJSON(txs), p.Warnings)
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	params, err := ParseRecordRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.ledger.RecordTransaction(r.Context(), params)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to record transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, toTransactionJSON(tx), nil)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.reports.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, toCategoriesJSON(cats), nil)
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.reports.Staff(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list staff", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load staff")
		return
	}
	writeJSON(w, http.StatusOK, toStaffJSON(staff), nil)
}

func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidType,
		core.ErrNegativeAmount,
		core.ErrEmptyDetails,
		core.ErrEmptyCategory,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
