// Package http serves the ledger and report API as JSON plus CSV
// exports.
//
// This file parses and validates request data. Filter parameters are
// fail open: a malformed date is dropped with a warning instead of
// failing the whole request, so a bad query string can never hide the
// ledger.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/report"
	"tally/internal/services"
)

// today is a hook for tests that pin the clock.
var today = time.Now

// FilterParams is a parsed report query. Warnings carry notes about
// inputs that were ignored.
type FilterParams struct {
	Filter   report.Filter
	Order    report.Order
	Warnings []string
}

// ParseFilterParams reads the shared report query parameters:
// start, end (YYYY-MM-DD), range (daily|weekly|monthly), category
// (repeatable), q, sort (date|amount) and dir (asc|desc). An explicit
// start/end wins over a quick range.
func ParseFilterParams(query url.Values) FilterParams {
	p := FilterParams{Order: report.DefaultOrder()}

	if mode := report.Mode(strings.TrimSpace(query.Get("range"))); mode != "" {
		if mode.Valid() && mode != report.ModeCustom {
			p.Filter.Start, p.Filter.End = report.Resolve(mode, core.DateOf(today()))
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("unknown range %q ignored", mode))
		}
	}

	if raw := strings.TrimSpace(query.Get("start")); raw != "" {
		if d, err := core.ParseDate(raw); err == nil {
			p.Filter.Start = d
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("invalid start date %q ignored", raw))
		}
	}
	if raw := strings.TrimSpace(query.Get("end")); raw != "" {
		if d, err := core.ParseDate(raw); err == nil {
			p.Filter.End = d
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("invalid end date %q ignored", raw))
		}
	}

	for _, c := range query["category"] {
		if c = strings.TrimSpace(c); c != "" {
			p.Filter.Categories = append(p.Filter.Categories, c)
		}
	}
	p.Filter.Search = strings.TrimSpace(query.Get("q"))

	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		key := report.SortKey(raw)
		if key.Valid() {
			p.Order.Key = key
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("unknown sort key %q ignored", raw))
		}
	}
	if raw := strings.TrimSpace(query.Get("dir")); raw != "" {
		dir := report.Direction(raw)
		if dir.Valid() {
			p.Order.Dir = dir
		} else {
			p.Warnings = append(p.Warnings, fmt.Sprintf("unknown sort direction %q ignored", raw))
		}
	}

	return p
}

// ParseProjectSort reads the project report sort column, defaulting to
// profit descending.
func ParseProjectSort(query url.Values) (report.ProfitKey, report.Direction, []string) {
	key := report.ByProfit
	dir := report.Descending
	var warnings []string

	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		if k := report.ProfitKey(raw); k.Valid() {
			key = k
		} else {
			warnings = append(warnings, fmt.Sprintf("unknown sort key %q ignored", raw))
		}
	}
	if raw := strings.TrimSpace(query.Get("dir")); raw != "" {
		if d := report.Direction(raw); d.Valid() {
			dir = d
		} else {
			warnings = append(warnings, fmt.Sprintf("unknown sort direction %q ignored", raw))
		}
	}
	return key, dir, warnings
}

// recordTransactionRequest is the JSON body for POST /api/transactions.
type recordTransactionRequest struct {
	Date      string `json:"date"`
	Details   string `json:"details"`
	Category  string `json:"category"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	ProjectID string `json:"project_id"`
	StaffID   string `json:"staff_id"`
}

const maxBodySize = 64 << 10

// ParseRecordRequest decodes and validates a transaction creation
// body. Unlike filters, write inputs fail closed: a malformed date or
// amount rejects the request.
func ParseRecordRequest(r *http.Request) (services.RecordTransactionParams, error) {
	var params services.RecordTransactionParams

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return params, fmt.Errorf("read body: %w", err)
	}

	var req recordTransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return params, fmt.Errorf("invalid JSON body: %w", err)
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return params, fmt.Errorf("invalid date %q: %w", req.Date, core.ErrInvalidDate)
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return params, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}

	return services.RecordTransactionParams{
		Date:      date,
		Details:   strings.TrimSpace(req.Details),
		Category:  strings.TrimSpace(req.Category),
		Type:      core.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Amount:    amount,
		ProjectID: strings.TrimSpace(req.ProjectID),
		StaffID:   strings.TrimSpace(req.StaffID),
	}, nil
}

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
