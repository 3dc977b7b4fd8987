package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tally/internal/memstore"
	"tally/internal/services"
)

func newTestServer(t *testing.T) (*Server, *memstore.Store) {
	t.Helper()

	store := memstore.New()
	s := NewServer("127.0.0.1:0", services.NewLedgerService(store, nil), services.NewReportService(store))
	t.Cleanup(func() {
		if err := s.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})
	return s, store
}

func newRequest(t *testing.T, method, target string, headers map[string]string, remote string) *http.Request {
	t.Helper()

	r := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	if remote != "" {
		r.RemoteAddr = remote
	}
	return r
}

func (s *Server) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, r)
	return rr
}

func recordEntry(t *testing.T, s *Server, date, details, category, txType, amount string) transactionJSON {
	t.Helper()

	body := fmt.Sprintf(`{"date":%q,"details":%q,"category":%q,"type":%q,"amount":%q}`,
		date, details, category, txType, amount)
	rr := s.do(t, http.MethodPost, "/api/transactions", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("record %s: status = %d, body %s", details, rr.Code, rr.Body)
	}

	var resp struct {
		Data transactionJSON `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode record response: %v", err)
	}
	return resp.Data
}

func TestRecordAndListTransactions(t *testing.T) {
	s, _ := newTestServer(t)

	first := recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000.00")
	if first.Balance != "1000.00" {
		t.Errorf("first balance = %q, want 1000.00", first.Balance)
	}
	second := recordEntry(t, s, "2024-01-10", "January rent", "Rent", "EXPENSE", "400.00")
	if second.Balance != "600.00" {
		t.Errorf("second balance = %q, want 600.00", second.Balance)
	}

	rr := s.do(t, http.MethodGet, "/api/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var resp struct {
		Data []transactionJSON `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(resp.Data))
	}
	// Default order is most recent first.
	if resp.Data[0].ID != second.ID || resp.Data[1].ID != first.ID {
		t.Errorf("unexpected order: %s then %s", resp.Data[0].Details, resp.Data[1].Details)
	}
}

func TestRecordTransactionRejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"date":`, http.StatusBadRequest},
		{"bad date", `{"date":"05/01/2024","details":"x","category":"Sales","type":"INCOME","amount":"10"}`, http.StatusBadRequest},
		{"signed amount", `{"date":"2024-01-05","details":"x","category":"Sales","type":"INCOME","amount":"-10"}`, http.StatusBadRequest},
		{"unknown type", `{"date":"2024-01-05","details":"x","category":"Sales","type":"REFUND","amount":"10"}`, http.StatusUnprocessableEntity},
		{"empty details", `{"date":"2024-01-05","details":"  ","category":"Sales","type":"INCOME","amount":"10"}`, http.StatusUnprocessableEntity},
		{"empty category", `{"date":"2024-01-05","details":"x","category":"","type":"INCOME","amount":"10"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/api/transactions", tt.body)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body)
			}
		})
	}
}

func TestDeleteTransaction(t *testing.T) {
	s, _ := newTestServer(t)
	entry := recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "100")

	rr := s.do(t, http.MethodDelete, "/api/transactions/"+entry.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = s.do(t, http.MethodDelete, "/api/transactions/"+entry.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}
}

func TestGroupedListing(t *testing.T) {
	s, _ := newTestServer(t)
	recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000")
	recordEntry(t, s, "2024-01-10", "January rent", "Rent", "EXPENSE", "400")
	recordEntry(t, s, "2024-01-12", "Invoice 2", "Sales", "INCOME", "250")

	rr := s.do(t, http.MethodGet, "/api/transactions?group=category&sort=date&dir=asc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Data []bucketJSON `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("buckets = %d, want 2", len(resp.Data))
	}
	// Buckets appear in order of first appearance within the sort.
	if resp.Data[0].Category != "Sales" || resp.Data[1].Category != "Rent" {
		t.Errorf("bucket order: %s, %s", resp.Data[0].Category, resp.Data[1].Category)
	}
	if len(resp.Data[0].Transactions) != 2 {
		t.Errorf("Sales bucket size = %d, want 2", len(resp.Data[0].Transactions))
	}
}

func TestFilterWarningsSurface(t *testing.T) {
	s, _ := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/api/transactions?start=bogus", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, a bad filter must not fail the request", rr.Code)
	}
	var resp struct {
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "bogus") {
		t.Errorf("warnings = %v, want one naming the bad input", resp.Warnings)
	}
}

func TestProfitAndLossRequiresBounds(t *testing.T) {
	s, _ := newTestServer(t)
	recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000")
	recordEntry(t, s, "2024-01-10", "January rent", "Rent", "EXPENSE", "400")

	rr := s.do(t, http.MethodGet, "/api/reports/pnl", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unbounded pnl status = %d, want 422", rr.Code)
	}

	rr = s.do(t, http.MethodGet, "/api/reports/pnl?start=2024-01-01&end=2024-01-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("bounded pnl status = %d (body %s)", rr.Code, rr.Body)
	}
	var resp struct {
		Data profitAndLossJSON `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.NetProfit != "600.00" {
		t.Errorf("net profit = %q, want 600.00", resp.Data.NetProfit)
	}
}

func TestSummaryCacheInvalidatedByWrites(t *testing.T) {
	s, _ := newTestServer(t)
	recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000")

	rr := s.do(t, http.MethodGet, "/api/reports/summary", "")
	if rr.Code != http.StatusOK || rr.Header().Get("X-Cache") != "" {
		t.Fatalf("first read: status %d, X-Cache %q", rr.Code, rr.Header().Get("X-Cache"))
	}
	firstBody := rr.Body.String()

	rr = s.do(t, http.MethodGet, "/api/reports/summary", "")
	if rr.Header().Get("X-Cache") != "hit" {
		t.Fatalf("second read must come from cache, X-Cache = %q", rr.Header().Get("X-Cache"))
	}
	if rr.Body.String() != firstBody {
		t.Errorf("cached body differs from original")
	}

	recordEntry(t, s, "2024-01-10", "January rent", "Rent", "EXPENSE", "400")

	rr = s.do(t, http.MethodGet, "/api/reports/summary", "")
	if rr.Header().Get("X-Cache") == "hit" {
		t.Fatalf("a write must purge the cache")
	}
	var resp struct {
		Data summaryJSON `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalExpense != "400.00" || resp.Data.Net != "600.00" {
		t.Errorf("summary after write = %+v", resp.Data)
	}
}

func TestExportTransactions(t *testing.T) {
	s, _ := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/api/export/transactions", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("empty export status = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("empty export Content-Type = %q, want a JSON notice", ct)
	}

	recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000")

	rr = s.do(t, http.MethodGet, "/api/export/transactions", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="transaction_history.csv"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("Invoice 1")) {
		t.Errorf("export body missing the recorded entry:\n%s", rr.Body)
	}
}

func TestPayrollIgnoresDateFilters(t *testing.T) {
	s, _ := newTestServer(t)
	recordEntry(t, s, "2023-06-30", "June payroll", "Salaries", "EXPENSE", "900")
	recordEntry(t, s, "2024-01-05", "Invoice 1", "Sales", "INCOME", "1000")

	rr := s.do(t, http.MethodGet, "/api/reports/payroll?start=2024-01-01&end=2024-01-31", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Data struct {
			payrollJSON
			Payments []transactionJSON `json:"payments"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.TotalSalariesPaid != "900.00" {
		t.Errorf("total salaries paid = %q, want 900.00 despite the date filter", resp.Data.TotalSalariesPaid)
	}
	if len(resp.Data.Payments) != 1 {
		t.Errorf("payments = %d, want 1", len(resp.Data.Payments))
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := s.do(t, http.MethodGet, path, ""); rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rr.Code)
		}
	}
}
