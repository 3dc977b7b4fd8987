package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tally/internal/cache"
	"tally/internal/log"
	"tally/internal/middleware/ratelimit"
	"tally/internal/middleware/security"
	"tally/internal/middleware/trace"
	"tally/internal/services"
)

// Server wires the ledger API: routing, middleware, report caching and
// graceful shutdown.
type Server struct {
	http.Server

	ledger  *services.LedgerService
	reports *services.ReportService

	// Report responses are cached per URL and purged on every write,
	// so reads never see a stale snapshot.
	reportCache  *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	rateLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, reports *services.ReportService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:      ledger,
		reports:     reports,
		reportCache: cache.NewLRUCache[[]byte](200, 5*time.Minute),
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.cached(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.handleRecordTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/categories", s.cached(s.handleListCategories))
	mux.HandleFunc("GET /api/staff", s.cached(s.handleListStaff))

	mux.HandleFunc("GET /api/reports/summary", s.cached(s.handleSummary))
	mux.HandleFunc("GET /api/reports/pnl", s.cached(s.handleProfitAndLoss))
	mux.HandleFunc("GET /api/reports/projects", s.cached(s.handleProjects))
	mux.HandleFunc("GET /api/reports/categories", s.cached(s.handleCategoryChart))
	mux.HandleFunc("GET /api/reports/payroll", s.cached(s.handlePayroll))

	mux.HandleFunc("GET /api/export/transactions", s.handleExportTransactions)
	mux.HandleFunc("GET /api/export/projects", s.handleExportProjects)
	mux.HandleFunc("GET /api/export/payroll", s.handleExportPayroll)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(clientIP)
	limited := s.rateLimiter.Middleware(clientIP, nil)
	logged := log.Middleware(log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(logged(headers.Middleware(limited(mux)))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// cached serves GET responses from the report cache keyed by the full
// request URI. Only 200 responses are stored.
func (s *Server) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.RequestURI()
		if body, ok := s.reportCache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("X-Cache", "hit")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		rec := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rec, r)

		if rec.statusCode == http.StatusOK {
			s.reportCache.Set(key, rec.body)
		}
	}
}

// invalidate drops every cached report. Called after any write.
func (s *Server) invalidate() {
	s.cacheManager.PurgeAll()
}

// recordingWriter tees the response body so it can be cached.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	if rw.statusCode == http.StatusOK {
		rw.body = append(rw.body, b...)
	}
	return rw.ResponseWriter.Write(b)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
