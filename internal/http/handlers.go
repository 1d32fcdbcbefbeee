package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.startedAt).String(),
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(health)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.ledger == nil {
		checks["ledger"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["ledger"] = "ok"
	}

	if s.vendors == nil || s.products == nil {
		checks["catalogs"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["catalogs"] = "ok"
	}

	if s.identity == nil {
		checks["auth"] = "disabled"
	} else {
		checks["auth"] = "ok"
	}

	response := map[string]any{
		"status": status,
		"checks": checks,
	}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(response)
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	totalExpenses := atomic.LoadInt64(&s.appMetrics.totalExpenses)
	totalImports := atomic.LoadInt64(&s.appMetrics.totalImports)
	cacheHits := atomic.LoadInt64(&s.appMetrics.cacheHits)
	cacheMisses := atomic.LoadInt64(&s.appMetrics.cacheMisses)
	requestsServed := atomic.LoadInt64(&s.appMetrics.requestsServed)
	uptime := time.Since(s.appMetrics.startedAt)

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", requestsServed)

	fmt.Fprintf(w, "# HELP expenses_total Total number of expenses created\n")
	fmt.Fprintf(w, "# TYPE expenses_total counter\n")
	fmt.Fprintf(w, "expenses_total %d\n\n", totalExpenses)

	fmt.Fprintf(w, "# HELP imports_total Total number of workbook imports\n")
	fmt.Fprintf(w, "# TYPE imports_total counter\n")
	fmt.Fprintf(w, "imports_total %d\n\n", totalImports)

	fmt.Fprintf(w, "# HELP dashboard_cache_hits_total Total dashboard cache hits\n")
	fmt.Fprintf(w, "# TYPE dashboard_cache_hits_total counter\n")
	fmt.Fprintf(w, "dashboard_cache_hits_total %d\n\n", cacheHits)

	fmt.Fprintf(w, "# HELP dashboard_cache_misses_total Total dashboard cache misses\n")
	fmt.Fprintf(w, "# TYPE dashboard_cache_misses_total counter\n")
	fmt.Fprintf(w, "dashboard_cache_misses_total %d\n\n", cacheMisses)

	fmt.Fprintf(w, "# HELP dashboard_cache_entries Current dashboard cache entries\n")
	fmt.Fprintf(w, "# TYPE dashboard_cache_entries gauge\n")
	fmt.Fprintf(w, "dashboard_cache_entries %d\n\n", s.dashCache.Size())

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", s.rateLimiter.totalHits())

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", s.rateLimiter.activeClients())

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}
