package http

import (
	"net/http"
	"sync/atomic"
	"time"

	"resto/internal/core"
)

// dashboardPayload is the aggregate view served at /api/dashboard.
type dashboardPayload struct {
	core.WeekStats
	AllTimeTotal float64 `json:"all_time_total"`
	RecordCount  int     `json:"record_count"`
}

// handleDashboard serves the rolling seven-day aggregates. Results are
// cached per calendar day and invalidated on every ledger mutation, so the
// cache can only ever be a few entries deep.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	now := time.Now()
	key := core.Day(now)

	if cached, ok := s.dashCache.Get(key); ok {
		atomic.AddInt64(&s.appMetrics.cacheHits, 1)
		NewResponse().JSON(cached).Write(w)
		return
	}
	atomic.AddInt64(&s.appMetrics.cacheMisses, 1)

	all := s.ledger.List()
	payload := dashboardPayload{
		WeekStats:    core.ComputeWeekStats(all, now),
		AllTimeTotal: core.AllTimeTotal(all),
		RecordCount:  len(all),
	}

	s.dashCache.Set(key, payload)
	NewResponse().JSON(payload).Write(w)
}
