package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"resto/internal/auth"
	"resto/internal/catalog"
	"resto/internal/ledger"
)

// ttlCache is a small map cache with per-entry expiry. The dashboard is the
// only consumer; entries are few, so there is no eviction beyond TTL.
type ttlCache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]ttlItem[T]
}

type ttlItem[T any] struct {
	data      T
	expiresAt time.Time
}

func newTTLCache[T any](ttl time.Duration) *ttlCache[T] {
	return &ttlCache[T]{
		ttl:   ttl,
		items: make(map[string]ttlItem[T]),
	}
}

func (c *ttlCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, exists := c.items[key]
	if !exists {
		return zero, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return item.data, true
}

func (c *ttlCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = ttlItem[T]{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear drops all entries. Mutations call this so the dashboard never
// serves stale aggregates.
func (c *ttlCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]ttlItem[T])
}

// CleanExpired removes all expired entries and reports how many.
func (c *ttlCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *ttlCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

type appMetrics struct {
	startedAt      time.Time
	totalExpenses  int64
	totalImports   int64
	cacheHits      int64
	cacheMisses    int64
	requestsServed int64
}

type Server struct {
	http.Server
	ledger      *ledger.Ledger
	vendors     *catalog.Registry
	products    *catalog.Registry
	identity    auth.Identity
	rateLimiter *rateLimiter

	dashCache *ttlCache[dashboardPayload]

	appMetrics appMetrics

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server. A nil
// identity disables the login gate, which is how local development runs.
func NewServer(addr string, lg *ledger.Ledger, vendors, products *catalog.Registry, identity auth.Identity) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		ledger:           lg,
		vendors:          vendors,
		products:         products,
		identity:         identity,
		rateLimiter:      newRateLimiter(),
		dashCache:        newTTLCache[dashboardPayload](5 * time.Minute),
		appMetrics:       appMetrics{startedAt: time.Now()},
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.HandleFunc("/api/login", s.withCommon(s.handleLogin))
	mux.HandleFunc("/api/expenses", s.withCommon(s.withGate(s.handleExpenses)))
	mux.HandleFunc("/api/expenses/", s.withCommon(s.withGate(s.handleExpensesSubtree)))
	mux.HandleFunc("/api/dashboard", s.withCommon(s.withGate(s.handleDashboard)))
	mux.HandleFunc("/api/vendors", s.withCommon(s.withGate(s.handleVendors)))
	mux.HandleFunc("/api/products", s.withCommon(s.withGate(s.handleProducts)))

	return s
}

// startCacheCleanup runs periodic cleanup for the dashboard cache.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// withCommon adds security headers, rate limiting on mutations, and request
// logging with a per-request trace ID.
func (s *Server) withCommon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip)

		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", ip, "method", r.Method, "url", r.URL.Path)
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").
				Header("Retry-After", "60").
				Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		atomic.AddInt64(&s.appMetrics.requestsServed, 1)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", ip)
	}
}

// withGate requires a valid bearer token when an identity service is
// configured. Without one every request passes.
func (s *Server) withGate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.identity == nil {
			next(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			UnauthorizedError("missing bearer token").Write(w)
			return
		}

		ok, err := s.identity.SessionPresent(r.Context(), token)
		if err != nil {
			slog.ErrorContext(r.Context(), "Session check failed", "error", err)
			InternalServerError("session check failed").Write(w)
			return
		}
		if !ok {
			UnauthorizedError("session expired or invalid").Write(w)
			return
		}

		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
