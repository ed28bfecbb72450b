// Package api provides the hourbook HTTP server: auth, time-entry CRUD with
// date pagination, and the statistics views.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hourbook-app/hourbook/internal/app/stats"
	"github.com/hourbook-app/hourbook/internal/auth"
	"github.com/hourbook-app/hourbook/internal/domain"
	"github.com/hourbook-app/hourbook/internal/infra/observability"
)

// Server is the hourbook HTTP API server.
type Server struct {
	users   domain.UserStore
	entries domain.EntryStore
	stats   *stats.Service
	auth    *auth.Authenticator

	metrics        *observability.Metrics
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(users domain.UserStore, entries domain.EntryStore, st *stats.Service, a *auth.Authenticator) *Server {
	return &Server{users: users, entries: entries, stats: st, auth: a}
}

// EnableMetrics enables the /metrics Prometheus endpoint and request
// instrumentation.
func (s *Server) EnableMetrics(m *observability.Metrics) {
	s.metrics = m
	s.metricsEnabled = true
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	if s.metricsEnabled {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.With(s.requireAuth).Get("/user", s.handleCurrentUser)
	})

	r.Route("/api/time-entries", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleEntriesPage)
		r.Post("/", s.handleCreateEntry)
		r.Get("/by-date", s.handleEntriesByDate)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Put("/{id}", s.handleUpdateEntry)
		r.Delete("/{id}", s.handleDeleteEntry)
	})

	r.Route("/api/stats", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/task-id", s.handleStatsByTaskID)
		r.Get("/task-type", s.handleStatsByTaskType)
		r.Get("/task-id-monthly", s.handleStatsMonthly)
		r.Get("/last-30-days", s.handleStatsLast30Days)
		r.Get("/summary", s.handleStatsSummary)
		r.Get("/overview", s.handleStatsOverview)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Authentication ─────────────────────────────────────────────────────────

type contextKey string

const principalKey contextKey = "principal"

// requireAuth rejects requests without a valid bearer token before anything
// touches the store, and attaches the principal to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		p, err := s.auth.VerifyToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the authenticated principal set by requireAuth.
func principalFrom(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(auth.Principal)
	return p, ok
}

// ─── Response Helpers ───────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a store failure to the API taxonomy: not-found stays
// 404, validation sentinels stay 400 with the verbatim message, anything
// else becomes an opaque 500 that never leaks query text.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case err == domain.ErrEntryNotFound:
		writeError(w, http.StatusNotFound, "entry not found or unauthorized")
	case domain.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "database error")
	}
}

// corsMiddleware adds CORS headers for browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
