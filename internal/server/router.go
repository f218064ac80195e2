package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes and middleware.
func NewRouter(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/members", h.listMembers)
	mux.HandleFunc("POST /api/members", h.addMember)
	mux.HandleFunc("PATCH /api/members/{id}", h.renameMember)
	mux.HandleFunc("DELETE /api/members/{id}", h.removeMember)

	mux.HandleFunc("GET /api/expenses", h.listExpenses)
	mux.HandleFunc("POST /api/expenses", h.addExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", h.removeExpense)

	mux.HandleFunc("GET /api/balances", h.balances)
	mux.HandleFunc("GET /api/settlement", h.settlement)
	mux.HandleFunc("POST /api/settlement/notify", h.notifySettlement)

	mux.HandleFunc("GET /api/export", h.exportSnapshot)
	mux.HandleFunc("POST /api/import", h.importSnapshot)

	return loggingMiddleware(corsMiddleware(metricsMiddleware(mux)))
}

// loggingMiddleware logs every request with its status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
