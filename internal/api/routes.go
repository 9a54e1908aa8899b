package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Router registers every endpoint on a new router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	if h.opts.AllowedOrigin != "" {
		r.Use(cors(h.opts.AllowedOrigin))
		r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/scenarios", h.ListScenarios).Methods(http.MethodGet)
	v1.HandleFunc("/scenarios/{id}", h.GetScenario).Methods(http.MethodGet)
	v1.HandleFunc("/scenarios/{id}", h.PutScenario).Methods(http.MethodPut)
	v1.HandleFunc("/scenarios/{id}", h.DeleteScenario).Methods(http.MethodDelete)
	v1.HandleFunc("/scenarios/{id}/export", h.ExportScenario).Methods(http.MethodGet)

	r.HandleFunc("/ws/scenarios/{id}/play", h.ServeLive).Methods(http.MethodGet)
	return r
}

func cors(origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController and the websocket upgrader reach the hijacker.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(started)),
		)
	})
}
