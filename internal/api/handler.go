// Package api serves the save/load contract over HTTP and streams live playback over
// websockets.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ivlev/slideplay/internal/scenario"
	"github.com/ivlev/slideplay/internal/store"
)

// maxDocumentSize bounds uploaded documents.
const maxDocumentSize = 8 << 20

type Options struct {
	Logger *slog.Logger
	// AllowedOrigin is echoed in CORS headers; empty disables CORS.
	AllowedOrigin string

	// live playback timings
	TimeUpdateInterval time.Duration
	TransitionDuration time.Duration
	SettleDelay        time.Duration
	LoadingDelay       time.Duration
}

// Handler holds the dependencies of the scenario endpoints.
type Handler struct {
	store    store.Store
	opts     Options
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(s store.Store, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := &Handler{store: s, opts: opts, logger: opts.Logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || opts.AllowedOrigin == "*" || origin == opts.AllowedOrigin
		},
	}
	return h
}

// ListScenarios handles GET /api/v1/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetScenario handles GET /api/v1/scenarios/{id} and returns canonical JSON.
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	h.writeDocument(w, r, false)
}

// ExportScenario handles GET /api/v1/scenarios/{id}/export as a file download.
func (h *Handler) ExportScenario(w http.ResponseWriter, r *http.Request) {
	h.writeDocument(w, r, true)
}

func (h *Handler) writeDocument(w http.ResponseWriter, r *http.Request, attachment bool) {
	id := mux.Vars(r)["id"]
	doc, err := h.store.Load(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := scenario.Marshal(doc)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if attachment {
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.json"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// PutScenario handles PUT /api/v1/scenarios/{id}. The body is a JSON or YAML document;
// invalid documents are rejected whole.
func (h *Handler) PutScenario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	if len(body) > maxDocumentSize {
		writeError(w, http.StatusRequestEntityTooLarge, "document too large")
		return
	}
	doc, err := scenario.Decode(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Save(r.Context(), id, doc); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("scenario saved", "id", id, "title", doc.Title, "slides", len(doc.Slides))
	writeJSON(w, http.StatusOK, store.Summary{ID: id, Title: doc.Title, Slides: len(doc.Slides), UpdatedAt: time.Now().UTC()})
}

// DeleteScenario handles DELETE /api/v1/scenarios/{id}.
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps domain errors to status codes.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, scenario.ErrInvalidDocument),
		errors.Is(err, scenario.ErrUnsupportedVersion):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	h.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
