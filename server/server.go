// Package server exposes the dashboard over HTTP: the page, per-view
// fragments and JSON, server-rendered chart images, the selection API and
// a refresh event stream.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spektr-org/penguinlens/dashboard"
	"github.com/spektr-org/penguinlens/reactive"
)

const maxBodyBytes = 1 << 20

// Page holds the static page settings.
type Page struct {
	Title     string
	GitHubURL string
}

// Server serves one dashboard backed by one selection store.
type Server struct {
	dash   *dashboard.Dashboard
	store  *reactive.Store
	page   Page
	events *hub
	router chi.Router
	unbind func()
}

// New wires the dashboard views to the store and builds the router.
func New(dash *dashboard.Dashboard, store *reactive.Store, page Page) *Server {
	s := &Server{
		dash:   dash,
		store:  store,
		page:   page,
		events: newHub(),
	}
	s.unbind = dashboard.Bind(store, func(view string, _ reactive.Selection) {
		s.events.mark(view)
	})
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/events", s.handleEvents)
	r.Get("/fragments/{view}", s.handleFragment)
	r.Get("/charts/{view}.png", s.handleImage)
	r.Route("/api", func(r chi.Router) {
		r.Get("/views/{view}", s.handleView)
		r.Get("/selection", s.handleGetSelection)
		r.Post("/selection", s.handleUpdateSelection)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close detaches from the store and ends open event streams.
func (s *Server) Close() {
	s.unbind()
	s.events.close()
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"dataset": s.dash.Dataset().Name(),
		"rows":    s.dash.Dataset().Len(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selectionFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.dash.Render(chi.URLParam(r, "view"), sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selectionFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "view")
	var buf bytes.Buffer
	if err := s.dash.RenderPNG(&buf, id, sel); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("image write failed", "view", id, "err", err)
	}
}

func (s *Server) handleGetSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleUpdateSelection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	patch, err := decodePatch(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	change, err := s.store.Apply(patch)
	if err != nil {
		writeError(w, err)
		return
	}
	s.events.flush()
	writeJSON(w, http.StatusOK, change)
}

// selectionFor overlays any selection fields in the query string on the
// current snapshot without storing the result.
func (s *Server) selectionFor(r *http.Request) (reactive.Selection, error) {
	sel := s.store.Snapshot()
	patch, err := reactive.ParseForm(r.URL.Query())
	if err != nil {
		return reactive.Selection{}, err
	}
	if patch.Fields() == 0 {
		return sel, nil
	}
	return patch.Preview(sel)
}

func decodePatch(r *http.Request) (reactive.Patch, error) {
	if mediaType(r.Header.Get("Content-Type")) == "application/json" {
		return reactive.DecodeJSON(r.Body)
	}
	if err := r.ParseForm(); err != nil {
		return reactive.Patch{}, err
	}
	return reactive.ParseForm(r.PostForm)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

// ============================================================================
// RESPONSES
// ============================================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownView), errors.Is(err, dashboard.ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, reactive.ErrUnknownAttribute),
		errors.Is(err, reactive.ErrUnknownSpecies),
		errors.Is(err, reactive.ErrInvalidBins):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}
