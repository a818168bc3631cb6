// ABOUTME: HTTP/JSON adapter exposing the storage gateway to the web client
// ABOUTME: Maps routes to store operations and the error taxonomy to status codes

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shoresh-dev/shoresh/internal/auth"
	"github.com/shoresh-dev/shoresh/internal/store"
)

// Options holds adapter configuration.
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
}

// Server handles the HTTP surface of shoresh. Every handler is a thin
// adapter: decode JSON, call one gateway operation, encode the result.
type Server struct {
	store    store.Gateway
	verifier *auth.Verifier
	opts     Options
	logger   *slog.Logger
}

// New creates an API server over the given gateway.
func New(gw store.Gateway, verifier *auth.Verifier, opts Options) *Server {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	return &Server{
		store:    gw,
		verifier: verifier,
		opts:     opts,
		logger:   slog.Default().With("component", "api"),
	}
}

// Handler returns the fully assembled HTTP handler: routes, write-auth on
// mutating endpoints, CORS, request IDs, and optional Prometheus metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	var handler http.Handler = mux
	if s.opts.MetricsEnabled {
		handler = instrumentHandler(handler)
	}
	handler = s.requestLog(handler)
	handler = corsAllowAll(handler)
	return handler
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	protect := auth.RequireWritePassword(s.verifier)
	guarded := func(h http.HandlerFunc) http.Handler { return protect(h) }

	mux.HandleFunc("GET /auth", s.handleAuthProbe)

	mux.HandleFunc("GET /participants", s.handleParticipants)
	mux.Handle("POST /participants", guarded(s.handleAddParticipant))

	mux.HandleFunc("GET /mistakes", s.handleAllMistakes)
	mux.Handle("POST /mistakes", guarded(s.handleReportMistake))
	mux.HandleFunc("GET /mistakes/{name}", s.handleMistakesFor)
	mux.HandleFunc("GET /mistaken-words", s.handleMistakenWords)

	mux.HandleFunc("GET /translations", s.handleAllTranslations)
	mux.Handle("POST /translations", guarded(s.handleAddTranslation))
	mux.HandleFunc("GET /translate/{english}", s.handleTranslate)

	mux.HandleFunc("GET /suggest/mistakes", s.handleMistakeSuggestions)
	mux.HandleFunc("POST /suggest/mistakes", s.handleSuggestMistake)
	mux.Handle("DELETE /suggest/mistakes", guarded(s.handleDiscardMistakeSuggestion))
	mux.Handle("GET /suggest/mistakes/archive", guarded(s.handleArchivedMistakeSuggestions))

	mux.HandleFunc("GET /suggest/translations", s.handleTranslationSuggestions)
	mux.HandleFunc("POST /suggest/translations", s.handleSuggestTranslation)
	mux.Handle("DELETE /suggest/translations", guarded(s.handleDiscardTranslationSuggestion))

	mux.HandleFunc("GET /known/{word}", s.handleIsKnownWord)
	mux.HandleFunc("GET /canonicalize", s.handleListCanonicalMappings)
	mux.Handle("POST /canonicalize", guarded(s.handleDefineCanonical))
	mux.HandleFunc("GET /canonicalize/{word}", s.handleCanonicalize)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleHelp)

	if s.opts.MetricsEnabled {
		mux.Handle("GET "+s.opts.MetricsPath, metricsHandler())
	}
}

// writeJSON encodes v as the response body. Encoding failures are logged,
// not surfaced: the status line is already gone.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeError maps the store's error taxonomy to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnknownWord):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateParticipant):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAuthProbe lets the client check credentials before offering write UI.
func (s *Server) handleAuthProbe(w http.ResponseWriter, r *http.Request) {
	_, password, ok := r.BasicAuth()
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing credentials"})
		return
	}

	authorized, err := s.verifier.Verify(password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, authorized)
}
