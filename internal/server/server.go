package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/CedarNotes/core/align"
	"github.com/FocuswithJustin/CedarNotes/core/errors"
	"github.com/FocuswithJustin/CedarNotes/internal/logging"
)

// Server serves the resolution API over HTTP.
type Server struct {
	source align.Source
	cfg    align.Config
	hub    *Hub
	mux    *http.ServeMux
}

// New builds a Server around a verse-index source.
func New(src align.Source, cfg align.Config) *Server {
	s := &Server{
		source: src,
		cfg:    cfg,
		hub:    NewHub(),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/v1/resolve", s.handleResolve)
	s.mux.HandleFunc("/api/v1/events", s.handleEvents)
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	go s.hub.Run()
	return s
}

// Handler returns the server's handler wrapped with request-ID and logging
// middleware.
func (s *Server) Handler() http.Handler {
	return logging.CombinedMiddleware(s.mux)
}

// ListenAndServe starts the hub and blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	logging.ServerStartup("http", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type resolveRequest struct {
	Book    string `json:"book"`
	Content string `json:"content"`
}

type resolveResponse struct {
	JobID  string   `json:"job_id"`
	Output []string `json:"output"`
	Errors []string `json:"errors"`
	Passed int      `json:"passed"`
	Failed int      `json:"failed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Book == "" {
		writeError(w, http.StatusBadRequest, "book is required")
		return
	}

	jobID := uuid.New().String()
	log := logging.LoggerFromContext(r.Context()).With("job_id", jobID, "book", req.Book)
	log.Info("resolve job started")

	s.hub.Broadcast(ProgressMessage{Type: "progress", JobID: jobID, Stage: "import"})

	resolver := align.NewResolver(s.cfg, s.source)
	resolver.Progress = func(done, total int) {
		s.hub.Broadcast(ProgressMessage{
			Type: "progress", JobID: jobID, Stage: "resolve",
			Done: done, Total: total,
		})
	}

	result, err := resolver.ResolveQuotes(r.Context(), req.Book, req.Content)
	if err != nil {
		s.hub.Broadcast(ProgressMessage{Type: "error", JobID: jobID, Message: err.Error()})
		switch {
		case errors.Is(err, errors.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, errors.ErrUnavailable):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			log.Error("resolve job failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.hub.Broadcast(ProgressMessage{Type: "complete", JobID: jobID})
	log.Info("resolve job complete", "passed", result.Passed, "failed", result.Failed)

	writeJSON(w, http.StatusOK, resolveResponse{
		JobID:  jobID,
		Output: result.Output,
		Errors: result.Errors,
		Passed: result.Passed,
		Failed: result.Failed,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
