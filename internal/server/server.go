package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	notifyin "github.com/pauljayakar30/Paninis-eye/internal/modules/notify/port/in"
	reconstructin "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/port/in"
	sessionin "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/in"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

// Server exposes the reconstruction engine over HTTP. All request decoding
// and validation happens at this boundary; usecases receive typed input.
type Server struct {
	sessions    sessionin.Usecase
	reconstruct reconstructin.Usecase
	notifier    notifyin.Usecase
	log         hclog.Logger
	http        *http.Server
}

func New(addr string, sessions sessionin.Usecase, reconstruct reconstructin.Usecase, notifier notifyin.Usecase, log hclog.Logger) *Server {
	s := &Server{
		sessions:    sessions,
		reconstruct: reconstruct,
		notifier:    notifier,
		log:         log,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Post("/upload", s.handleUpload)
	r.Post("/reconstruct", s.handleReconstruct)
	r.Get("/sessions", s.handleListSessions)
	r.Get("/sessions/{sessionID}", s.handleGetSession)
	r.Get("/export/{sessionID}", s.handleExport)
	r.Get("/ws/{sessionID}", s.handleWebSocket)
	return r
}

func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(wrapped, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.Status(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"detail": err.Error()})
}
