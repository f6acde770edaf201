package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	reconstructdto "github.com/pauljayakar30/Paninis-eye/internal/modules/reconstruct/dto"
	apperrors "github.com/pauljayakar30/Paninis-eye/internal/platform/errors"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service":  "paninis-eye",
		"status":   "operational",
		"sessions": len(summaries),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("multipart field 'file' required: %w", apperrors.ErrInvalidInput))
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, fmt.Errorf("read upload: %w", apperrors.ErrInvalidInput))
		return
	}
	out, err := s.sessions.IngestImage(r.Context(), header.Filename, image)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	var input reconstructdto.ReconstructInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		s.writeError(w, fmt.Errorf("malformed request body: %w", apperrors.ErrInvalidInput))
		return
	}
	out, err := s.reconstruct.Reconstruct(r.Context(), input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": summaries})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	out, err := s.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	out, err := s.sessions.Export(r.Context(), chi.URLParam(r, "sessionID"), format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", out.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Content); err != nil {
		s.log.Error("write export", "error", err)
	}
}
