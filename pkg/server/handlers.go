package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/WispAyr/signage-designer/pkg/designer"
	"github.com/WispAyr/signage-designer/pkg/sign"
	"github.com/WispAyr/signage-designer/pkg/store"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Message: fmt.Sprintf(format, args...)}})
}

// writeServiceError maps service errors onto HTTP statuses: validation
// failures are 400, missing signs 404, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *designer.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{
			Message: verr.Message,
			Field:   verr.Field,
		}})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Sign not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) handleCreateSign(w http.ResponseWriter, r *http.Request) {
	var req designer.CreateSignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	created, err := s.service.CreateSign(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSigns(w http.ResponseWriter, r *http.Request) {
	signs, err := s.service.ListSigns(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if signs == nil {
		signs = []*sign.Sign{}
	}
	writeJSON(w, http.StatusOK, signs)
}

func (s *Server) handleGetSign(w http.ResponseWriter, r *http.Request) {
	found, err := s.service.GetSign(r.Context(), r.PathValue("reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleDeleteSign(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSign(r.Context(), r.PathValue("reference")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviseSign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Metadata sign.Metadata `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	revised, err := s.service.ReviseSign(r.Context(), r.PathValue("reference"), body.Metadata)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, revised)
}

func (s *Server) handleCheckStored(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.CheckCompliance(r.Context(), r.PathValue("reference"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCheckInline(w http.ResponseWriter, r *http.Request) {
	var doc sign.Sign
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid sign document: %v", err)
		return
	}
	if !doc.Type.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown sign type %q", doc.Type)
		return
	}
	writeJSON(w, http.StatusOK, s.service.CheckSign(&doc))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Templates())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Readiness is storage-backed: a broken store means we cannot serve.
	if _, err := s.service.ListSigns(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
