package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/academic-tracker/internal/export"
	"github.com/jonathan/academic-tracker/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

func zapRequest(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ---------------------------------------------------------------------
// Semester Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListSemesters(w http.ResponseWriter, r *http.Request) {
	semesters, err := s.tracker.ListSemesters(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"semesters": semesters,
		"count":     len(semesters),
	})
}

func (s *Server) handleCreateSemester(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSemesterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	semester, err := s.tracker.AddSemester(r.Context(), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, semester)
}

func (s *Server) handleGetSemester(w http.ResponseWriter, r *http.Request) {
	semester, err := s.tracker.GetSemester(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, semester)
}

func (s *Server) handleUpdateSemester(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateSemesterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	semester, err := s.tracker.UpdateSemester(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, semester)
}

func (s *Server) handleDeleteSemester(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteSemester(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Derived Views
// ---------------------------------------------------------------------

func (s *Server) handleStanding(w http.ResponseWriter, r *http.Request) {
	standing, err := s.tracker.Standing(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, standing)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := s.tracker.Analytics(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	var req types.GoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := s.tracker.Goal(r.Context(), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, goal)
}

// ---------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.tracker.Settings(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := s.tracker.UpdateSettings(r.Context(), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, settings)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Reset(r.Context()); err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ---------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	buf, filename, err := export.Transcript(snap.Semesters, snap.Standing, s.now())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write export", zap.Error(err))
	}
}
