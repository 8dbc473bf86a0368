package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/academic-tracker/internal/tracker"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *tracker.ErrSemesterNotFound
		noValid    *tracker.ErrNoValidCourses
		validation *tracker.ErrValidation
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &noValid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes err with its mapped status. Server-side failures are logged and the
// client gets a generic message.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zapRequest(r, err)...)
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
