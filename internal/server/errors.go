// Package server provides the HTTP REST API for the career advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-advisor/internal/market"
	"github.com/jonathan/career-advisor/internal/progress"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var notFound *market.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, progress.ErrInvalidStep):
		return http.StatusBadRequest
	case errors.Is(err, progress.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the error envelope with the mapped status code
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
