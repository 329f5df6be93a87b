package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("notification not found")
	ErrUnauthorized = errors.New("invalid token")
	ErrForbidden    = errors.New("cannot modify other users' notifications")
	ErrInvalidInput = errors.New("invalid notification ID format")
	ErrInternal     = errors.New("internal server error")
)

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
