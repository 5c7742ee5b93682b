package handlers

import (
	"errors"
	"net/http"

	app "github.com/chinmayajanata/backend/internal/application"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
)

// statusFor maps service errors onto HTTP status codes. Anything unmapped is
// a 500 so storage faults never masquerade as client errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrUserNotFound),
		errors.Is(err, app.ErrCenterNotFound),
		errors.Is(err, app.ErrEventNotFound),
		errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, app.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrInvalidPoints):
		return http.StatusBadRequest
	case errors.Is(err, repo.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
