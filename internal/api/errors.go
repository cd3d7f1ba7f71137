package api

import (
	"errors"
	"net/http"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/service"
	"github.com/plankhq/plank-api/internal/service/auth"
	"github.com/plankhq/plank-api/internal/store"
)

// MapErrorToStatusCode maps service and domain errors to HTTP status codes.
// Unknown errors map to 500 so internal failures are never described to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors. Only participants who already know the board
	// exists ever see a 403; everyone else gets the not-found below.
	case errors.Is(err, service.ErrNotBoardOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, service.ErrColumnNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAlreadyOwner),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error. Internal
// detail never leaves the process; unknown errors collapse to a generic
// message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrNotBoardOwner):
		return "Only the board owner may perform this action"

	case errors.Is(err, service.ErrBoardNotFound):
		return "Board not found"

	case errors.Is(err, service.ErrColumnNotFound):
		return "Column not found"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrEmailTaken):
		return "Email already registered"

	case errors.Is(err, service.ErrAlreadyMember):
		return "User is already a member of this board"

	case errors.Is(err, service.ErrAlreadyOwner):
		return "User already owns this board"

	case errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordTooLong):
		return err.Error()

	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the error response for a failed service call:
// mapped status, sanitized message, full error in the logs.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
