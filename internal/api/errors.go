package api

import (
	"errors"
	"net/http"

	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/api/shared"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/quiz"
	"github.com/COOKiEMONstaur/cbcn-study-quiz/internal/service"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, quiz.ErrNoSelection),
		errors.Is(err, quiz.ErrChoiceOutOfRange),
		errors.Is(err, service.ErrNotConfirmed),
		errors.Is(err, service.ErrUnknownPack):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrNoCurrentQuestion):
		return http.StatusNotFound

	case errors.Is(err, quiz.ErrSessionComplete),
		errors.Is(err, quiz.ErrAlreadyAnswered):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for an error,
// hiding anything unexpected behind a generic one.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		return "Pick an answer first"
	case errors.Is(err, quiz.ErrChoiceOutOfRange):
		return "Selected choice does not exist"
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return "This question was already answered; advance to continue"
	case errors.Is(err, quiz.ErrSessionComplete):
		return "No current question; adjust filters or reset to continue"
	case errors.Is(err, service.ErrNotConfirmed):
		return "This action requires confirmation"
	case errors.Is(err, service.ErrNoCurrentQuestion):
		return "No current question"
	case errors.Is(err, service.ErrUnknownPack):
		return "Unknown pack id"
	default:
		return "An unexpected error occurred"
	}
}

// respondServiceError writes the mapped status and safe message for err.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}
