package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/noah-isme/sentinel/internal/shared"
)

// RespondError maps domain errors onto HTTP status codes and the stable
// {"error": "..."} body. Unrecognized errors become a generic 500; their
// detail is logged server-side only and never leaks into the response.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrTooManyRequests):
		Error(w, http.StatusTooManyRequests, err.Error())
	default:
		if logger != nil {
			logger.Error("internal error", slog.Any("error", err))
		}
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
