package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"churchconnect/internal/domain"
	"churchconnect/internal/metrics"
)

// WriteServiceError maps err to a status code and writes it. Errors outside the
// domain taxonomy are logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationError(w, ve)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrEventFull):
		WriteJSONError(w, http.StatusConflict, ErrCodeEventFull, domain.ErrEventFull.Error())
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "resource was modified or already exists")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// WriteValidationError answers 400 with the failure kind as code.
func WriteValidationError(w http.ResponseWriter, ve *domain.ValidationError) {
	metrics.ValidationFailures.WithLabelValues(string(ve.Kind)).Inc()
	WriteJSON(w, http.StatusBadRequest, APIError{Error: ve.Message, Code: string(ve.Kind), Field: ve.Field})
}
