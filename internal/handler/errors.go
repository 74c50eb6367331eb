package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// Error codes returned in ErrorDetail.Code.
const (
	codeNotFound    = "not_found"
	codeValidation  = "validation_error"
	codePersistence = "persistence_error"
	codeTooLarge    = "request_too_large"
	codeInternal    = "internal_error"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: codeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: codeValidation, Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a request rejected before reaching
// the service layer (missing body, malformed JSON, bad query parameter).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: codeValidation, Message: message}}
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.DiaryService.Create: validation error: rating must be at most 5" → "rating must be at most 5"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// writeServiceError maps a service error to its HTTP response.
// notFound is the message used for domain.ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrPersistence):
		// The change is applied in memory but did not reach storage.
		slog.WarnContext(r.Context(), "persistence failure surfaced", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: ErrorDetail{
			Code:    codePersistence,
			Message: "the change was applied but could not be saved; retry later",
		}})
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    codeInternal,
			Message: "internal server error",
		}})
	}
}
