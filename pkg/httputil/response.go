package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/darwin-elegiga/backend-theme/pkg/errors"
	"github.com/darwin-elegiga/backend-theme/pkg/logger"
)

// Response is the JSON envelope returned by every API endpoint. Success
// payloads carry Data; error payloads carry Error plus an optional
// human-readable Detail. The envelope shape is part of the public contract
// consumed by frontends, so field names are fixed.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a 200 success envelope wrapping the given payload.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteErrorMessage writes an error envelope with an explicit status, short
// error string, and detail message.
func WriteErrorMessage(w http.ResponseWriter, status int, errMsg, detail string) {
	WriteJSON(w, status, Response{Success: false, Error: errMsg, Detail: detail})
}

// WriteError writes an error envelope derived from the error type. Handlers
// that need a domain-specific error string (e.g. "Brand not found" with the
// available-brands detail) should map the error themselves and call
// WriteErrorMessage; this is the generic fallback. Internal errors are logged
// through the request-scoped logger when one is present.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	errMsg := "Internal error"
	detail := "an internal error occurred"

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		errMsg = "Not found"
		detail = err.Error()
	case errors.Is(err, apperrors.ErrInvalidInput):
		errMsg = "Invalid input"
		detail = err.Error()
	case errors.Is(err, apperrors.ErrServiceUnavail):
		errMsg = "Service unavailable"
		detail = err.Error()
	case errors.As(err, &appErr):
		errMsg = appErr.Code
		detail = appErr.Message
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteErrorMessage(w, status, errMsg, detail)
}
