package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/yurtapp/account-api/internal/domain"
)

// writeError maps a domain error to an HTTP status and the standard error
// envelope. Unknown errors become an opaque 500; their detail goes to the
// log, not the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
		msg = "internal server error"
	}
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorStatus: domain.Kind(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrExpired),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOriginMismatch), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyActive), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidCapability),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
