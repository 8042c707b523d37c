package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes and
// machine-readable error kinds without leaking infrastructure details.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrRateLimited        = errors.New("rate limited")
	ErrExpired            = errors.New("expired")
	ErrOriginMismatch     = errors.New("origin mismatch")
	ErrInvalidCode        = errors.New("invalid code")
	ErrAlreadyActive      = errors.New("already active")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCapability  = errors.New("invalid capability")
	ErrUpstream           = errors.New("upstream failure")
)

// Kind maps a wrapped sentinel to the error-kind string carried in API
// responses. Unrecognized errors report as internal.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrOriginMismatch):
		return "origin_mismatch"
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrAlreadyActive):
		return "already_active"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrInvalidCapability):
		return "invalid_capability"
	case errors.Is(err, ErrConflict):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrUpstream):
		return "upstream_failure"
	default:
		return "internal"
	}
}
