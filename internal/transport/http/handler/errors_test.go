package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yurtapp/account-api/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrExpired, http.StatusBadRequest},
		{domain.ErrOriginMismatch, http.StatusForbidden},
		{domain.ErrInvalidCode, http.StatusBadRequest},
		{domain.ErrBadRequest, http.StatusBadRequest},
		{domain.ErrAlreadyActive, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidCapability, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrUpstream, http.StatusBadGateway},
		{fmt.Errorf("something odd"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "err=%v", tc.err)
	}
}

func TestStatusForWrappedError(t *testing.T) {
	err := fmt.Errorf("code recently sent: %w", domain.ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, statusFor(err))
	assert.Equal(t, "rate_limited", domain.Kind(err))
}
