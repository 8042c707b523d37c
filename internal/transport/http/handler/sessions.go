package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yurtapp/account-api/internal/application/session"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/infrastructure/geoip"
	"github.com/yurtapp/account-api/internal/metrics"
	"github.com/yurtapp/account-api/internal/transport/http/middleware"
)

// SessionHandler handles login, token refresh and logout.
type SessionHandler struct {
	svc     *session.Service
	geo     geoip.Resolver
	metrics metrics.Recorder
}

func NewSessionHandler(svc *session.Service, geo geoip.Resolver, rec metrics.Recorder) *SessionHandler {
	return &SessionHandler{svc: svc, geo: geo, metrics: rec}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	pair, u, err := h.svc.Login(r.Context(), &req, deviceMeta(r, h.geo))
	if err != nil {
		h.metrics.RecordLogin(domain.Kind(err))
		writeError(w, err)
		return
	}
	h.metrics.RecordLogin("ok")
	writeJSON(w, http.StatusOK, AuthEnvelope{Tokens: pair, User: u})
}

func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.metrics.RecordTokenRefresh(domain.Kind(err))
		writeError(w, err)
		return
	}
	h.metrics.RecordTokenRefresh("ok")
	writeJSON(w, http.StatusOK, AuthEnvelope{Tokens: pair})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.Logout(r.Context(), claims.UserID, claims.DeviceUUID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "logged out")
}
