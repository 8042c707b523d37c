package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yurtapp/account-api/internal/application/auth"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/infrastructure/geoip"
	"github.com/yurtapp/account-api/internal/metrics"
	"github.com/yurtapp/account-api/internal/pkg/clientip"
)

// ActivationHandler drives the account activation flow.
type ActivationHandler struct {
	svc     *auth.Service
	geo     geoip.Resolver
	metrics metrics.Recorder
}

func NewActivationHandler(svc *auth.Service, geo geoip.Resolver, rec metrics.Recorder) *ActivationHandler {
	return &ActivationHandler{svc: svc, geo: geo, metrics: rec}
}

func (h *ActivationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req domain.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	if err := h.svc.SendActivationCode(r.Context(), &req, clientip.FromRequest(r)); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.RecordCodeIssued(string(domain.PurposeRegistration))
	writeMessage(w, "activation code sent")
}

func (h *ActivationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	pair, u, err := h.svc.VerifyActivation(r.Context(), &req, clientip.FromRequest(r), deviceMeta(r, h.geo))
	if err != nil {
		h.metrics.RecordCodeConsumed(string(domain.PurposeRegistration), domain.Kind(err))
		writeError(w, err)
		return
	}
	h.metrics.RecordCodeConsumed(string(domain.PurposeRegistration), "ok")
	writeJSON(w, http.StatusOK, AuthEnvelope{Tokens: pair, User: u})
}
