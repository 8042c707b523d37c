package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yurtapp/account-api/internal/application/auth"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/metrics"
	"github.com/yurtapp/account-api/internal/pkg/clientip"
)

// PasswordRecoveryHandler drives the forgot-password flow: request a code,
// verify it for a reset capability, redeem the capability for a new password.
type PasswordRecoveryHandler struct {
	svc     *auth.Service
	metrics metrics.Recorder
}

func NewPasswordRecoveryHandler(svc *auth.Service, rec metrics.Recorder) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc, metrics: rec}
}

func (h *PasswordRecoveryHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req domain.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	if err := h.svc.RequestPasswordRecovery(r.Context(), &req, clientip.FromRequest(r)); err != nil {
		writeError(w, err)
		return
	}
	h.metrics.RecordCodeIssued(string(domain.PurposeRecovery))
	writeMessage(w, "recovery code sent")
}

func (h *PasswordRecoveryHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	token, err := h.svc.VerifyRecoveryCode(r.Context(), &req, clientip.FromRequest(r))
	if err != nil {
		h.metrics.RecordCodeConsumed(string(domain.PurposeRecovery), domain.Kind(err))
		writeError(w, err)
		return
	}
	h.metrics.RecordCodeConsumed(string(domain.PurposeRecovery), "ok")
	writeJSON(w, http.StatusOK, CapabilityEnvelope{Token: token})
}

func (h *PasswordRecoveryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	if err := h.svc.ResetPassword(r.Context(), &req); err != nil {
		h.metrics.RecordCapabilityRedeemed(domain.Kind(err))
		writeError(w, err)
		return
	}
	h.metrics.RecordCapabilityRedeemed("ok")
	writeMessage(w, "password reset")
}
