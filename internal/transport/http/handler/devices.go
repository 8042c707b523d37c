package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yurtapp/account-api/internal/application/device"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/transport/http/middleware"
)

// DeviceHandler exposes the device registry to its owner.
type DeviceHandler struct {
	svc *device.Service
}

func NewDeviceHandler(svc *device.Service) *DeviceHandler { return &DeviceHandler{svc: svc} }

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	views, err := h.svc.List(r.Context(), claims.UserID, claims.DeviceUUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Delete logs out the given device. Deleting the row revokes its refresh
// token at the registry level.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "device logged out")
}
