package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yurtapp/account-api/internal/application/user"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/pkg/clientip"
	"github.com/yurtapp/account-api/internal/transport/http/middleware"
)

const maxPhotoSize = 5 << 20 // 5 MiB

// UserHandler handles registration and profile endpoints.
type UserHandler struct {
	svc *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	u, err := h.svc.Register(r.Context(), &req, clientip.FromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	u, err := h.svc.Get(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	u, err := h.svc.Update(r.Context(), claims.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	if err := h.svc.ChangePassword(r.Context(), claims.UserID, &req); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "password changed")
}

func (h *UserHandler) UpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req domain.NotificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	u, err := h.svc.UpdateNotificationSettings(r.Context(), claims.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, fmt.Errorf("invalid multipart form: %w", domain.ErrBadRequest))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, fmt.Errorf("missing photo field: %w", domain.ErrBadRequest))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := h.svc.UploadProfilePhoto(r.Context(), claims.UserID, file, contentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profile_photo": url})
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "account deleted")
}
