package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yurtapp/account-api/internal/application/card"
	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/transport/http/middleware"
)

// CardHandler handles saved-card CRUD. Card numbers never leave the API in
// full; responses carry the masked form only.
type CardHandler struct {
	svc *card.Service
}

func NewCardHandler(svc *card.Service) *CardHandler { return &CardHandler{svc: svc} }

type cardView struct {
	domain.Card
	MaskedNumber string `json:"card_number"`
}

func toCardView(c domain.Card) cardView {
	return cardView{Card: c, MaskedNumber: c.MaskedNumber()}
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req domain.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	c, err := h.svc.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCardView(*c))
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	cards, err := h.svc.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]cardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, toCardView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	c, err := h.svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardView(*c))
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	var req domain.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", domain.ErrBadRequest))
		return
	}
	c, err := h.svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardView(*c))
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "card deleted")
}
