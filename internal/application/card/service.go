package card

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/pkg/id"
	"github.com/yurtapp/account-api/internal/pkg/validate"
)

type Repository interface {
	Put(ctx context.Context, c *domain.Card) error
	Get(ctx context.Context, cardID string) (*domain.Card, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Card, error)
	Update(ctx context.Context, cardID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, cardID string) error
	ClearDefault(ctx context.Context, userID, keepCardID string) error
}

// Service manages a user's saved payment cards. A user's first card becomes
// the default automatically; marking another card default clears the flag
// from the rest.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID string, req *domain.CreateCardRequest) (*domain.Card, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	for _, ec := range existing {
		if ec.Number == req.Number {
			return nil, fmt.Errorf("card number already saved: %w", domain.ErrConflict)
		}
	}

	now := time.Now().UTC()
	c := &domain.Card{
		CardID:      id.New(),
		UserID:      userID,
		Name:        req.Name,
		Number:      req.Number,
		HolderName:  req.HolderName,
		Expiry:      req.Expiry,
		PhoneNumber: req.PhoneNumber,
		Default:     req.Default || len(existing) == 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("store card: %w", err)
	}
	if c.Default {
		if err := s.repo.ClearDefault(ctx, userID, c.CardID); err != nil {
			slog.Warn("failed to clear previous default card", "user_id", userID, "err", err)
		}
	}

	slog.Info("card added", "user_id", userID, "card_id", c.CardID)
	return c, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Card, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, cardID string) (*domain.Card, error) {
	c, err := s.repo.Get(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("card belongs to another user: %w", domain.ErrForbidden)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, cardID string, req *domain.UpdateCardRequest) (*domain.Card, error) {
	c, err := s.Get(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Default != nil {
		updates["is_default"] = *req.Default
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, cardID, updates); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	if req.Default != nil && *req.Default {
		if err := s.repo.ClearDefault(ctx, userID, cardID); err != nil {
			slog.Warn("failed to clear previous default card", "user_id", userID, "err", err)
		}
	}
	return s.Get(ctx, userID, c.CardID)
}

// Delete removes the card. If the default card is removed and others remain,
// the most recently added one takes over as default.
func (s *Service) Delete(ctx context.Context, userID, cardID string) error {
	c, err := s.Get(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, cardID); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if c.Default {
		remaining, err := s.repo.ListByUser(ctx, userID)
		if err != nil || len(remaining) == 0 {
			return nil
		}
		newest := remaining[0]
		for _, rc := range remaining[1:] {
			if rc.CreatedAt.After(newest.CreatedAt) {
				newest = rc
			}
		}
		if err := s.repo.Update(ctx, newest.CardID, map[string]interface{}{"is_default": true}); err != nil {
			slog.Warn("failed to promote new default card", "user_id", userID, "err", err)
		}
	}
	return nil
}
