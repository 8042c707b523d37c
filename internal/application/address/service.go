package address

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
	Put(ctx context.Context, a *domain.Address) error
	Get(ctx context.Context, addressID string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, addressID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, addressID string) error
	ClearDefault(ctx context.Context, userID, keepAddressID string) error
}

// Service manages delivery addresses with the same default-flag rules as
// cards: first one in becomes the default, a new default displaces the old.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID string, req *domain.CreateAddressRequest) (*domain.Address, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	now := time.Now().UTC()
	a := &domain.Address{
		AddressID:    id.New(),
		UserID:       userID,
		Lat:          req.Lat,
		Long:         req.Long,
		Name:         req.Name,
		Address:      req.Address,
		Apartment:    req.Apartment,
		Entrance:     req.Entrance,
		Floor:        req.Floor,
		DoorPhone:    req.DoorPhone,
		Instructions: req.Instructions,
		Default:      req.Default || len(existing) == 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, fmt.Errorf("store address: %w", err)
	}
	if a.Default {
		if err := s.repo.ClearDefault(ctx, userID, a.AddressID); err != nil {
			slog.Warn("failed to clear previous default address", "user_id", userID, "err", err)
		}
	}

	slog.Info("address added", "user_id", userID, "address_id", a.AddressID)
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	a, err := s.repo.Get(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("address belongs to another user: %w", domain.ErrForbidden)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, userID, addressID string, req *domain.UpdateAddressRequest) (*domain.Address, error) {
	if _, err := s.Get(ctx, userID, addressID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Lat != nil {
		updates["lat"] = *req.Lat
	}
	if req.Long != nil {
		updates["long"] = *req.Long
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Apartment != nil {
		updates["apartment"] = *req.Apartment
	}
	if req.Entrance != nil {
		updates["entrance"] = *req.Entrance
	}
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}
	if req.DoorPhone != nil {
		updates["door_phone"] = *req.DoorPhone
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.Default != nil {
		updates["is_default"] = *req.Default
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, addressID, updates); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	if req.Default != nil && *req.Default {
		if err := s.repo.ClearDefault(ctx, userID, addressID); err != nil {
			slog.Warn("failed to clear previous default address", "user_id", userID, "err", err)
		}
	}
	return s.Get(ctx, userID, addressID)
}

func (s *Service) Delete(ctx context.Context, userID, addressID string) error {
	a, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if a.Default {
		remaining, err := s.repo.ListByUser(ctx, userID)
		if err != nil || len(remaining) == 0 {
			return nil
		}
		newest := remaining[0]
		for _, ra := range remaining[1:] {
			if ra.CreatedAt.After(newest.CreatedAt) {
				newest = ra
			}
		}
		if err := s.repo.Update(ctx, newest.AddressID, map[string]interface{}{"is_default": true}); err != nil {
			slog.Warn("failed to promote new default address", "user_id", userID, "err", err)
		}
	}
	return nil
}
