package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/pkg/id"
)

type Repository interface {
	Put(ctx context.Context, d *domain.Device) error
	Get(ctx context.Context, deviceID string) (*domain.Device, error)
	GetByUserAndUUID(ctx context.Context, userID, deviceUUID string) (*domain.Device, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Device, error)
	Update(ctx context.Context, deviceID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, deviceID string) error
}

// Service is the device registry: every login binds a session to a device
// row, and a row's existence is what keeps that session refreshable.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert finds or creates the device row for (userID, deviceUUID) and
// overwrites its metadata with what the current request observed. When the
// client presents no UUID a fresh one is generated, producing a new row.
// Returns the device and whether it was created.
func (s *Service) Upsert(ctx context.Context, userID, deviceUUID string, meta domain.DeviceMetadata) (*domain.Device, bool, error) {
	if deviceUUID == "" {
		deviceUUID = uuid.NewString()
	}

	existing, err := s.repo.GetByUserAndUUID(ctx, userID, deviceUUID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup device: %w", err)
	}

	if existing != nil {
		if err := s.repo.Update(ctx, existing.DeviceID, map[string]interface{}{
			"ip":     meta.IP,
			"name":   meta.Name,
			"city":   meta.City,
			"enable": true,
		}); err != nil {
			return nil, false, fmt.Errorf("update device: %w", err)
		}
		existing.IP = meta.IP
		existing.Name = meta.Name
		existing.City = meta.City
		existing.Enable = true
		// The repo stamps last_online on every update; mirror that here so the
		// returned device matches what was persisted.
		existing.LastOnline = time.Now().UTC()
		return existing, false, nil
	}

	d := &domain.Device{
		DeviceID:   id.New(),
		UUID:       deviceUUID,
		UserID:     userID,
		IP:         meta.IP,
		Name:       meta.Name,
		City:       meta.City,
		LastOnline: time.Now().UTC(),
		Enable:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, false, fmt.Errorf("store device: %w", err)
	}

	slog.Info("device registered", "user_id", userID, "device_uuid", deviceUUID)
	return d, true, nil
}

// GetByUserAndUUID exposes the registry lookup used by session refresh: a
// missing row means the device was logged out and must not refresh.
func (s *Service) GetByUserAndUUID(ctx context.Context, userID, deviceUUID string) (*domain.Device, error) {
	return s.repo.GetByUserAndUUID(ctx, userID, deviceUUID)
}

// CacheTokens records the tokens most recently minted for the device.
func (s *Service) CacheTokens(ctx context.Context, deviceID, accessToken, refreshToken string) error {
	updates := map[string]interface{}{"access_token": accessToken}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	return s.repo.Update(ctx, deviceID, updates)
}

// List returns the user's devices with the caller's own device flagged and
// sorted first; the rest are ordered by most recent activity.
func (s *Service) List(ctx context.Context, userID, currentDeviceUUID string) ([]domain.DeviceView, error) {
	devices, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	views := make([]domain.DeviceView, 0, len(devices))
	for _, d := range devices {
		views = append(views, domain.DeviceView{
			Device: d,
			Me:     d.UUID == currentDeviceUUID,
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Me != views[j].Me {
			return views[i].Me
		}
		return views[i].LastOnline.After(views[j].LastOnline)
	})
	return views, nil
}

// Delete logs out a device by removing its row. Only the owner may delete it.
func (s *Service) Delete(ctx context.Context, userID, deviceID string) error {
	d, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		return err
	}
	if d.UserID != userID {
		return fmt.Errorf("device belongs to another user: %w", domain.ErrForbidden)
	}
	if err := s.repo.HardDelete(ctx, deviceID); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}

	slog.Info("device logged out", "user_id", userID, "device_id", deviceID)
	return nil
}
