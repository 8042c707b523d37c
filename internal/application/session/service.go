package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yurtapp/account-api/internal/domain"
	jwtinfra "github.com/yurtapp/account-api/internal/infrastructure/jwt"
	"github.com/yurtapp/account-api/internal/pkg/validate"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// DeviceRegistry is the authority on which devices may hold sessions. A
// device row that no longer exists cannot refresh.
type DeviceRegistry interface {
	Upsert(ctx context.Context, userID, deviceUUID string, meta domain.DeviceMetadata) (*domain.Device, bool, error)
	GetByUserAndUUID(ctx context.Context, userID, deviceUUID string) (*domain.Device, error)
	CacheTokens(ctx context.Context, deviceID, accessToken, refreshToken string) error
	Delete(ctx context.Context, userID, deviceID string) error
}

type TokenProvider interface {
	SignAccess(userID, deviceUUID string) (string, error)
	SignRefresh(userID, deviceUUID string) (string, error)
	VerifyRefresh(tokenStr string) (*jwtinfra.Claims, error)
}

// Service handles login, token refresh and logout.
type Service struct {
	users   UserStore
	devices DeviceRegistry
	tokens  TokenProvider
}

func NewService(users UserStore, devices DeviceRegistry, tokens TokenProvider) *Service {
	return &Service{users: users, devices: devices, tokens: tokens}
}

// Login authenticates by email and password and binds the session to the
// presented device. An unknown email and a wrong password produce the same
// error, so the endpoint cannot be used to probe which emails exist.
func (s *Service) Login(ctx context.Context, req *domain.LoginRequest, meta domain.DeviceMetadata) (*domain.TokenPair, *domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("login failed: %w", domain.ErrInvalidCredentials)
		}
		return nil, nil, fmt.Errorf("lookup user: %w", err)
	}
	if !u.Enable {
		return nil, nil, fmt.Errorf("login failed: %w", domain.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, fmt.Errorf("login failed: %w", domain.ErrInvalidCredentials)
	}
	if !u.IsActive {
		return nil, nil, fmt.Errorf("account not activated: %w", domain.ErrForbidden)
	}

	pair, err := s.issueFor(ctx, u.UserID, req.DeviceUUID, meta)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("login", "user_id", u.UserID)
	return pair, u, nil
}

// IssueFor mints a device-bound token pair for an already-authenticated user.
// Used by the activation flow, which logs the user in on successful verify.
func (s *Service) IssueFor(ctx context.Context, userID, deviceUUID string, meta domain.DeviceMetadata) (*domain.TokenPair, error) {
	return s.issueFor(ctx, userID, deviceUUID, meta)
}

func (s *Service) issueFor(ctx context.Context, userID, deviceUUID string, meta domain.DeviceMetadata) (*domain.TokenPair, error) {
	d, _, err := s.devices.Upsert(ctx, userID, deviceUUID, meta)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.SignAccess(userID, d.UUID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.SignRefresh(userID, d.UUID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.devices.CacheTokens(ctx, d.DeviceID, access, refresh); err != nil {
		slog.Warn("failed to cache tokens on device", "device_id", d.DeviceID, "err", err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated. The device registry is the authority: if the
// device row was deleted since the token was minted, the exchange is refused.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}

	d, err := s.devices.GetByUserAndUUID(ctx, claims.UserID, claims.DeviceUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("device logged out: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("lookup device: %w", err)
	}

	access, err := s.tokens.SignAccess(claims.UserID, claims.DeviceUUID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	if err := s.devices.CacheTokens(ctx, d.DeviceID, access, ""); err != nil {
		slog.Warn("failed to cache access token on device", "device_id", d.DeviceID, "err", err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout removes the caller's device row, which both ends the session and
// revokes future refreshes for that device.
func (s *Service) Logout(ctx context.Context, userID, deviceUUID string) error {
	if deviceUUID == "" {
		return fmt.Errorf("session has no device binding: %w", domain.ErrBadRequest)
	}

	d, err := s.devices.GetByUserAndUUID(ctx, userID, deviceUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil // already logged out
		}
		return fmt.Errorf("lookup device: %w", err)
	}
	return s.devices.Delete(ctx, userID, d.DeviceID)
}
