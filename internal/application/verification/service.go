package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/infrastructure/redis"
	"github.com/yurtapp/account-api/internal/pkg/otp"
)

// Store is the ephemeral keyed store behind codes, resend markers and
// capability tokens. Keys carry their own TTL; an expired key reads as absent.
type Store interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Options carries the lifetimes of everything the engine stores.
type Options struct {
	ActivationCodeTTL  time.Duration
	RecoveryCodeTTL    time.Duration
	ResendCooldown     time.Duration
	ResetCapabilityTTL time.Duration
}

// Service issues and consumes short-lived 6-digit verification codes bound
// to the client IP they were requested from, and mints single-use password
// reset capability tokens once a recovery code checks out.
type Service struct {
	store Store
	opts  Options
}

func NewService(store Store, opts Options) *Service {
	return &Service{store: store, opts: opts}
}

func codeKey(purpose domain.Purpose, accountID string) string {
	return fmt.Sprintf("verify:%s:%s", purpose, accountID)
}

func resendKey(accountID, originIP string) string {
	return fmt.Sprintf("verify:resend:%s:%s", accountID, originIP)
}

// Issue generates a fresh code for (purpose, account) and binds it to the
// requesting IP. A repeat request from the same (account, IP) within the
// cooldown window is rejected with ErrRateLimited. A repeat request from a
// different IP overwrites the stored record, so only the latest origin can
// consume — last origin wins.
func (s *Service) Issue(ctx context.Context, purpose domain.Purpose, accountID, originIP string) (string, error) {
	if !purpose.Valid() {
		return "", fmt.Errorf("purpose %q: %w", purpose, domain.ErrBadRequest)
	}

	if _, err := s.store.Get(ctx, resendKey(accountID, originIP)); err == nil {
		return "", fmt.Errorf("code recently sent: %w", domain.ErrRateLimited)
	} else if !errors.Is(err, redis.ErrKeyNotFound) {
		return "", fmt.Errorf("check resend marker: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	record := domain.VerificationRecord{
		Purpose:   purpose,
		AccountID: accountID,
		Code:      code,
		OriginIP:  originIP,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal verification record: %w", err)
	}

	ttl := s.opts.ActivationCodeTTL
	if purpose == domain.PurposeRecovery {
		ttl = s.opts.RecoveryCodeTTL
	}
	if err := s.store.Put(ctx, codeKey(purpose, accountID), payload, ttl); err != nil {
		return "", fmt.Errorf("store verification record: %w", err)
	}
	if err := s.store.Put(ctx, resendKey(accountID, originIP), []byte("1"), s.opts.ResendCooldown); err != nil {
		// The code itself is stored; a lost marker only weakens throttling.
		slog.Warn("failed to store resend marker", "account_id", accountID, "err", err)
	}

	slog.Info("verification code issued",
		"purpose", purpose, "account_id", accountID, "origin_ip", originIP)
	return code, nil
}

// Consume checks a submitted code against the stored record. The record is
// deleted only on a successful match; origin and code mismatches leave it in
// place so the legitimate holder can still use it. The resend marker for the
// issuing origin is cleared together with the record.
func (s *Service) Consume(ctx context.Context, purpose domain.Purpose, accountID, code, originIP string) error {
	if !purpose.Valid() {
		return fmt.Errorf("purpose %q: %w", purpose, domain.ErrBadRequest)
	}

	payload, err := s.store.Get(ctx, codeKey(purpose, accountID))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return fmt.Errorf("no active code: %w", domain.ErrExpired)
		}
		return fmt.Errorf("load verification record: %w", err)
	}

	var record domain.VerificationRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return fmt.Errorf("unmarshal verification record: %w", err)
	}

	if record.OriginIP != originIP {
		slog.Warn("verification origin mismatch",
			"purpose", purpose, "account_id", accountID,
			"issued_to", record.OriginIP, "presented_from", originIP)
		return fmt.Errorf("code requested from another address: %w", domain.ErrOriginMismatch)
	}
	if record.Code != code {
		return fmt.Errorf("code does not match: %w", domain.ErrInvalidCode)
	}

	if err := s.store.Delete(ctx, codeKey(purpose, accountID)); err != nil {
		return fmt.Errorf("delete verification record: %w", err)
	}
	if err := s.store.Delete(ctx, resendKey(accountID, record.OriginIP)); err != nil {
		slog.Warn("failed to delete resend marker", "account_id", accountID, "err", err)
	}

	slog.Info("verification code consumed", "purpose", purpose, "account_id", accountID)
	return nil
}
