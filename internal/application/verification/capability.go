package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/infrastructure/redis"
	"github.com/yurtapp/account-api/internal/pkg/token"
)

func capabilityKey(tok string) string {
	return "pwreset:" + tok
}

// MintCapability creates an unguessable single-use token authorizing a
// password reset for the account. Minted only after a recovery code has
// been consumed.
func (s *Service) MintCapability(ctx context.Context, accountID, originIP string) (string, error) {
	tok, err := token.NewCapability()
	if err != nil {
		return "", fmt.Errorf("generate capability token: %w", err)
	}

	payload, err := json.Marshal(domain.ResetCapability{
		AccountID: accountID,
		OriginIP:  originIP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal capability: %w", err)
	}
	if err := s.store.Put(ctx, capabilityKey(tok), payload, s.opts.ResetCapabilityTTL); err != nil {
		return "", fmt.Errorf("store capability: %w", err)
	}

	slog.Info("reset capability minted", "account_id", accountID)
	return tok, nil
}

// RedeemCapability exchanges a capability token for the account it grants a
// reset on. The token is deleted whether or not redemption succeeds, so a
// token only ever gets one attempt.
func (s *Service) RedeemCapability(ctx context.Context, tok string) (*domain.ResetCapability, error) {
	payload, err := s.store.Get(ctx, capabilityKey(tok))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, fmt.Errorf("capability unknown or expired: %w", domain.ErrInvalidCapability)
		}
		return nil, fmt.Errorf("load capability: %w", err)
	}

	// Burn it first. Even a malformed record must not be redeemable twice.
	if err := s.store.Delete(ctx, capabilityKey(tok)); err != nil {
		return nil, fmt.Errorf("delete capability: %w", err)
	}

	var rc domain.ResetCapability
	if err := json.Unmarshal(payload, &rc); err != nil {
		return nil, fmt.Errorf("unmarshal capability: %w", err)
	}

	slog.Info("reset capability redeemed", "account_id", rc.AccountID)
	return &rc, nil
}
