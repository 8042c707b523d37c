package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/pkg/validate"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Verifier is the code engine: issue and consume 6-digit codes, mint and
// redeem single-use reset capabilities.
type Verifier interface {
	Issue(ctx context.Context, purpose domain.Purpose, accountID, originIP string) (string, error)
	Consume(ctx context.Context, purpose domain.Purpose, accountID, code, originIP string) error
	MintCapability(ctx context.Context, accountID, originIP string) (string, error)
	RedeemCapability(ctx context.Context, token string) (*domain.ResetCapability, error)
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// SessionIssuer logs a user in after a successful activation verify.
type SessionIssuer interface {
	IssueFor(ctx context.Context, userID, deviceUUID string, meta domain.DeviceMetadata) (*domain.TokenPair, error)
}

// Service drives the account activation and password recovery flows on top
// of the verification engine.
type Service struct {
	users    UserStore
	verifier Verifier
	mailer   Mailer
	sms      SMSSender
	sessions SessionIssuer
}

func NewService(users UserStore, verifier Verifier, mailer Mailer, sms SMSSender, sessions SessionIssuer) *Service {
	return &Service{users: users, verifier: verifier, mailer: mailer, sms: sms, sessions: sessions}
}

// SendActivationCode issues (or re-issues) the activation code for a pending
// account and emails it. Unlike registration, a failed email here is an
// error: the caller explicitly asked for the code and got nothing.
func (s *Service) SendActivationCode(ctx context.Context, req *domain.SendCodeRequest, originIP string) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u.IsActive {
		return fmt.Errorf("account already activated: %w", domain.ErrAlreadyActive)
	}

	code, err := s.verifier.Issue(ctx, domain.PurposeRegistration, u.UserID, originIP)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(u.Email, "Activate your account",
		fmt.Sprintf("Your activation code is %s. It expires in 5 minutes.", code)); err != nil {
		return fmt.Errorf("send activation email: %w", domain.ErrUpstream)
	}
	return nil
}

// VerifyActivation consumes the activation code, flips the account to active
// and logs the user in on the presenting device.
func (s *Service) VerifyActivation(ctx context.Context, req *domain.VerifyCodeRequest, originIP string, meta domain.DeviceMetadata) (*domain.TokenPair, *domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}

	if err := s.verifier.Consume(ctx, domain.PurposeRegistration, u.UserID, req.Code, originIP); err != nil {
		return nil, nil, err
	}

	if !u.IsActive {
		if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"is_active": true}); err != nil {
			return nil, nil, fmt.Errorf("activate account: %w", err)
		}
		u.IsActive = true
		slog.Info("account activated", "user_id", u.UserID)
	}

	pair, err := s.sessions.IssueFor(ctx, u.UserID, req.DeviceUUID, meta)
	if err != nil {
		return nil, nil, err
	}
	return pair, u, nil
}

// RequestPasswordRecovery issues a recovery code for an active account and
// delivers it by email, plus SMS when a phone number is on file. SMS delivery
// is best-effort; email is the one that must land.
func (s *Service) RequestPasswordRecovery(ctx context.Context, req *domain.SendCodeRequest, originIP string) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if !u.IsActive || !u.Enable {
		return fmt.Errorf("no recoverable account: %w", domain.ErrNotFound)
	}

	code, err := s.verifier.Issue(ctx, domain.PurposeRecovery, u.UserID, originIP)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Your password recovery code is %s. It expires in 10 minutes.", code)
	if err := s.mailer.SendEmail(u.Email, "Password recovery", msg); err != nil {
		return fmt.Errorf("send recovery email: %w", domain.ErrUpstream)
	}
	// The SMS channel is optional wiring; s.sms is nil when SNS is not configured.
	if s.sms != nil && u.Phone != nil && *u.Phone != "" {
		if err := s.sms.SendSMS(ctx, *u.Phone, msg); err != nil {
			slog.Warn("failed to send recovery SMS", "user_id", u.UserID, "err", err)
		}
	}
	return nil
}

// VerifyRecoveryCode consumes the recovery code and returns a single-use
// reset capability token. The token is the only thing that authorizes the
// subsequent password change.
func (s *Service) VerifyRecoveryCode(ctx context.Context, req *domain.VerifyCodeRequest, originIP string) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if err := s.verifier.Consume(ctx, domain.PurposeRecovery, u.UserID, req.Code, originIP); err != nil {
		return "", err
	}
	return s.verifier.MintCapability(ctx, u.UserID, originIP)
}

// ResetPassword redeems the capability token and sets the new password.
func (s *Service) ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	rc, err := s.verifier.RedeemCapability(ctx, req.Token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Update(ctx, rc.AccountID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password reset", "user_id", rc.AccountID)
	return nil
}
