package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yurtapp/account-api/internal/domain"
	"github.com/yurtapp/account-api/internal/pkg/id"
	"github.com/yurtapp/account-api/internal/pkg/validate"
)

const (
	birthdayLayout = "2006-01-02"
	photoURLTTL    = time.Hour
)

type Repository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, userID string) error
	SoftDelete(ctx context.Context, userID string) error
}

type CodeIssuer interface {
	Issue(ctx context.Context, purpose domain.Purpose, accountID, originIP string) (string, error)
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type PhotoStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Service owns account lifecycle and profile management.
type Service struct {
	repo   Repository
	codes  CodeIssuer
	mailer Mailer
	photos PhotoStore
}

func NewService(repo Repository, codes CodeIssuer, mailer Mailer, photos PhotoStore) *Service {
	return &Service{repo: repo, codes: codes, mailer: mailer, photos: photos}
}

// Register creates an inactive account and sends the activation code to the
// registered email. An existing active account with the same email is a
// conflict; an existing inactive one is discarded and replaced, so a user who
// abandoned a half-finished signup can simply start over.
func (s *Service) Register(ctx context.Context, req *domain.CreateUserRequest, originIP string) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		if existing.IsActive {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		if err := s.repo.HardDelete(ctx, existing.UserID); err != nil {
			return nil, fmt.Errorf("replace inactive account: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     false,
		Notification: true,
		PromoNotif:   true,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Birthday != "" {
		bday, err := time.Parse(birthdayLayout, req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("birthday must be YYYY-MM-DD: %w", domain.ErrBadRequest)
		}
		u.Birthday = &bday
	}

	if err := s.repo.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	code, err := s.codes.Issue(ctx, domain.PurposeRegistration, u.UserID, originIP)
	if err != nil {
		return nil, fmt.Errorf("issue activation code: %w", err)
	}
	if err := s.mailer.SendEmail(u.Email, "Activate your account",
		fmt.Sprintf("Your activation code is %s. It expires in 5 minutes.", code)); err != nil {
		// The account exists and the code is live; the client can ask for a resend.
		slog.Warn("failed to send activation email", "user_id", u.UserID, "err", err)
	}

	slog.Info("user registered", "user_id", u.UserID)
	return u, nil
}

// Get loads a user and resolves their profile photo into a presigned URL.
func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.resolvePhotoURL(ctx, u)
	return u, nil
}

func (s *Service) Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Birthday != nil {
		bday, err := time.Parse(birthdayLayout, *req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("birthday must be YYYY-MM-DD: %w", domain.ErrBadRequest)
		}
		updates["birthday"] = bday.Format(time.RFC3339)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.Get(ctx, userID)
}

// ChangePassword requires the current password to match before setting a new one.
func (s *Service) ChangePassword(ctx context.Context, userID string, req *domain.ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password does not match: %w", domain.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

// UpdateNotificationSettings applies a partial toggle update; nil fields keep
// their current value.
func (s *Service) UpdateNotificationSettings(ctx context.Context, userID string, req *domain.NotificationSettingsRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Notification != nil {
		updates["notification"] = *req.Notification
	}
	if req.PromoNotif != nil {
		updates["promotional_notification"] = *req.PromoNotif
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("update notification settings: %w", err)
	}
	return s.Get(ctx, userID)
}

// UploadProfilePhoto stores the photo in S3 and records its key on the user.
// Returns a presigned URL for the fresh upload.
func (s *Service) UploadProfilePhoto(ctx context.Context, userID string, r io.Reader, contentType string) (string, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profiles/%s/%s", userID, id.New())
	if err := s.photos.Upload(ctx, key, r, contentType); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{"profile_photo_key": key}); err != nil {
		return "", fmt.Errorf("record photo key: %w", err)
	}
	if u.ProfilePhotoKey != "" {
		if err := s.photos.Delete(ctx, u.ProfilePhotoKey); err != nil {
			slog.Warn("failed to delete previous photo", "user_id", userID, "key", u.ProfilePhotoKey, "err", err)
		}
	}

	url, err := s.photos.PresignedURL(ctx, key, photoURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign photo: %w", err)
	}
	return url, nil
}

// Delete disables the account. Rows are kept for audit; the user simply
// stops authenticating.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("disable user: %w", err)
	}
	slog.Info("user disabled", "user_id", userID)
	return nil
}

func (s *Service) resolvePhotoURL(ctx context.Context, u *domain.User) {
	if u.ProfilePhotoKey == "" {
		return
	}
	url, err := s.photos.PresignedURL(ctx, u.ProfilePhotoKey, photoURLTTL)
	if err != nil {
		slog.Warn("failed to presign profile photo", "user_id", u.UserID, "err", err)
		return
	}
	u.ProfilePhotoURL = url
}
