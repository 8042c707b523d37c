package user

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yurtapp/account-api/internal/domain"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

func (m *mockRepo) HardDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRepo) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) Issue(ctx context.Context, purpose domain.Purpose, accountID, originIP string) (string, error) {
	args := m.Called(ctx, purpose, accountID, originIP)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}

func (m *mockPhotos) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockPhotos) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func validRegisterRequest() *domain.CreateUserRequest {
	return &domain.CreateUserRequest{
		Email:     "new@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Birthday:  "1990-12-10",
	}
}

func TestRegisterNewUser(t *testing.T) {
	repo := new(mockRepo)
	issuer := new(mockIssuer)
	mailer := new(mockMailer)
	svc := NewService(repo, issuer, mailer, new(mockPhotos))

	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	issuer.On("Issue", mock.Anything, domain.PurposeRegistration, mock.AnythingOfType("string"), "203.0.113.7").
		Return("123456", nil)
	mailer.On("SendEmail", "new@example.com", mock.Anything, mock.Anything).Return(nil)

	u, err := svc.Register(context.Background(), validRegisterRequest(), "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.NotEmpty(t, u.UserID)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	require.NotNil(t, u.Birthday)
	assert.Equal(t, 1990, u.Birthday.Year())

	repo.AssertExpectations(t)
	issuer.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestRegisterActiveEmailConflicts(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockIssuer), new(mockMailer), new(mockPhotos))

	repo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(&domain.User{UserID: "u1", Email: "new@example.com", IsActive: true}, nil)

	_, err := svc.Register(context.Background(), validRegisterRequest(), "203.0.113.7")
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegisterReplacesInactiveAccount(t *testing.T) {
	repo := new(mockRepo)
	issuer := new(mockIssuer)
	mailer := new(mockMailer)
	svc := NewService(repo, issuer, mailer, new(mockPhotos))

	repo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(&domain.User{UserID: "stale", Email: "new@example.com", IsActive: false}, nil)
	repo.On("HardDelete", mock.Anything, "stale").Return(nil)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	issuer.On("Issue", mock.Anything, domain.PurposeRegistration, mock.Anything, mock.Anything).
		Return("123456", nil)
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u, err := svc.Register(context.Background(), validRegisterRequest(), "203.0.113.7")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", u.UserID)
	repo.AssertExpectations(t)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	repo := new(mockRepo)
	issuer := new(mockIssuer)
	mailer := new(mockMailer)
	svc := NewService(repo, issuer, mailer, new(mockPhotos))

	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	issuer.On("Issue", mock.Anything, domain.PurposeRegistration, mock.Anything, mock.Anything).
		Return("123456", nil)
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Register(context.Background(), validRegisterRequest(), "203.0.113.7")
	assert.NoError(t, err)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	svc := NewService(new(mockRepo), new(mockIssuer), new(mockMailer), new(mockPhotos))

	req := validRegisterRequest()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req, "203.0.113.7")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestChangePassword(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockIssuer), new(mockMailer), new(mockPhotos))

	hash, _ := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)
	repo.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)

	err := svc.ChangePassword(context.Background(), "u1", &domain.ChangePasswordRequest{
		CurrentPassword: "old password",
		NewPassword:     "brand new password",
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockIssuer), new(mockMailer), new(mockPhotos))

	hash, _ := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)

	err := svc.ChangePassword(context.Background(), "u1", &domain.ChangePasswordRequest{
		CurrentPassword: "not the password",
		NewPassword:     "brand new password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateNotificationSettingsPartial(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	svc := NewService(repo, new(mockIssuer), new(mockMailer), photos)

	off := false
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{"promotional_notification": false}).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Notification: true}, nil)

	u, err := svc.UpdateNotificationSettings(context.Background(), "u1", &domain.NotificationSettingsRequest{
		PromoNotif: &off,
	})
	require.NoError(t, err)
	assert.True(t, u.Notification)
	repo.AssertExpectations(t)
}

func TestUpdateNotificationSettingsEmpty(t *testing.T) {
	svc := NewService(new(mockRepo), new(mockIssuer), new(mockMailer), new(mockPhotos))

	_, err := svc.UpdateNotificationSettings(context.Background(), "u1", &domain.NotificationSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestGetResolvesPhotoURL(t *testing.T) {
	repo := new(mockRepo)
	photos := new(mockPhotos)
	svc := NewService(repo, new(mockIssuer), new(mockMailer), photos)

	repo.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", ProfilePhotoKey: "profiles/u1/abc"}, nil)
	photos.On("PresignedURL", mock.Anything, "profiles/u1/abc", mock.Anything).
		Return("https://bucket/profiles/u1/abc?sig=x", nil)

	u, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/profiles/u1/abc?sig=x", u.ProfilePhotoURL)
}
