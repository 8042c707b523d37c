package card

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yurtapp/account-api/internal/domain"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Put(ctx context.Context, c *domain.Card) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, cardID string) (*domain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, cardID string, updates map[string]interface{}) error {
	return m.Called(ctx, cardID, updates).Error(0)
}

func (m *mockRepo) HardDelete(ctx context.Context, cardID string) error {
	return m.Called(ctx, cardID).Error(0)
}

func (m *mockRepo) ClearDefault(ctx context.Context, userID, keepCardID string) error {
	return m.Called(ctx, userID, keepCardID).Error(0)
}

func validCardRequest() *domain.CreateCardRequest {
	return &domain.CreateCardRequest{
		Name:       "My card",
		Number:     "8600123412349012",
		HolderName: "ADA LOVELACE",
		Expiry:     "12/27",
	}
}

func TestCreateFirstCardBecomesDefault(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Card{}, nil)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Card")).Return(nil)
	repo.On("ClearDefault", mock.Anything, "u1", mock.Anything).Return(nil)

	c, err := svc.Create(context.Background(), "u1", validCardRequest())
	require.NoError(t, err)
	assert.True(t, c.Default)
	assert.NotEmpty(t, c.CardID)
}

func TestCreateSecondCardNotDefault(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Card{{CardID: "c1", Default: true}}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	c, err := svc.Create(context.Background(), "u1", validCardRequest())
	require.NoError(t, err)
	assert.False(t, c.Default)
	repo.AssertNotCalled(t, "ClearDefault", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateExplicitDefaultClearsOthers(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Card{{CardID: "c1", Default: true}}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	repo.On("ClearDefault", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)

	req := validCardRequest()
	req.Default = true
	c, err := svc.Create(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.True(t, c.Default)
	repo.AssertExpectations(t)
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("ListByUser", mock.Anything, "u1").
		Return([]domain.Card{{CardID: "c1", UserID: "u1", Number: "8600123412349012"}}, nil)

	_, err := svc.Create(context.Background(), "u1", validCardRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreateRejectsBadNumber(t *testing.T) {
	svc := NewService(new(mockRepo))

	req := validCardRequest()
	req.Number = "not-a-number"
	_, err := svc.Create(context.Background(), "u1", req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestGetRejectsForeignCard(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "c1").Return(&domain.Card{CardID: "c1", UserID: "someone-else"}, nil)

	_, err := svc.Get(context.Background(), "u1", "c1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteDefaultPromotesNewest(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	now := time.Now()
	repo.On("Get", mock.Anything, "c1").Return(&domain.Card{CardID: "c1", UserID: "u1", Default: true}, nil)
	repo.On("HardDelete", mock.Anything, "c1").Return(nil)
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Card{
		{CardID: "c2", UserID: "u1", CreatedAt: now.Add(-2 * time.Hour)},
		{CardID: "c3", UserID: "u1", CreatedAt: now.Add(-time.Hour)},
	}, nil)
	repo.On("Update", mock.Anything, "c3", map[string]interface{}{"is_default": true}).Return(nil)

	err := svc.Delete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMaskedNumber(t *testing.T) {
	c := domain.Card{Number: "8600123412349012"}
	assert.Equal(t, "8600 **** **** 9012", c.MaskedNumber())
}
