package address

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yurtapp/account-api/internal/domain"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Put(ctx context.Context, a *domain.Address) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, addressID string) (*domain.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, addressID string, updates map[string]interface{}) error {
	return m.Called(ctx, addressID, updates).Error(0)
}

func (m *mockRepo) HardDelete(ctx context.Context, addressID string) error {
	return m.Called(ctx, addressID).Error(0)
}

func (m *mockRepo) ClearDefault(ctx context.Context, userID, keepAddressID string) error {
	return m.Called(ctx, userID, keepAddressID).Error(0)
}

func TestCreateFirstAddressBecomesDefault(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Address{}, nil)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Address")).Return(nil)
	repo.On("ClearDefault", mock.Anything, "u1", mock.Anything).Return(nil)

	a, err := svc.Create(context.Background(), "u1", &domain.CreateAddressRequest{
		Name: "Home", Address: "12 Amir Temur Avenue",
	})
	require.NoError(t, err)
	assert.True(t, a.Default)
	assert.NotEmpty(t, a.AddressID)
}

func TestCreateRequiresAddressLine(t *testing.T) {
	svc := NewService(new(mockRepo))

	_, err := svc.Create(context.Background(), "u1", &domain.CreateAddressRequest{Name: "Home"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateSetDefaultClearsOthers(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "a1").Return(&domain.Address{AddressID: "a1", UserID: "u1"}, nil)
	repo.On("Update", mock.Anything, "a1", map[string]interface{}{"is_default": true}).Return(nil)
	repo.On("ClearDefault", mock.Anything, "u1", "a1").Return(nil)

	on := true
	_, err := svc.Update(context.Background(), "u1", "a1", &domain.UpdateAddressRequest{Default: &on})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateEmptyPayload(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "a1").Return(&domain.Address{AddressID: "a1", UserID: "u1"}, nil)

	_, err := svc.Update(context.Background(), "u1", "a1", &domain.UpdateAddressRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDeleteForeignAddress(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "a1").Return(&domain.Address{AddressID: "a1", UserID: "someone-else"}, nil)

	err := svc.Delete(context.Background(), "u1", "a1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}
