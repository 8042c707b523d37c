package device

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

func (m *mockRepo) Put(ctx context.Context, d *domain.Device) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, deviceID string) (*domain.Device, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *mockRepo) GetByUserAndUUID(ctx context.Context, userID, deviceUUID string) (*domain.Device, error) {
	args := m.Called(ctx, userID, deviceUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]domain.Device, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Device), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, deviceID string, updates map[string]interface{}) error {
	return m.Called(ctx, deviceID, updates).Error(0)
}

func (m *mockRepo) HardDelete(ctx context.Context, deviceID string) error {
	return m.Called(ctx, deviceID).Error(0)
}

func TestUpsertCreatesNewDevice(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("GetByUserAndUUID", mock.Anything, "u1", "dev-uuid").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Device")).Return(nil)

	d, created, err := svc.Upsert(context.Background(), "u1", "dev-uuid", domain.DeviceMetadata{
		IP: "203.0.113.7", Name: "iPhone (iOS)", City: "Tashkent",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "dev-uuid", d.UUID)
	assert.Equal(t, "Tashkent", d.City)
	assert.NotEmpty(t, d.DeviceID)
	repo.AssertExpectations(t)
}

func TestUpsertGeneratesUUIDWhenMissing(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("GetByUserAndUUID", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)

	d, created, err := svc.Upsert(context.Background(), "u1", "", domain.DeviceMetadata{})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, d.UUID)
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	stale := time.Now().Add(-24 * time.Hour)
	repo.On("GetByUserAndUUID", mock.Anything, "u1", "dev-uuid").
		Return(&domain.Device{DeviceID: "d1", UUID: "dev-uuid", UserID: "u1", IP: "198.51.100.9", LastOnline: stale}, nil)
	repo.On("Update", mock.Anything, "d1", mock.Anything).Return(nil)

	d, created, err := svc.Upsert(context.Background(), "u1", "dev-uuid", domain.DeviceMetadata{
		IP: "203.0.113.7", Name: "Pixel (Android)", City: "Samarkand",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "d1", d.DeviceID)
	assert.Equal(t, "203.0.113.7", d.IP)
	// The row's last_online is stamped by the update; the returned value
	// must reflect that, not the stale read.
	assert.True(t, d.LastOnline.After(stale))
	repo.AssertExpectations(t)
}

func TestListFlagsAndOrdersCurrentDeviceFirst(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	now := time.Now()
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Device{
		{DeviceID: "d1", UUID: "other", LastOnline: now},
		{DeviceID: "d2", UUID: "mine", LastOnline: now.Add(-time.Hour)},
	}, nil)

	views, err := svc.List(context.Background(), "u1", "mine")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Me)
	assert.Equal(t, "d2", views[0].DeviceID)
	assert.False(t, views[1].Me)
}

func TestDeleteRejectsForeignDevice(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "d1").
		Return(&domain.Device{DeviceID: "d1", UserID: "someone-else"}, nil)

	err := svc.Delete(context.Background(), "u1", "d1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestDeleteOwnDevice(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, "d1").
		Return(&domain.Device{DeviceID: "d1", UserID: "u1"}, nil)
	repo.On("HardDelete", mock.Anything, "d1").Return(nil)

	err := svc.Delete(context.Background(), "u1", "d1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
