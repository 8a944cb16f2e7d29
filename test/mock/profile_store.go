// test/mock/profile_store.go
package mock

import (
	"context"

	"github.com/fleetgate/gatekeeper/model"
	"github.com/stretchr/testify/mock"
)

// MockProfileStore is a mock implementation of service.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPermissionProfile), args.Error(1)
}
