// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/fleetgate/gatekeeper/audit"
	"github.com/stretchr/testify/mock"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogDecision(ctx context.Context, entry audit.AccessAudit) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditService) QueryDecisions(ctx context.Context, from, to time.Time, userID, page string) ([]audit.AccessAudit, error) {
	args := m.Called(ctx, from, to, userID, page)
	return args.Get(0).([]audit.AccessAudit), args.Error(1)
}
