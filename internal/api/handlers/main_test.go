// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"context"

	"github.com/KodyMike/DropZone/internal/services"
	"github.com/stretchr/testify/mock"
)

// --- MOCK AUDITOR ---
type MockAuditor struct {
	mock.Mock
}

var _ services.Auditor = (*MockAuditor)(nil)

func (m *MockAuditor) Log(ctx context.Context, action string, resource string, details map[string]interface{}) {
	m.Called(ctx, action, resource, details)
}
