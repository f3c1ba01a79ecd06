// filepath: internal/services/mocks/upload_mock.go
package mocks

import (
	"context"
	"io"

	"github.com/KodyMike/DropZone/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUploadService mocks the upload storage operations
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) StoreUpload(ctx context.Context, filename string, data io.Reader) (*models.StoredFile, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredFile), args.Error(1)
}
