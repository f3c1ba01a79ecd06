// filepath: internal/services/upload_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/KodyMike/DropZone/internal/config"
	"github.com/KodyMike/DropZone/internal/logging"
	"github.com/KodyMike/DropZone/internal/models"
	"github.com/KodyMike/DropZone/internal/storage"
)

var _ UploadService = (*uploadService)(nil)

// uploadService is the main struct for handling business logic related to
// incoming uploads: filename sanitization, extension classification and the
// bounded, atomic write to disk.
type uploadService struct {
	Storage *StorageService
	Cfg     *config.Config
}

// NewUploadService creates a new UploadService.
func NewUploadService(storage *StorageService, cfg *config.Config) *uploadService {
	return &uploadService{
		Storage: storage,
		Cfg:     cfg,
	}
}

// StoreUpload implements the UploadService interface.
func (s *uploadService) StoreUpload(ctx context.Context, filename string, data io.Reader) (*models.StoredFile, error) {
	// 1. Sanitize the untrusted client filename
	clean, err := storage.SanitizeFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// 2. Classify and resolve the destination (creates the directory)
	destPath, err := s.Storage.ResolveUploadPath(clean)
	if err != nil {
		return nil, fmt.Errorf("could not resolve destination: %w", err)
	}

	// 3. Bounded atomic write
	size, err := s.Storage.SaveFileAtomic(data, destPath, s.Cfg.MaxUploadBytes)
	if err != nil {
		if errors.Is(err, storage.ErrSizeExceeded) {
			logging.Log.Warnf("UploadService: Rejected %s: exceeds %d byte limit", clean, s.Cfg.MaxUploadBytes)
			return nil, ErrTooLarge
		}
		if errors.Is(err, storage.ErrStreamRead) {
			// Malformed framing or a client that went away mid-upload.
			// The temp file has already been removed by the storage layer.
			logging.Log.Warnf("UploadService: Aborted %s: %v", clean, err)
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("could not store upload %s: %w", clean, err)
	}

	routed := storage.IsRouted(clean)
	logging.Log.Debugf("UploadService: Stored %s (%d bytes, routed=%t)", clean, size, routed)

	return &models.StoredFile{
		Filename:  clean,
		SizeBytes: size,
		Routed:    routed,
	}, nil
}
