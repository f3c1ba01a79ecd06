// filepath: internal/services/storage_service.go
package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KodyMike/DropZone/internal/config"
	"github.com/KodyMike/DropZone/internal/storage"
)

// StorageService provides an interface for interacting with the file system.
// It wraps the 'internal/storage' package to be injectable.
type StorageService struct {
	BaseDir      string
	UploadSubdir string
}

// NewStorageService creates a new StorageService.
func NewStorageService(cfg *config.Config) *StorageService {
	return &StorageService{
		BaseDir:      cfg.Storage.BaseDir,
		UploadSubdir: cfg.Storage.UploadSubdir,
	}
}

// ResolveUploadPath returns the destination path for a sanitized filename,
// creating the destination directory if needed.
func (s *StorageService) ResolveUploadPath(filename string) (string, error) {
	return storage.ResolveUploadPath(s.BaseDir, s.UploadSubdir, filename)
}

// SaveFileAtomic streams data to a destination path with a byte limit,
// leaving no partial file behind on failure.
func (s *StorageService) SaveFileAtomic(data io.Reader, path string, maxBytes int64) (int64, error) {
	return storage.SaveFileAtomic(data, path, maxBytes)
}

// EnsureWritable verifies at startup that the base directory exists and
// accepts writes. An unwritable base directory is a fatal configuration
// error; failing here beats failing on the first upload.
func (s *StorageService) EnsureWritable() error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("could not create base directory %s: %w", s.BaseDir, err)
	}

	probe, err := os.CreateTemp(s.BaseDir, ".writecheck-*")
	if err != nil {
		return fmt.Errorf("base directory %s is not writable: %w", s.BaseDir, err)
	}
	probePath := probe.Name()
	probe.Close()
	os.Remove(probePath)

	if err := os.MkdirAll(filepath.Join(s.BaseDir, s.UploadSubdir), 0755); err != nil {
		return fmt.Errorf("could not create upload subdirectory: %w", err)
	}
	return nil
}
