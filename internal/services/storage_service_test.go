// filepath: internal/services/storage_service_test.go
package services

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/KodyMike/DropZone/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestStorageService_EnsureWritable(t *testing.T) {
	t.Run("Creates Missing Directories", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "nested", "base")
		cfg := &config.Config{
			Storage: config.StorageConfig{BaseDir: base, UploadSubdir: "data"},
		}

		svc := NewStorageService(cfg)
		assert.NoError(t, svc.EnsureWritable())

		info, err := os.Stat(filepath.Join(base, "data"))
		assert.NoError(t, err)
		assert.True(t, info.IsDir())

		// No probe file may be left behind
		entries, err := os.ReadDir(base)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Unwritable Base Dir Fails", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}

		base := filepath.Join(t.TempDir(), "readonly")
		assert.NoError(t, os.MkdirAll(base, 0555))

		cfg := &config.Config{
			Storage: config.StorageConfig{BaseDir: base, UploadSubdir: "data"},
		}

		assert.Error(t, NewStorageService(cfg).EnsureWritable())
	})
}
