// filepath: internal/api/handlers/main.go
package handlers

import (
	"github.com/KodyMike/DropZone/internal/config"
	"github.com/KodyMike/DropZone/internal/services"
)

// Handlers provides a struct to hold shared dependencies for API handlers,
// such as the upload service.
type Handlers struct {
	// --- Depend on interfaces, not concrete structs ---
	Upload  services.UploadService
	Auditor services.Auditor

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(upload services.UploadService, auditor services.Auditor, cfg *config.Config) *Handlers {
	return &Handlers{
		Upload:  upload,
		Auditor: auditor,
		Cfg:     cfg,
	}
}
