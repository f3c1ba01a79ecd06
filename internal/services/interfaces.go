// filepath: internal/services/interfaces.go
package services

import (
	"context"
	"io"

	"github.com/KodyMike/DropZone/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "upload.store", "upload.reject")
	// resource: what was affected (the stored filename)
	// details: structured metadata about the event
	Log(ctx context.Context, action string, resource string, details map[string]interface{})
}

// UploadService defines the interface for storing incoming uploads.
type UploadService interface {
	// StoreUpload validates the client-supplied filename, classifies it and
	// streams the data durably to its destination. The reader is consumed
	// at most up to the configured size limit plus one byte.
	StoreUpload(ctx context.Context, filename string, data io.Reader) (*models.StoredFile, error)
}
