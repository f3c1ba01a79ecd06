// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

// StoredFile describes a successfully stored upload.
type StoredFile struct {
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	Routed    bool   `json:"routed"` // true if the file landed in the upload subdirectory
}
