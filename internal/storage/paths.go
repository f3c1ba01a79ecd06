// internal/storage/paths.go
// Destination path resolution for incoming uploads.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// routedExtensions are the filename extensions stored under the upload
// subdirectory instead of the base directory. Matched case-insensitively.
var routedExtensions = map[string]bool{
	".json": true,
	".xml":  true,
	".csv":  true,
}

// SanitizeFilename strips any directory components from a client-supplied
// filename. The result is safe to join onto a destination directory.
// Returns an error if nothing usable remains.
func SanitizeFilename(name string) (string, error) {
	// Windows clients may send backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.TrimSpace(name)

	if name == "" || name == "." || name == ".." || name == "/" {
		return "", fmt.Errorf("filename is empty after sanitization")
	}
	return name, nil
}

// IsRouted reports whether a sanitized filename belongs in the upload
// subdirectory based on its extension.
func IsRouted(filename string) bool {
	return routedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ResolveUploadPath returns the final destination path for a sanitized
// filename, creating the destination directory if it does not exist.
// Routed extensions land in <baseDir>/<uploadSubdir>, everything else
// directly in <baseDir>.
func ResolveUploadPath(baseDir, uploadSubdir, filename string) (string, error) {
	dir := baseDir
	if IsRouted(filename) {
		dir = filepath.Join(baseDir, uploadSubdir)
	}

	// --- SECURITY: Prevent Path Traversal ---
	// The final path must stay inside the base directory even if a crafted
	// filename survived sanitization.
	cleanedPath := filepath.Clean(filepath.Join(dir, filename))
	cleanedRoot := filepath.Clean(baseDir)
	if !strings.HasPrefix(cleanedPath, cleanedRoot+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid path: potential path traversal")
	}

	// MkdirAll is a no-op for an existing directory, so concurrent first
	// use is safe.
	if err := os.MkdirAll(filepath.Dir(cleanedPath), 0755); err != nil {
		return "", fmt.Errorf("could not create directory structure: %w", err)
	}

	return cleanedPath, nil
}
