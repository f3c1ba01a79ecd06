// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`

	MaxUploadBytes int64 `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "15MB", "512KB"
}

// StorageConfig holds the file storage configuration.
type StorageConfig struct {
	BaseDir      string `toml:"base_dir"`
	UploadSubdir string `toml:"upload_subdir"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes.
func (c *Config) ParseAndValidate() error {
	// Default MaxUploadSize to 15MB if not specified
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "15MB"
	}

	sizeBytes, err := parseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if sizeBytes <= 0 {
		return fmt.Errorf("invalid max_upload_size: must be positive, got %d", sizeBytes)
	}
	c.MaxUploadBytes = sizeBytes

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if strings.Contains(c.Storage.UploadSubdir, "..") || filepath.IsAbs(c.Storage.UploadSubdir) {
		return fmt.Errorf("invalid upload_subdir: must be a relative path segment, got %q", c.Storage.UploadSubdir)
	}

	return nil
}

// DefaultBaseDir returns the directory containing the running executable.
// Used when no base directory is configured.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("could not locate executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
// Duplicated here to keep the config package self-contained and dependency-free.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
