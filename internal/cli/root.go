// filepath: internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/KodyMike/DropZone/internal/api"
	"github.com/KodyMike/DropZone/internal/api/handlers"
	"github.com/KodyMike/DropZone/internal/audit"
	"github.com/KodyMike/DropZone/internal/config"
	"github.com/KodyMike/DropZone/internal/logging"
	"github.com/KodyMike/DropZone/internal/services"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version = "1.0.0"

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile      string
	logLevel     string
	port         int
	baseDir      string
	uploadSubdir string
	maxUpload    string
	auditEnabled bool
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "dropzone",
	Short: "DropZone write-only upload server",
	Long:  `A write-only HTTP ingestion endpoint: accepts file uploads on POST /upload and stores them on disk. No route exists to read anything back.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Define flags.
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: DROPZONE_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: DROPZONE_LOG_LEVEL)")

	// Server-specific flags
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: PORT)")
	RootCmd.Flags().StringVar(&baseDir, "base-dir", "", "Root storage directory for uploads. (Env: TARGET_BASE_DIR)")
	RootCmd.Flags().StringVar(&uploadSubdir, "upload-subdir", "", "Subdirectory for routed (.json/.xml/.csv) uploads. (Env: UPLOAD_SUBDIR)")
	RootCmd.Flags().StringVar(&maxUpload, "max-upload", "", "Per-upload size ceiling (e.g. '15MB'). (Env: MAX_UPLOAD_BYTES, raw byte count)")
	RootCmd.Flags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: DROPZONE_AUDIT_ENABLED=true)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("DROPZONE_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	if err := applyOverrides(cfg, cmd); err != nil {
		return err
	}

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) error {
	// --- 1. Environment Variables ---
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("TARGET_BASE_DIR"); v != "" {
		c.Storage.BaseDir = v
	}
	if v := os.Getenv("UPLOAD_SUBDIR"); v != "" {
		c.Storage.UploadSubdir = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		// Raw byte count; parseSize treats a bare number as bytes
		c.Server.MaxUploadSize = v
	}
	if v := os.Getenv("DROPZONE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DROPZONE_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}

	// --- 2. CLI Flags (Take precedence) ---
	if port != 0 {
		c.Server.Port = port
	}
	if baseDir != "" {
		c.Storage.BaseDir = baseDir
	}
	if uploadSubdir != "" {
		c.Storage.UploadSubdir = uploadSubdir
	}
	if maxUpload != "" {
		c.Server.MaxUploadSize = maxUpload
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	// Check if flag was explicitly set
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}

	// --- 3. Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9090
	}
	if c.Storage.UploadSubdir == "" {
		c.Storage.UploadSubdir = "data"
	}
	if c.Storage.BaseDir == "" {
		dir, err := config.DefaultBaseDir()
		if err != nil {
			return err
		}
		c.Storage.BaseDir = dir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	// Service Initialization
	storageService := services.NewStorageService(cfg)

	// An unwritable base directory must fail startup, not the first upload.
	if err := storageService.EnsureWritable(); err != nil {
		logging.Log.Errorf("Storage check failed: %v", err)
		return err
	}

	uploadService := services.NewUploadService(storageService, cfg)

	// Auditor Initialization
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	h := handlers.NewHandlers(uploadService, loggerAuditor, cfg)

	r := api.SetupRouter(h, Version)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Upload server listening on %s (Max Upload: %s)", serverAddr, cfg.Server.MaxUploadSize)
		logging.Log.Infof("POST files to /upload (JSON/XML/CSV stored under %s)", filepath.Join(cfg.Storage.BaseDir, cfg.Storage.UploadSubdir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
