package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// SetupLogger installs the default logger writing to stdout and to a new
// session file under cfg.LogDir. Old session files are pruned first.
// The caller must close the returned file.
func SetupLogger(cfg *config.Config, version string) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount-1)

	name := fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat))
	logFile, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}

	initLogger(cfg, version, io.MultiWriter(os.Stdout, logFile))
	return logFile, nil
}

func initLogger(cfg *config.Config, version string, w io.Writer) {
	lc := logger.ForEnvironment(cfg.Environment, version).WithOverrides(cfg.LogLevel, cfg.LogFormat)
	logger.InitLoggerWithWriter(lc, w)

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel().String(), "format", cfg.LogFormat)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"version", version,
		"store_driver", cfg.StoreDriver)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"catalog_path", cfg.CatalogPath,
		"tier_levels", cfg.ResolverTierLevels,
		"max_selected", cfg.InventoryMaxSelected)

	for _, warning := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", warning)
	}
}

// cleanupLogs removes the oldest session logs so at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for i := 0; i < len(names)-keep; i++ {
		if err := os.Remove(filepath.Join(logDir, names[i])); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", names[i], "error", err)
		}
	}
}
