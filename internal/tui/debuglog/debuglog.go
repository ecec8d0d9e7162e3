// ABOUTME: Debug logger for the TUI that routes slog output to a log file
// ABOUTME: Keeps log lines off the alternate screen while still capturing errors

package debuglog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/igvshop/igv-admin/internal/logger"
)

var (
	logFile  *os.File
	previous *slog.Logger
	mu       sync.Mutex
)

// Init points the default slog logger at <configDir>/debug.log.
// If configDir is empty, logging is discarded.
func Init(configDir string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()

	if previous == nil {
		previous = slog.Default()
	}

	if configDir == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(Path(configDir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	slog.SetDefault(logger.New(f, level, os.Getenv("IGV_LOG_FORMAT")))
	return nil
}

// Path returns the log file location for configDir
func Path(configDir string) string {
	return filepath.Join(configDir, "debug.log")
}

// Close closes the log file and restores the logger that was active before Init
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if previous != nil {
		slog.SetDefault(previous)
		previous = nil
	}
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	slog.Error(context, "error", err)
}
