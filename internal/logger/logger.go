package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const appName = "wifi-manager"

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	logFileHandle *os.File
)

// LogFilePath determines the path for the application log file under $XDG_STATE_HOME.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, appName, "app.log"), nil
}

// ParseLevel maps a config string to a slog level. Unknown values yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging configures the default logger based on whether to log to file and/or stderr.
func setupLogging(level slog.Level, logToFile bool, logToStderr bool) error {
	var writers []io.Writer

	if logToFile {
		logFilePath, err := LogFilePath()
		if err != nil {
			return err
		}
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return fmt.Errorf("creating log directory %s: %w", logDir, err)
		}
		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", logFilePath, err)
		}
		writers = append(writers, file)
		logFileHandle = file
	}

	if logToStderr {
		writers = append(writers, os.Stderr)
	}

	var finalWriter io.Writer
	switch len(writers) {
	case 0:
		finalWriter = io.Discard
	case 1:
		finalWriter = writers[0]
	default:
		finalWriter = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(finalWriter, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler).With("app", appName)
	return nil
}

// InitLogger initializes the logger. The TUI owns the terminal, so it only
// logs to the file; the CLI additionally logs to stderr when verbose is set.
func InitLogger(isTUI bool, level string, verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	lvl := ParseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	logToStderr := !isTUI && verbose

	if err := setupLogging(lvl, true, logToStderr); err != nil {
		if !isTUI {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		}
		_ = setupLogging(lvl, false, logToStderr)
	}
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
	}
	defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// SetLogger replaces the default logger instance. Tests use it to capture output.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	current().Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}
