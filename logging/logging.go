// Package logging wraps log/slog with a console+file setup, weekly file
// rotation and package-level helpers usable before initialization.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// LoggingService owns the configured logger and its rotating file writer.
type LoggingService struct {
	Logger  *slog.Logger
	rotator *RotatingLogger
}

// DefaultLoggingService is the process-wide logging service. The package
// helpers fall back to a console logger while it is nil, so early startup
// code can log safely.
var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger with defaults (4 weeks retention,
// 100MB files).
func InitLogger(logDir string) {
	InitLoggerWithOptions(logDir, 4, 100*1024*1024)
}

// InitLoggerWithOptions initializes the global logger writing text to the
// console and JSON to rotating files under logDir.
func InitLoggerWithOptions(logDir string, retentionWeeks int, maxFileSize int64) {
	DefaultLoggingService = newService(logDir, retentionWeeks, maxFileSize)
	slog.SetDefault(DefaultLoggingService.Logger)
}

// Shutdown closes the rotating file writer. Safe to call when logging was
// never initialized.
func Shutdown() {
	if DefaultLoggingService != nil && DefaultLoggingService.rotator != nil {
		DefaultLoggingService.rotator.Close()
	}
}

func newService(logDir string, retentionWeeks int, maxFileSize int64) *LoggingService {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logger := slog.New(consoleHandler)
		logger.Error("Failed to create logs directory, logging to console only", "error", err)
		return &LoggingService{Logger: logger}
	}

	rotator := NewRotatingLogger(logDir, retentionWeeks, maxFileSize)
	rotator.startCleanup()

	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return &LoggingService{
		Logger:  slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}),
		rotator: rotator,
	}
}

// Package-level helpers with a console fallback for use before InitLogger.

func Info(msg string, args ...any) {
	currentLogger(slog.LevelInfo).Info(msg, args...)
}

func Warn(msg string, args ...any) {
	currentLogger(slog.LevelWarn).Warn(msg, args...)
}

func Error(msg string, args ...any) {
	currentLogger(slog.LevelError).Error(msg, args...)
}

func Debug(msg string, args ...any) {
	currentLogger(slog.LevelDebug).Debug(msg, args...)
}

func currentLogger(fallbackLevel slog.Level) *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: fallbackLevel,
	}))
}

// multiHandler fans a record out to every underlying handler.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
