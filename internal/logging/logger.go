// Package logging builds the zap loggers used by chatboot.
//
// The interactive chat owns the terminal, so it logs to a file. One-shot
// queries log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diogo/chatboot/internal/config"
)

// NewFileLogger returns a JSON logger appending to path.
// Debug entries are kept only when verbose is set.
func NewFileLogger(path string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewConsoleLogger returns a human-readable logger on stderr.
// Without verbose only warnings and errors are printed.
func NewConsoleLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForChat returns the file logger configured for the interactive chat.
// If the log file cannot be opened it falls back to a no-op logger so the
// TUI still starts.
func ForChat(cfg config.Config) *zap.Logger {
	path, err := config.GetLogPath(cfg)
	if err != nil {
		return zap.NewNop()
	}
	logger, err := NewFileLogger(path, cfg.Verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// EndpointFields returns the fields identifying a request target.
// Credentials are never included.
func EndpointFields(cfg config.Config) []zap.Field {
	username, _ := cfg.Credentials().Snapshot()
	return []zap.Field{
		zap.String("url", cfg.URL),
		zap.String("model", cfg.Model),
		zap.Bool("basic_auth", cfg.HasCredentials()),
		zap.String("username", username),
	}
}
