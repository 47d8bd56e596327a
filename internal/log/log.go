// Package log provides structured logging for commands, errors and general
// application events. Each stream is written to its own file.
package log

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ironpulse/local-app/internal/model"
)

// Fields carries structured key/value pairs attached to a log message
type Fields map[string]interface{}

// Logger writes JSON log lines to the command, error and info log files
type Logger struct {
	command *zap.Logger
	app     *zap.Logger
	files   []*os.File
	level   zap.AtomicLevel
}

// NewLogger creates a new Logger using the log folder and file names from cfg
func NewLogger(cfg *model.Config) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	atomic := zap.NewAtomicLevelAt(level.toZapLevel())
	encoder := zapcore.NewJSONEncoder(encoderConfig())

	// Errors go to both the error log and the info log so the info log reads as a full timeline
	appCore := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(infoFile), atomic),
		zapcore.NewCore(encoder.Clone(), zapcore.AddSync(errorFile), zapcore.ErrorLevel),
	)
	commandCore := zapcore.NewCore(encoder.Clone(), zapcore.AddSync(commandFile), zapcore.DebugLevel)

	return &Logger{
		command: zap.New(commandCore),
		app:     zap.New(appCore, zap.AddCaller(), zap.AddCallerSkip(1)),
		files:   files,
		level:   atomic,
	}, nil
}

// NewNop returns a Logger that discards everything
func NewNop() *Logger {
	return &Logger{
		command: zap.NewNop(),
		app:     zap.NewNop(),
		level:   zap.NewAtomicLevel(),
	}
}

// newWithCore builds a Logger around a single core, used by tests to observe output
func newWithCore(core zapcore.Core) *Logger {
	return &Logger{
		command: zap.New(core),
		app:     zap.New(core),
		level:   zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.app.Debug(msg, toZapFields(fields)...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.app.Info(msg, toZapFields(fields)...)
}

// Warn logs a warning message
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.app.Warn(msg, toZapFields(fields)...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.app.Error(msg, toZapFields(fields)...)
}

// Command records a user command in the command log
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.command.Info(msg, toZapFields(fields)...)
}

// SetLevel changes the minimum level of the info stream
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level.toZapLevel())
}

// Close flushes buffered entries and closes the log files
func (l *Logger) Close() error {
	_ = l.command.Sync()
	_ = l.app.Sync()

	for _, f := range l.files {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	return nil
}

func toZapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
