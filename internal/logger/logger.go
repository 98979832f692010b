// Package logger builds the zap loggers used by the GeoRZA commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts logger construction.
type Option func(*options)

type options struct {
	out    io.Writer
	path   string
	fields []zap.Field
}

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFile appends log lines to the file at path. An empty path is ignored.
func WithFile(path string) Option {
	return func(o *options) { o.path = path }
}

// WithFields attaches fields to every log line.
func WithFields(fields ...zap.Field) Option {
	return func(o *options) { o.fields = append(o.fields, fields...) }
}

// ParseLevel converts a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// NewLogger returns a JSON logger at the given level writing to stderr
// unless an output option says otherwise. The returned close function
// syncs the logger and releases any opened file.
func NewLogger(level string, opts ...Option) (*zap.Logger, func() error, error) {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	closeFile := func() error { return nil }
	if o.path != "" {
		f, err := os.OpenFile(o.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		o.out = f
		closeFile = f.Close
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(o.out),
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)

	log := zap.New(core, zap.AddCaller()).With(o.fields...)
	return log, func() error {
		_ = log.Sync()
		return closeFile()
	}, nil
}

// Discard returns a logger that drops everything unless path is set, in
// which case it logs there. Full-screen front ends use it so log output
// never lands on the terminal they draw.
func Discard(level, path string) (*zap.Logger, func() error, error) {
	if path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}
	return NewLogger(level, WithFile(path))
}
