// Package log holds the process-wide diagnostic logger. Nothing in hostbud
// reports errors through it; it is a side channel for debugging.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// MaxLogFileSize is the maximum size of the log file in megabytes.
	MaxLogFileSize = 25
	// MaxNumberOfBackups is the maximum number of rotated log files kept.
	MaxNumberOfBackups = 4
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// Option configures a logger built by New.
type Option func(*options)

type options struct {
	level zapcore.Level
	json  bool
}

// WithVerbose lowers the level to debug.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		if verbose {
			o.level = zapcore.DebugLevel
		}
	}
}

// WithLevel sets the level by name ("debug", "info", "warn", "error").
// Unparseable names leave the level unchanged.
func WithLevel(name string) Option {
	return func(o *options) {
		if name == "" {
			return
		}
		if lvl, err := zapcore.ParseLevel(name); err == nil {
			o.level = lvl
		}
	}
}

// WithJSON switches from the console encoder to JSON.
func WithJSON(json bool) Option {
	return func(o *options) {
		o.json = json
	}
}

// New creates a logger writing to dest. A nil dest discards everything.
func New(dest io.Writer, opts ...Option) *zap.Logger {
	if dest == nil {
		return zap.NewNop()
	}

	o := options{level: zapcore.WarnLevel}
	for _, opt := range opts {
		opt(&o)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "now"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encoderCfg.MessageKey = "message"

	var encoder zapcore.Encoder
	if o.json {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	return zap.New(
		zapcore.NewCore(encoder, zapcore.AddSync(dest), o.level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// NewFileWriter returns a rotating writer for path, creating its directory.
func NewFileWriter(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating log file directory %q: %w", dir, err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxLogFileSize,
		MaxBackups: MaxNumberOfBackups,
		LocalTime:  true,
	}, nil
}

// Set replaces the process-wide logger. A nil logger installs a no-op one.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// L returns the process-wide logger.
func L() *zap.Logger {
	return current.Load()
}
