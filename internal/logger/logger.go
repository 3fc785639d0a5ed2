package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log categories.
const (
	CategoryViewCycle     = "viewcycle"
	CategoryNetworking    = "networking"
	CategoryBusinessLogic = "businessLogic"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

var logFile *os.File

// Logger is the structured logging surface shared by the app packages.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Init initializes a zap SugaredLogger writing to stdout using settings from config.
func Init(cfg *config.Config) (*zap.SugaredLogger, error) {
	return build(cfg, zapcore.Lock(os.Stdout))
}

// InitFile is like Init but writes to cfg.LogFile, for programs that own the terminal.
func InitFile(cfg *config.Config) (*zap.SugaredLogger, error) {
	path := strings.TrimSpace(cfg.LogFile)
	if path == "" {
		return nil, fmt.Errorf("log_file is empty")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	return build(cfg, zapcore.Lock(f))
}

func build(cfg *config.Config, sink zapcore.WriteSyncer) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(sink),
		parseLevel(cfg.LogLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if cfg.AppName != "" {
		logger = logger.With(zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
	}
	sugar := logger.Sugar()
	S = sugar
	return sugar, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	err := S.Sync()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	return err
}

// For returns a Logger tagged with the given category. Before Init it returns a NopLogger.
func For(category string) Logger {
	if S == nil {
		return NopLogger{}
	}
	return wrap(S.Desugar(), category)
}

func wrap(l *zap.Logger, category string) Logger {
	if l == nil {
		return NopLogger{}
	}
	return &zapLogger{l: l.Named(category).WithOptions(zap.AddCallerSkip(1))}
}

type zapLogger struct {
	l *zap.Logger
}

func (z *zapLogger) InfoObj(msg, key string, obj interface{})  { z.l.Info(msg, zap.Any(key, obj)) }
func (z *zapLogger) DebugObj(msg, key string, obj interface{}) { z.l.Debug(msg, zap.Any(key, obj)) }
func (z *zapLogger) WarnObj(msg, key string, obj interface{})  { z.l.Warn(msg, zap.Any(key, obj)) }
func (z *zapLogger) ErrorObj(msg, key string, obj interface{}) { z.l.Error(msg, zap.Any(key, obj)) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Minimal object logging helpers -------------------------------------------------
// These are tiny wrappers that log the given object as a structured field named
// `key` and do not attempt to parse arbitrary kv arrays.
func InfoObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Info(msg, zap.Any(key, obj))
}

func DebugObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Debug(msg, zap.Any(key, obj))
}

func WarnObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Warn(msg, zap.Any(key, obj))
}

func ErrorObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Error(msg, zap.Any(key, obj))
}
