package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger interface for supervisor and application diagnostics
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Config defines logger configuration
type Config struct {
	Level       string   // "debug", "info", "warn", "error"
	Format      string   // "console" or "json"
	OutputPaths []string // zap sinks, "stderr" by default
}

// DefaultConfig returns the configuration used when nothing else is specified:
// human-readable lines on the standard diagnostic stream.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	}
}

// ZapLogger implements Logger on top of a zap SugaredLogger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a zap-backed logger from cfg
func NewLogger(cfg Config) (*ZapLogger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          format,
		EncoderConfig:     encoderConfig(format),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return NewZapLogger(logger), nil
}

// NewZapLogger wraps an existing zap logger
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{sugar: logger.Sugar()}
}

// NewDefaultLogger creates a logger with DefaultConfig, falling back to a no-op logger
func NewDefaultLogger() Logger {
	logger, err := NewLogger(DefaultConfig())
	if err != nil {
		return NewZapLogger(zap.NewNop())
	}
	return logger
}

func (l *ZapLogger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, normalizeFields(fields)...)
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// normalizeFields makes a key/value slice safe for zap's sugared API.
// Non-string keys and a trailing key without value are given index keys,
// matching how the fields would otherwise be reported as zap DPanic errors.
func normalizeFields(fields []interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}

	result := make([]interface{}, 0, len(fields)+1)
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			result = append(result, fmt.Sprintf("field_%d", i/2), fields[i])
			break
		}
		if key, ok := fields[i].(string); ok {
			result = append(result, key, fields[i+1])
			continue
		}
		result = append(result,
			fmt.Sprintf("field_%d", i/2), fields[i],
			fmt.Sprintf("field_%d_value", i/2), fields[i+1])
	}
	return result
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func encoderConfig(format string) zapcore.EncoderConfig {
	if format == "console" {
		return zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			FunctionKey:    zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	}

	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

// ClassifiedError is implemented by errors carrying a code and context.
// Declared here to avoid importing the errors package.
type ClassifiedError interface {
	Error() string
	GetCode() string
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogError logs an error with its classification and context at error level
func LogError(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		return
	}
	logErrorAt(logger.Error, err, operation, context)
}

// LogWarning is like LogError but logs at warn level, for failures the application survives
func LogWarning(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		return
	}
	logErrorAt(logger.Warn, err, operation, context)
}

func logErrorAt(emit func(string, ...interface{}), err error, operation string, context map[string]interface{}) {
	if err == nil {
		return
	}

	var fields []interface{}
	var cErr ClassifiedError
	if errors.As(err, &cErr) {
		fields = []interface{}{
			"operation", operation,
			"error_code", cErr.GetCode(),
			"timestamp", cErr.GetTimestamp(),
		}
		for k, v := range cErr.GetContext() {
			fields = append(fields, k, v)
		}
	} else {
		fields = []interface{}{
			"operation", operation,
			"error_type", fmt.Sprintf("%T", err),
		}
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	emit(fmt.Sprintf("%s failed: %s", operation, err.Error()), fields...)
}

// LogOperation logs a completed operation and its duration at debug level
func LogOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		return
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Debug(fmt.Sprintf("Operation completed: %s", operation), fields...)
}
