package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/prasetyowira/qrgen/constant"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with structured field helpers. Instances are
// injected into the components that need them; there is no package-level
// global.
type Logger struct {
	zl *zap.Logger
}

// LoggerInfo contains structured logging information
type LoggerInfo struct {
	ContextFunction string
	Error           *CustomError
	Data            map[string]interface{}
}

// CustomError represents a structured error for logging
type CustomError struct {
	Code    string
	Message string
	Type    string
}

// New builds a Logger. Production mode uses JSON encoding with sampling;
// development mode uses console encoding at debug level.
func New(isProduction bool) (*Logger, error) {
	logLevel := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	if isProduction {
		logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        constant.LogTimeKey,
		LevelKey:       constant.LogLevelKey,
		NameKey:        constant.LogNameKey,
		CallerKey:      constant.LogCallerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     constant.LogMessageKey,
		StacktraceKey:  constant.LogStacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var config zap.Config
	if isProduction {
		config = zap.Config{
			Level:       logLevel,
			Development: false,
			Sampling: &zap.SamplingConfig{
				Initial:    100,
				Thereafter: 100,
			},
			Encoding:         constant.LogEncodingJSON,
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{constant.LogOutputStdout},
			ErrorOutputPaths: []string{constant.LogOutputStderr},
		}
	} else {
		config = zap.Config{
			Level:            logLevel,
			Development:      true,
			Encoding:         constant.LogEncodingConsole,
			EncoderConfig:    encoderConfig,
			OutputPaths:      []string{constant.LogOutputStdout},
			ErrorOutputPaths: []string{constant.LogOutputStderr},
		}
	}

	zl, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Logger{zl: zl}, nil
}

// NewNop returns a Logger that discards everything. Useful as a test double.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// Close ensures the logger syncs before shutdown
func (l *Logger) Close() {
	if l != nil && l.zl != nil {
		_ = l.zl.Sync()
	}
}

// createFields creates zap fields with proper structure
func (l *Logger) createFields(ctx context.Context, info LoggerInfo) []zap.Field {
	fields := []zap.Field{}

	if requestID := getRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String(constant.LogRequestIDKey, requestID))
	}

	if info.ContextFunction != "" {
		fields = append(fields, zap.String(constant.LogFunctionKey, info.ContextFunction))
	}

	if info.Error != nil {
		fields = append(fields, zap.String(constant.LogErrorCodeKey, info.Error.Code))
		fields = append(fields, zap.String(constant.LogErrorTypeKey, info.Error.Type))
		fields = append(fields, zap.String(constant.LogErrorMessageKey, info.Error.Message))
	}

	if info.Data != nil {
		for k, v := range info.Data {
			fields = append(fields, zap.Any(k, v))
		}
	}

	return fields
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Debug(msg, l.createFields(nil, info)...)
}

// Info logs an info message
func (l *Logger) Info(msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Info(msg, l.createFields(nil, info)...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Warn(msg, l.createFields(nil, info)...)
}

// Error logs an error message
func (l *Logger) Error(msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Error(msg, l.createFields(nil, info)...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Fatal(msg, l.createFields(nil, info)...)
}

// CtxDebug logs a debug message with context
func (l *Logger) CtxDebug(ctx context.Context, msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Debug(msg, l.createFields(ctx, info)...)
}

// CtxInfo logs an info message with context
func (l *Logger) CtxInfo(ctx context.Context, msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Info(msg, l.createFields(ctx, info)...)
}

// CtxWarn logs a warning message with context
func (l *Logger) CtxWarn(ctx context.Context, msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Warn(msg, l.createFields(ctx, info)...)
}

// CtxError logs an error message with context
func (l *Logger) CtxError(ctx context.Context, msg string, info LoggerInfo) {
	if l == nil || l.zl == nil {
		return
	}
	l.zl.Error(msg, l.createFields(ctx, info)...)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constant.RequestIDKey, requestID)
}

// getRequestID gets the request ID from the context
func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if reqID, ok := ctx.Value(constant.RequestIDKey).(string); ok {
		return reqID
	}

	return ""
}

// FormatMetadata formats map data into key=value • key=value format
func FormatMetadata(data map[string]interface{}) string {
	if len(data) == 0 {
		return ""
	}

	var parts []string
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " • ")
}
