package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across gendefaults.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Generation
	FieldPlatform  = "platform"
	FieldEntry     = "entry"
	FieldConstant  = "constant"
	FieldEntries   = "entries"
	FieldConstants = "constants"
	FieldFiles     = "files"

	// Files and paths
	FieldFile   = "file"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldBytes  = "bytes"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey    contextKey = "logger_run_id"
	platformKey contextKey = "logger_platform"
)

// WithRunID adds a generation run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithPlatform adds a target platform to the context for logging
func WithPlatform(ctx context.Context, platform string) context.Context {
	return context.WithValue(ctx, platformKey, platform)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if platform, ok := ctx.Value(platformKey).(string); ok && platform != "" {
		fields = append(fields, FieldPlatform, platform)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	func NewWatcher(path string) *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
