package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error-valued field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// It decouples components from the concrete logging backend.
type Logger interface {
	// Info logs an informational message with optional structured fields.
	Info(msg string, fields ...Field)
	// Error logs an error message, the error itself, and optional fields.
	Error(msg string, err error, fields ...Field)
	// Debug logs a debug message with optional structured fields.
	Debug(msg string, fields ...Field)
	// Printf logs a formatted message at info level (legacy-style API).
	Printf(format string, args ...any)
	// Println logs its arguments at info level (legacy-style API).
	Println(args ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a zerolog-backed Logger writing to w, tagged with the
// given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	logger := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger creates a zerolog-backed Logger writing human-readable
// output to stderr. Intended for application startup before configuration
// is available.
func NewDefaultLogger() *ZerologAdapter {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	logger := zerolog.New(console).With().Timestamp().Logger()
	return &ZerologAdapter{logger: logger}
}

// Info logs an informational message with optional structured fields.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs an error message with the error and optional fields.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	a.applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message with optional structured fields.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, args ...any) {
	a.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(args ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// applyFields attaches structured fields to a zerolog event, dispatching on
// the dynamic field type.
func (a *ZerologAdapter) applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

// StdLoggerAdapter adapts the standard library log.Logger to the Logger
// interface. Useful for tests and environments where zerolog output is
// undesirable.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps an existing standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Info logs an informational message with optional fields.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs an error message with the error and optional fields.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	a.logger.Printf("[ERROR] %s error=%v%s", msg, err, formatFields(fields))
}

// Debug logs a debug message with optional fields.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message.
func (a *StdLoggerAdapter) Printf(format string, args ...any) {
	a.logger.Printf(format, args...)
}

// Println logs its arguments.
func (a *StdLoggerAdapter) Println(args ...any) {
	a.logger.Println(args...)
}

// formatFields renders fields as " key=value" pairs for plain-text output.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
