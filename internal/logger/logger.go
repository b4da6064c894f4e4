package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	handler        slog.Handler
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Options controls how log lines are rendered
type Options struct {
	Writer  io.Writer
	NoColor bool
}

// New creates a new logger instance writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return NewWithOptions(component, verboseChecker, Options{})
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, VerboseFunc(verboseCheck))
}

// NewWithOptions creates a logger with an explicit writer and color mode
func NewWithOptions(component string, verboseChecker VerboseChecker, opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	// Level filtering is done by the verbose checker so the handler accepts everything.
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: "15:04:05.000",
		NoColor:    opts.NoColor || os.Getenv("NO_COLOR") != "",
	})

	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		handler:        handler,
	}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		handler:        l.handler,
	}
}

// Slog exposes the underlying handler as a *slog.Logger tagged with the component
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.handler).With("component", l.componentName())
}

// VerboseFunc adapts a plain function to VerboseChecker
type VerboseFunc func() bool

// IsVerbose implements VerboseChecker
func (f VerboseFunc) IsVerbose() bool {
	return f != nil && f()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log(slog.LevelDebug, msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.isVerbose() {
		l.log(slog.LevelInfo, msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log(slog.LevelDebug, msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.isVerbose() {
		l.log(slog.LevelInfo, msg, fields, args...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.log(slog.LevelWarn, msg, fields, args...)
}

func (l *Logger) isVerbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

func (l *Logger) componentName() string {
	if l.component == "" {
		return "main"
	}
	return l.component
}

// log formats the message and hands the record to the slog handler
func (l *Logger) log(level slog.Level, msg string, fields []Field, args ...interface{}) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	record := slog.NewRecord(time.Now(), level, formattedMsg, 0)
	record.AddAttrs(slog.String("component", l.componentName()))
	for _, field := range fields {
		record.AddAttrs(slog.Any(field.Key, field.Value))
	}

	// A failed log write has nowhere else to go.
	_ = l.handler.Handle(ctx, record)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Status(code int) Field {
	return Field{Key: "status", Value: code}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
