// Package slogger implements the domain Logger on top of log/slog for runs
// outside GitHub Actions.
package slogger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
	"github.com/mattn/go-isatty"
)

// Logger adapts a *slog.Logger. Messages logged inside a group carry a
// "group" attribute.
type Logger struct {
	mu    sync.Mutex
	base  *slog.Logger
	group string
}

var _ interfaces.Logger = (*Logger)(nil)

// New writes human readable text to terminals and JSON lines otherwise
func New(out *os.File, level slog.Level) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(out) {
		return NewWithHandler(slog.NewTextHandler(out, opts))
	}
	return NewWithHandler(slog.NewJSONHandler(out, opts))
}

// NewWithHandler wraps an existing handler
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{base: slog.New(h)}
}

// NewText creates a text logger on any writer
func NewText(w io.Writer, level slog.Level) *Logger {
	return NewWithHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs at info level
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs at error level
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.log(slog.LevelError, msg, fields)
}

// StartGroup tags subsequent messages with name until EndGroup
func (l *Logger) StartGroup(name string) {
	l.mu.Lock()
	l.group = name
	l.mu.Unlock()
	l.base.Info("group started", slog.String("group", name))
}

// EndGroup stops tagging messages
func (l *Logger) EndGroup() {
	l.mu.Lock()
	name := l.group
	l.group = ""
	l.mu.Unlock()
	if name != "" {
		l.base.Info("group ended", slog.String("group", name))
	}
}

func (l *Logger) log(level slog.Level, msg string, fields []interfaces.Field) {
	l.mu.Lock()
	group := l.group
	l.mu.Unlock()

	attrs := make([]slog.Attr, 0, len(fields)+1)
	if group != "" {
		attrs = append(attrs, slog.String("group", group))
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	l.base.LogAttrs(context.Background(), level, msg, attrs...)
}
