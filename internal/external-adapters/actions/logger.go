package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/DonIsaac/zlint-action/internal/domain/interfaces"
)

// Logger writes workflow commands the runner turns into annotations and
// collapsible groups
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

var _ interfaces.Logger = (*Logger)(nil)

// NewLogger creates a logger writing to out, or stdout when out is nil
func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{out: out}
}

// Debug emits a ::debug:: command, shown when step debugging is enabled
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.command("debug", msg, fields)
}

// Info writes a plain log line
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.writeln(formatMessage(msg, fields))
}

// Warn emits a ::warning:: annotation
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.command("warning", msg, fields)
}

// Error emits an ::error:: annotation
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.command("error", msg, fields)
}

// StartGroup opens a collapsible group
func (l *Logger) StartGroup(name string) {
	l.writeln("::group::" + escapeData(name))
}

// EndGroup closes the current group
func (l *Logger) EndGroup() {
	l.writeln("::endgroup::")
}

func (l *Logger) command(name, msg string, fields []interfaces.Field) {
	l.writeln("::" + name + "::" + escapeData(formatMessage(msg, fields)))
}

func (l *Logger) writeln(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.out, line)
}

func formatMessage(msg string, fields []interfaces.Field) string {
	if len(fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

var dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// escapeData encodes characters the runner would otherwise treat as the
// end of a command
func escapeData(s string) string {
	return dataEscaper.Replace(s)
}
