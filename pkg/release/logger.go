package release

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/semrel-npm-deprecate/pkg/constants"
)

// Logger is the stage logger exposed to lifecycle functions.
type Logger interface {
	Log(format string, args ...any)
	Success(format string, args ...any)
	Error(format string, args ...any)
}

// StreamLogger writes stage messages to a writer, prefixed with the plugin name.
type StreamLogger struct {
	w io.Writer
}

// NewLogger creates a StreamLogger writing to w.
func NewLogger(w io.Writer) *StreamLogger {
	return &StreamLogger{w: w}
}

// Log writes an informational message.
func (l *StreamLogger) Log(format string, args ...any) {
	l.write("ℹ", format, args...)
}

// Success writes a success message.
func (l *StreamLogger) Success(format string, args ...any) {
	l.write("✔", format, args...)
}

// Error writes an error message.
func (l *StreamLogger) Error(format string, args ...any) {
	l.write("✖", format, args...)
}

func (l *StreamLogger) write(icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	_, _ = fmt.Fprintf(l.w, "[%s] › %s  %s\n", constants.PluginName, icon, msg)
}
