// Package logging provides the structured logger used across the signup wizard.
package logging

import (
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"
)

// Logger defines the structured logging interface.
type Logger interface {
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
	Debug(msg string, fields map[string]any)
	// With returns a Logger that adds fields to every entry.
	With(fields map[string]any) Logger
}

// Redacted replaces the value of any field whose key names a secret.
const Redacted = "[redacted]"

var secretKeys = []string{"password", "secret", "token"}

// JSONLogger writes one JSON object per line to an io.Writer. Keys naming a
// secret are redacted; the time, level and msg keys cannot be overridden by
// fields.
type JSONLogger struct {
	out     *sink
	verbose bool
	base    map[string]any
	now     func() time.Time
}

// sink serializes writes from a logger and everything derived from it.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLogger creates a JSONLogger writing to w. Debug entries are only
// emitted when verbose is true.
func NewJSONLogger(w io.Writer, verbose bool) *JSONLogger {
	return &JSONLogger{out: &sink{w: w}, verbose: verbose, now: time.Now}
}

func (l *JSONLogger) Info(msg string, fields map[string]any)  { l.write("info", msg, fields) }
func (l *JSONLogger) Warn(msg string, fields map[string]any)  { l.write("warn", msg, fields) }
func (l *JSONLogger) Error(msg string, fields map[string]any) { l.write("error", msg, fields) }

func (l *JSONLogger) Debug(msg string, fields map[string]any) {
	if l.verbose {
		l.write("debug", msg, fields)
	}
}

func (l *JSONLogger) With(fields map[string]any) Logger {
	child := *l
	child.base = make(map[string]any, len(l.base)+len(fields))
	merge(child.base, l.base)
	merge(child.base, fields)
	return &child
}

func (l *JSONLogger) write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(l.base)+len(fields)+3)
	merge(entry, l.base)
	merge(entry, fields)
	entry["time"] = l.now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data, _ = json.Marshal(map[string]any{"level": "error", "msg": "unencodable log entry", "error": err.Error()})
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w.Write(append(data, '\n')) //nolint:errcheck
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if isSecret(k) {
			v = Redacted
		}
		dst[k] = v
	}
}

func isSecret(key string) bool {
	key = strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

type nopLogger struct{}

func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Debug(string, map[string]any) {}
func (n nopLogger) With(map[string]any) Logger { return n }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
