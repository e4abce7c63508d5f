package testutils

import (
	"strings"
	"sync"
)

// LogCall is a single captured log call
type LogCall struct {
	Level  string
	Msg    string
	Fields []any
}

// RecordingLogger captures log calls in memory. It satisfies logging.Logger
// and is safe for use from multiple goroutines.
type RecordingLogger struct {
	mu    sync.Mutex
	calls []LogCall
}

// NewRecordingLogger creates an empty RecordingLogger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (r *RecordingLogger) record(level, msg string, fields []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, LogCall{Level: level, Msg: msg, Fields: fields})
}

func (r *RecordingLogger) Debug(msg string, fields ...any) { r.record("DEBUG", msg, fields) }
func (r *RecordingLogger) Info(msg string, fields ...any)  { r.record("INFO", msg, fields) }
func (r *RecordingLogger) Warn(msg string, fields ...any)  { r.record("WARN", msg, fields) }
func (r *RecordingLogger) Error(msg string, fields ...any) { r.record("ERROR", msg, fields) }

// All returns a copy of every captured call in order
func (r *RecordingLogger) All() []LogCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogCall(nil), r.calls...)
}

// Calls returns the captured calls at the given level
func (r *RecordingLogger) Calls(level string) []LogCall {
	var out []LogCall
	for _, c := range r.All() {
		if c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// CountContaining returns how many captured messages contain substr, at any level
func (r *RecordingLogger) CountContaining(substr string) int {
	n := 0
	for _, c := range r.All() {
		if strings.Contains(c.Msg, substr) {
			n++
		}
	}
	return n
}
