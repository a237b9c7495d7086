package jsonmap

import "sort"

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Keys returns the field names in sorted order. Adapters emit fields in this
// order so log lines are stable across runs.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Logger is a tiny leveled logger. Adapters for zap, logrus and slog live
// under log/. The default logger discards everything.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
