// Package slog routes jsonmap parse and decode diagnostics to a *slog.Logger.
package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/reoring/jsonmap"
)

var _ jsonmap.Logger = Logger{}

// Logger logs through L, or slog.Default() when L is nil. Fields become
// attributes in key order.
type Logger struct{ L *stdslog.Logger }

func (s Logger) Debug(msg string, f jsonmap.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f jsonmap.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f jsonmap.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f jsonmap.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(lvl stdslog.Level, msg string, f jsonmap.Fields) {
	l := s.L
	if l == nil {
		l = stdslog.Default()
	}
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	attrs := make([]stdslog.Attr, 0, len(f))
	for _, k := range f.Keys() {
		attrs = append(attrs, stdslog.Any(k, f[k]))
	}
	l.LogAttrs(ctx, lvl, msg, attrs...)
}
