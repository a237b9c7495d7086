// Package zap routes jsonmap parse and decode diagnostics to a *zap.Logger.
package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/jsonmap"
)

var _ jsonmap.Logger = ZapLogger{}

// ZapLogger writes jsonmap fields as typed zap fields in key order. A nil L
// discards everything.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f jsonmap.Fields) { z.log(zap.DebugLevel, msg, f) }
func (z ZapLogger) Info(msg string, f jsonmap.Fields)  { z.log(zap.InfoLevel, msg, f) }
func (z ZapLogger) Warn(msg string, f jsonmap.Fields)  { z.log(zap.WarnLevel, msg, f) }
func (z ZapLogger) Error(msg string, f jsonmap.Fields) { z.log(zap.ErrorLevel, msg, f) }

func (z ZapLogger) log(lvl zapcore.Level, msg string, f jsonmap.Fields) {
	if z.L == nil {
		return
	}
	ce := z.L.Check(lvl, msg)
	if ce == nil {
		return
	}
	ce.Write(fields(f)...)
}

func fields(f jsonmap.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range f.Keys() {
		switch v := f[k].(type) {
		case string:
			out = append(out, zap.String(k, v))
		case error:
			out = append(out, zap.NamedError(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
