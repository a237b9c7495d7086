// Package logrus routes jsonmap parse and decode diagnostics to logrus.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/reoring/jsonmap"
)

var _ jsonmap.Logger = LogrusLogger{}

// LogrusLogger logs through E. A nil E logs through the standard logrus
// logger.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f jsonmap.Fields) { l.log(logrus.DebugLevel, msg, f) }
func (l LogrusLogger) Info(msg string, f jsonmap.Fields)  { l.log(logrus.InfoLevel, msg, f) }
func (l LogrusLogger) Warn(msg string, f jsonmap.Fields)  { l.log(logrus.WarnLevel, msg, f) }
func (l LogrusLogger) Error(msg string, f jsonmap.Fields) { l.log(logrus.ErrorLevel, msg, f) }

func (l LogrusLogger) log(lvl logrus.Level, msg string, f jsonmap.Fields) {
	e := l.E
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	if !e.Logger.IsLevelEnabled(lvl) {
		return
	}
	if len(f) > 0 {
		e = e.WithFields(logrus.Fields(f))
	}
	e.Log(lvl, msg)
}
