package zap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/jsonmap"
)

func TestZapLogger_ParseWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := jsonmap.New(jsonmap.WithLogger(ZapLogger{L: zap.New(core)}))

	_, err := jsonmap.DecodeString(a, `{"a":`, jsonmap.Raw)
	require.Error(t, err)

	entries := logs.FilterMessage("jsonmap parse failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "parse_error", entries[0].ContextMap()["code"])
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}
	l.Debug("d", nil)
	l.Info("i", jsonmap.Fields{"k": 1})
	l.Warn("w", nil)
	l.Error("e", nil)

	all := logs.All()
	require.Len(t, all, 4)
	assert.Equal(t, zapcore.InfoLevel, all[1].Level)
	assert.EqualValues(t, 1, all[1].ContextMap()["k"])
	assert.Equal(t, zapcore.ErrorLevel, all[3].Level)
}
