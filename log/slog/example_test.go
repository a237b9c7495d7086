package slog_test

import (
	stdslog "log/slog"
	"os"

	"github.com/reoring/jsonmap"
	jmslog "github.com/reoring/jsonmap/log/slog"
)

func Example() {
	h := stdslog.NewTextHandler(os.Stdout, &stdslog.HandlerOptions{
		Level: stdslog.LevelDebug,
		ReplaceAttr: func(groups []string, a stdslog.Attr) stdslog.Attr {
			if a.Key == stdslog.TimeKey && len(groups) == 0 {
				return stdslog.Attr{}
			}
			return a
		},
	})
	a := jsonmap.New(jsonmap.WithLogger(jmslog.Logger{L: stdslog.New(h)}))

	_, _ = jsonmap.DecodeString(a, `{"retries":"three"}`, func(m *jsonmap.Mapper) (int, error) {
		return jsonmap.Int(m.At(jsonmap.KeyPath{"retries"}))
	})
	// Output:
	// level=DEBUG msg="jsonmap decode failed" code=invalid_type error="jsonmap: invalid type at retries: expected int, found string" path=retries
}
