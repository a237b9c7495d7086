package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonmap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jsonmap.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "iso8601", cfg.Date.Strategy)
	assert.Equal(t, "default", cfg.Keys)
	assert.Equal(t, "throw", cfg.Missing)
	assert.Equal(t, jsonmap.DefaultMaxDepth, cfg.Limits.MaxDepth)
	assert.Equal(t, "go-json", cfg.Driver)

	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	a := jsonmap.New(opts...)
	s := a.Strategies()
	assert.Equal(t, jsonmap.KeysDefault, s.Keys)
	assert.Equal(t, jsonmap.MissingThrow, s.Missing)
	assert.Equal(t, "iso8601", s.Date.String())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
date:
  strategy: formatted
  formatter: day
keys: snake_case
missing: use_defaults
non_finite:
  strategy: from_string
  positive_infinity: "+Inf"
  negative_infinity: "-Inf"
  nan: "NaN"
limits:
  max_depth: 8
  duplicate_keys: error
driver: encoding/json
comments: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "formatted", cfg.Date.Strategy)
	assert.Equal(t, 8, cfg.Limits.MaxDepth)
	assert.True(t, cfg.Comments)

	reg := jsonmap.NewFormatterRegistry(map[string]jsonmap.DateFormatter{
		"day": jsonmap.LayoutFormatter{Layout: "2006-01-02"},
	})
	opts, err := cfg.Options(reg)
	require.NoError(t, err)
	a := jsonmap.New(opts...)

	s := a.Strategies()
	assert.Equal(t, jsonmap.KeysSnakeCase, s.Keys)
	assert.Equal(t, jsonmap.MissingUseDefaults, s.Missing)
	assert.Equal(t, "from_string", s.NonFinite.String())
	assert.Equal(t, jsonmap.Error, s.Limits.DuplicateKeys)

	doc := `{
		// comments are allowed by the config
		"created_on": "2015-02-12",
	}`
	got, err := jsonmap.DecodeString(a, doc, func(m *jsonmap.Mapper) (time.Time, error) {
		return jsonmap.Time(m.At(jsonmap.KeyPath{"createdOn"}))
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, 2, 12, 0, 0, 0, 0, time.UTC), got)

	_, err = jsonmap.DecodeString(a, `{"a":1,"a":2}`, jsonmap.Raw)
	assert.ErrorIs(t, err, jsonmap.ErrMalformedJSON)
}

func TestConfig_InlineLayout(t *testing.T) {
	cfg := NewConfig()
	cfg.Date = DateConfig{Strategy: "formatted", Layout: "02/01/2006 15:04", Location: "UTC"}
	opts, err := cfg.Options(nil)
	require.NoError(t, err)

	got, err := jsonmap.DecodeString(jsonmap.New(opts...), `"12/02/2015 15:26"`, jsonmap.Time)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, 2, 12, 15, 26, 0, 0, time.UTC), got)
}

func TestConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig(writeConfig(t, "keys: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")

	cases := map[string]func(*Config){
		"unknown date strategy":        func(c *Config) { c.Date.Strategy = "rfc822" },
		"no date formatter registered": func(c *Config) { c.Date = DateConfig{Strategy: "formatted", Formatter: "nope"} },
		"needs a formatter or a layout": func(c *Config) { c.Date = DateConfig{Strategy: "formatted"} },
		"unknown key strategy":          func(c *Config) { c.Keys = "kebab" },
		"unknown missing-value":         func(c *Config) { c.Missing = "ignore" },
		"from_string needs":             func(c *Config) { c.NonFinite.Strategy = "from_string" },
		"unknown severity":              func(c *Config) { c.Limits.DuplicateKeys = "fatal" },
		"unknown driver":                func(c *Config) { c.Driver = "sonic" },
		"unknown data strategy":         func(c *Config) { c.Data = "hex" },
	}
	for want, mutate := range cases {
		cfg := NewConfig()
		mutate(cfg)
		_, err := cfg.Options(nil)
		assert.ErrorContains(t, err, want)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".jsonmap.yml"), []byte("keys: snake_case\n"), 0o600))

	chdir(t, nested)
	found := FindConfigFile()
	assert.Equal(t, filepath.Join(dir, ".jsonmap.yml"), found)
}
