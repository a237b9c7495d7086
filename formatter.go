package jsonmap

import (
	"fmt"
	"sort"
	"time"
)

// DateFormatter parses date strings for DateFormatted.
type DateFormatter interface {
	Parse(s string) (time.Time, error)
}

// DateFormatterFunc adapts a function to DateFormatter.
type DateFormatterFunc func(s string) (time.Time, error)

func (f DateFormatterFunc) Parse(s string) (time.Time, error) { return f(s) }

// LayoutFormatter parses with a Go reference layout in a fixed location.
type LayoutFormatter struct {
	Layout   string
	Location *time.Location // nil means UTC
}

func (f LayoutFormatter) Parse(s string) (time.Time, error) {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(f.Layout, s, loc)
}

// FormatterRegistry is an immutable name to DateFormatter lookup, built once
// during setup and passed to whoever resolves formatter names (for example the
// config package).
type FormatterRegistry struct {
	byName map[string]DateFormatter
}

// NewFormatterRegistry copies m into a new registry.
func NewFormatterRegistry(m map[string]DateFormatter) *FormatterRegistry {
	byName := make(map[string]DateFormatter, len(m))
	for k, v := range m {
		if v != nil {
			byName[k] = v
		}
	}
	return &FormatterRegistry{byName: byName}
}

// Lookup returns the formatter registered under name.
func (r *FormatterRegistry) Lookup(name string) (DateFormatter, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.byName[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func (r *FormatterRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for k := range r.byName {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DateStrategy returns DateFormatted for the named formatter.
func (r *FormatterRegistry) DateStrategy(name string) (DateStrategy, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return DateStrategy{}, fmt.Errorf("jsonmap: no date formatter registered as %q", name)
	}
	return DateFormatted(f), nil
}
