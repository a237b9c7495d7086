package jsonmap

import (
	"encoding/base64"
	"math"
	"net/url"
	"strings"
	"time"
)

// zeroOrMissing applies the missing-value policy for types that have a
// natural zero value.
func zeroOrMissing[T any](m *Mapper, zero T) (T, error) {
	if m.s.Missing == MissingUseDefaults {
		return zero, nil
	}
	return zero, m.MissingError()
}

// Bool accepts a JSON boolean, or a string spelling true/yes/1 or false/no/0
// in any letter case.
func Bool(m *Mapper) (bool, error) {
	switch m.node.Kind() {
	case KindNull:
		return zeroOrMissing(m, false)
	case KindBool:
		b, _ := m.node.Bool()
		return b, nil
	case KindString:
		s, _ := m.node.Str()
		switch strings.ToLower(s) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0":
			return false, nil
		}
	}
	return false, m.InvalidTypeError("bool")
}

// String accepts a JSON string only.
func String(m *Mapper) (string, error) {
	switch m.node.Kind() {
	case KindNull:
		return zeroOrMissing(m, "")
	case KindString:
		s, _ := m.node.Str()
		return s, nil
	}
	return "", m.InvalidTypeError("string")
}

// Time reads a time.Time according to the active DateStrategy.
func Time(m *Mapper) (time.Time, error) {
	if m.IsAbsent() {
		return time.Time{}, m.MissingError()
	}
	ds := m.s.Date
	switch ds.kind {
	case dateSeconds, dateMilliseconds:
		n, ok := m.node.Number()
		if !ok {
			return time.Time{}, m.InvalidTypeError("number (date)")
		}
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return time.Time{}, m.DataCorruptedError("date offset " + string(n) + " is not a finite number")
		}
		if ds.kind == dateMilliseconds {
			f /= 1000
		}
		t, ok := epochSeconds(f)
		if !ok {
			return time.Time{}, m.DataCorruptedError("date offset " + string(n) + " is out of range")
		}
		return t, nil
	case dateFormatted:
		s, ok := m.node.Str()
		if !ok {
			return time.Time{}, m.InvalidTypeError("string (date)")
		}
		t, err := ds.formatter.Parse(s)
		if err != nil {
			return time.Time{}, dataCorrupted(m.path, m.node, "date string does not match format", err)
		}
		return t, nil
	case dateCustom:
		t, err := ds.custom(m.node)
		if err != nil {
			return time.Time{}, m.wrapCustom(err)
		}
		return t, nil
	default:
		s, ok := m.node.Str()
		if !ok {
			return time.Time{}, m.InvalidTypeError("string (date)")
		}
		t, err := parseRFC3339(s)
		if err != nil {
			return time.Time{}, dataCorrupted(m.path, m.node, "expected date string to be ISO8601-formatted", err)
		}
		return t, nil
	}
}

func parseRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// epochSeconds converts fractional seconds since 1970 into a UTC instant with
// millisecond-level precision preserved. Offsets outside the int64 second
// range are rejected.
func epochSeconds(f float64) (time.Time, bool) {
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), true
}

// Bytes reads a binary payload according to the active DataStrategy.
func Bytes(m *Mapper) ([]byte, error) {
	if m.IsAbsent() {
		return nil, m.MissingError()
	}
	if fn := m.s.Data.custom; fn != nil {
		b, err := fn(m.node)
		if err != nil {
			return nil, m.wrapCustom(err)
		}
		return b, nil
	}
	s, ok := m.node.Str()
	if !ok {
		return nil, m.InvalidTypeError("string (base64)")
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, dataCorrupted(m.path, m.node, "encountered data is not valid base64", err)
	}
	return b, nil
}

// URL reads a non-empty string that parses as a URL.
func URL(m *Mapper) (*url.URL, error) {
	if m.IsAbsent() {
		return nil, m.MissingError()
	}
	s, ok := m.node.Str()
	if !ok {
		return nil, m.InvalidTypeError("string (url)")
	}
	if strings.TrimSpace(s) == "" || strings.ContainsAny(s, " \t\r\n") {
		return nil, m.DataCorruptedError("invalid URL string")
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, dataCorrupted(m.path, m.node, "invalid URL string", err)
	}
	return u, nil
}
