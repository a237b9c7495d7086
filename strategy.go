package jsonmap

import "time"

type dateKind int

const (
	dateISO8601 dateKind = iota
	dateSeconds
	dateMilliseconds
	dateFormatted
	dateCustom
)

// DateStrategy selects how time.Time values are read. The zero value is
// DateISO8601.
type DateStrategy struct {
	kind      dateKind
	formatter DateFormatter
	custom    func(Value) (time.Time, error)
}

var (
	// DateISO8601 reads an RFC 3339 timestamp string such as
	// "2015-02-12T15:26:30Z".
	DateISO8601 = DateStrategy{kind: dateISO8601}
	// DateSecondsSince1970 reads a number of seconds since the Unix epoch.
	DateSecondsSince1970 = DateStrategy{kind: dateSeconds}
	// DateMillisecondsSince1970 reads a number of milliseconds since the Unix
	// epoch.
	DateMillisecondsSince1970 = DateStrategy{kind: dateMilliseconds}
)

// DateFormatted reads a string and hands it to f.
func DateFormatted(f DateFormatter) DateStrategy {
	return DateStrategy{kind: dateFormatted, formatter: f}
}

// DateCustom hands the raw node to fn. Errors other than *DecodeError are reported
// as DataCorrupted.
func DateCustom(fn func(Value) (time.Time, error)) DateStrategy {
	return DateStrategy{kind: dateCustom, custom: fn}
}

func (d DateStrategy) String() string {
	switch d.kind {
	case dateSeconds:
		return "seconds_since_1970"
	case dateMilliseconds:
		return "milliseconds_since_1970"
	case dateFormatted:
		return "formatted"
	case dateCustom:
		return "custom"
	default:
		return "iso8601"
	}
}

// DataStrategy selects how []byte values are read. The zero value is
// DataBase64.
type DataStrategy struct {
	custom func(Value) ([]byte, error)
}

// DataBase64 reads a standard, padded base64 string.
var DataBase64 = DataStrategy{}

// DataCustom hands the raw node to fn. Errors other than *DecodeError are reported
// as DataCorrupted.
func DataCustom(fn func(Value) ([]byte, error)) DataStrategy { return DataStrategy{custom: fn} }

func (d DataStrategy) String() string {
	if d.custom != nil {
		return "custom"
	}
	return "base64"
}

// MissingValueStrategy decides what happens when a keypath resolves to
// nothing.
type MissingValueStrategy int

const (
	// MissingThrow fails with KeyPathMissing.
	MissingThrow MissingValueStrategy = iota
	// MissingUseDefaults yields the zero value for bools, numbers, strings,
	// slices and maps. Types without a natural zero (dates, binary payloads,
	// URLs, enums, models, raw nodes) still fail with KeyPathMissing.
	MissingUseDefaults
)

func (m MissingValueStrategy) String() string {
	if m == MissingUseDefaults {
		return "use_defaults"
	}
	return "throw"
}

// NonFiniteStrategy decides whether infinities and NaN may be spelled as
// strings. The zero value is NonFiniteThrow.
type NonFiniteStrategy struct {
	convert                bool
	posInf, negInf, nanTok string
}

// NonFiniteThrow rejects strings where a float is expected.
var NonFiniteThrow = NonFiniteStrategy{}

// NonFiniteFromString maps the three given strings to +Inf, -Inf and NaN.
func NonFiniteFromString(positiveInfinity, negativeInfinity, nan string) NonFiniteStrategy {
	return NonFiniteStrategy{convert: true, posInf: positiveInfinity, negInf: negativeInfinity, nanTok: nan}
}

func (n NonFiniteStrategy) String() string {
	if n.convert {
		return "from_string"
	}
	return "throw"
}
