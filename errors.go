package jsonmap

import (
	"errors"
	"fmt"

	"github.com/reoring/jsonmap/i18n"
)

// Error codes (exported for logs and i18n lookups).
const (
	CodeInvalidType    = "invalid_type"
	CodeKeyPathMissing = "key_path_missing"
	CodeDataCorrupted  = "data_corrupted"
	CodeParseError     = "parse_error"
	CodeDuplicateKey   = "duplicate_key"
	CodeMaxDepth       = "max_depth"
	CodeTruncated      = "truncated"
)

// ErrorKind is one of the three ways decoding a present document can fail.
type ErrorKind int

const (
	// InvalidType: a value is present but has the wrong JSON shape.
	InvalidType ErrorKind = iota + 1
	// KeyPathMissing: nothing resolvable and the policy demands a value.
	KeyPathMissing
	// DataCorrupted: the shape is right but the content failed validation
	// (bad base64, URL or date, numeric overflow, unknown enum value).
	DataCorrupted
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidType:
		return "InvalidType"
	case KeyPathMissing:
		return "KeyPathMissing"
	case DataCorrupted:
		return "DataCorrupted"
	default:
		return "Unknown"
	}
}

// Code returns the snake_case code used in logs and messages.
func (k ErrorKind) Code() string {
	switch k {
	case InvalidType:
		return CodeInvalidType
	case KeyPathMissing:
		return CodeKeyPathMissing
	case DataCorrupted:
		return CodeDataCorrupted
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *DecodeError of the same kind.
var (
	ErrInvalidType    = errors.New("jsonmap: invalid type")
	ErrKeyPathMissing = errors.New("jsonmap: key path missing")
	ErrDataCorrupted  = errors.New("jsonmap: data corrupted")
	// ErrMalformedJSON matches every *ParseError.
	ErrMalformedJSON = errors.New("jsonmap: malformed JSON")
)

// DecodeError reports a failed coercion or resolution together with the full
// path of the offending node.
type DecodeError struct {
	Kind     ErrorKind
	Path     Path
	Expected string // InvalidType: the expected shape or Go type
	Actual   string // InvalidType: the JSON kind found
	Value    Value  // DataCorrupted: the offending value
	Reason   string // DataCorrupted: why the value was rejected
	Cause    error  // optional underlying error
}

func (e *DecodeError) Error() string {
	data := map[string]string{"path": e.Path.display()}
	switch e.Kind {
	case InvalidType:
		data["expected"] = e.Expected
		data["actual"] = e.Actual
	case DataCorrupted:
		data["reason"] = e.Reason
	}
	return "jsonmap: " + i18n.T(e.Kind.Code(), data)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Is matches the sentinel of the same kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrInvalidType:
		return e.Kind == InvalidType
	case ErrKeyPathMissing:
		return e.Kind == KeyPathMissing
	case ErrDataCorrupted:
		return e.Kind == DataCorrupted
	}
	return false
}

// Code returns the error code of the kind.
func (e *DecodeError) Code() string { return e.Kind.Code() }

// AsDecodeError extracts a *DecodeError using errors.As.
func AsDecodeError(err error) (*DecodeError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ParseError reports malformed input found before any coercion ran.
type ParseError struct {
	Code   string // CodeParseError, CodeDuplicateKey, CodeMaxDepth or CodeTruncated
	Path   string // JSON Pointer of the offending token when known
	Offset int64  // byte offset, -1 when unknown
	Cause  error
}

func (e *ParseError) Error() string {
	reason := ""
	if e.Cause != nil {
		reason = e.Cause.Error()
	}
	msg := i18n.T(e.Code, map[string]string{"path": e.Path, "reason": reason})
	if e.Offset >= 0 {
		return fmt.Sprintf("jsonmap: %s (offset %d)", msg, e.Offset)
	}
	return "jsonmap: " + msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedJSON }

func invalidType(at Path, expected string, found Value) *DecodeError {
	return &DecodeError{Kind: InvalidType, Path: at, Expected: expected, Actual: found.Kind().String()}
}

func keyPathMissing(at Path) *DecodeError {
	return &DecodeError{Kind: KeyPathMissing, Path: at}
}

func dataCorrupted(at Path, v Value, reason string, cause error) *DecodeError {
	return &DecodeError{Kind: DataCorrupted, Path: at, Value: v, Reason: reason, Cause: cause}
}
