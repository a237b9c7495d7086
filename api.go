package jsonmap

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/reoring/jsonmap/internal/driver/gojson"
	"github.com/reoring/jsonmap/internal/driver/stdjson"
	"github.com/reoring/jsonmap/internal/engine"
)

// Driver selects the JSON tokenizer used to build the Value tree.
type Driver int

const (
	// DriverGoJSON tokenizes with github.com/goccy/go-json (default).
	DriverGoJSON Driver = iota
	// DriverStdlib tokenizes with encoding/json and reports byte offsets.
	DriverStdlib
)

func (d Driver) String() string {
	if d == DriverStdlib {
		return stdjson.Name
	}
	return gojson.Name
}

func (d Driver) tokens(data []byte) engine.TokenSource {
	// encoding/json locates the error in documents go-json rejects.
	if d == DriverStdlib || !gojson.Valid(data) {
		return stdjson.NewBytes(data)
	}
	return gojson.NewBytes(data)
}

// Option configures an Adapter.
type Option func(*Adapter)

func WithDateStrategy(s DateStrategy) Option { return func(a *Adapter) { a.s.Date = s } }
func WithDataStrategy(s DataStrategy) Option { return func(a *Adapter) { a.s.Data = s } }
func WithKeyStrategy(s KeyStrategy) Option   { return func(a *Adapter) { a.s.Keys = s } }
func WithMissingValueStrategy(s MissingValueStrategy) Option {
	return func(a *Adapter) { a.s.Missing = s }
}
func WithNonFiniteStrategy(s NonFiniteStrategy) Option {
	return func(a *Adapter) { a.s.NonFinite = s }
}

// WithLimits bounds tree building (depth, size, duplicate keys).
func WithLimits(l Limits) Option { return func(a *Adapter) { a.s.Limits = l } }

// WithLogger routes parse warnings and decode failures to l.
func WithLogger(l Logger) Option {
	return func(a *Adapter) {
		if l == nil {
			l = NopLogger{}
		}
		a.log = l
	}
}

// WithDriver selects the JSON tokenizer.
func WithDriver(d Driver) Option { return func(a *Adapter) { a.driver = d } }

// WithComments accepts JSON with comments and trailing commas (JSONC).
func WithComments() Option { return func(a *Adapter) { a.comments = true } }

// Adapter turns JSON input into typed values. Build one with New; it is
// immutable afterwards and safe for concurrent use.
type Adapter struct {
	s        Strategies
	log      Logger
	driver   Driver
	comments bool
}

// New returns an Adapter configured by opts on top of DefaultStrategies.
func New(opts ...Option) *Adapter {
	a := &Adapter{s: DefaultStrategies(), log: NopLogger{}}
	for _, o := range opts {
		if o != nil {
			o(a)
		}
	}
	return a
}

var defaultAdapter = New()

// Strategies returns a copy of the adapter's strategies.
func (a *Adapter) Strategies() Strategies { return a.s }

// Parse builds the Value tree for data, enforcing the configured Limits.
func (a *Adapter) Parse(data []byte) (Value, error) {
	if limit := a.s.Limits.MaxBytes; limit > 0 && int64(len(data)) > limit {
		err := &ParseError{Code: CodeTruncated, Path: "/", Offset: limit, Cause: fmt.Errorf("input is %d bytes, limit %d", len(data), limit)}
		a.log.Warn("jsonmap parse failed", Fields{"code": err.Code, "error": err.Error()})
		return Value{}, err
	}
	if a.comments {
		data = jsonc.ToJSON(data)
	}
	src := engine.WrapWithEnforcement(a.driver.tokens(data), engine.EnforceOptions{
		OnDuplicate: duplicatePolicy(a.s.Limits.DuplicateKeys),
		MaxDepth:    a.s.Limits.maxDepth(),
		MaxBytes:    a.s.Limits.MaxBytes,
		IssueSink:   a.logIssue,
	})
	v, err := buildTree(src)
	if err != nil {
		fields := Fields{"driver": a.driver.String(), "error": err.Error()}
		if pe, ok := err.(*ParseError); ok {
			fields["code"] = pe.Code
			fields["path"] = pe.Path
		}
		a.log.Warn("jsonmap parse failed", fields)
		return Value{}, err
	}
	return v, nil
}

func (a *Adapter) logIssue(is engine.Issue) {
	if is.Code == engine.CodeDuplicateKey && a.s.Limits.DuplicateKeys == Warn {
		a.log.Warn("jsonmap duplicate key", Fields{"path": is.Path, "message": is.Message})
	}
}

func duplicatePolicy(s Severity) engine.DuplicatePolicy {
	switch s {
	case Warn:
		return engine.DupWarn
	case Error:
		return engine.DupError
	default:
		return engine.DupIgnore
	}
}

// Mapper returns the root decoding context for v. The strategies are shared,
// not copied, by every Mapper derived from it.
func (a *Adapter) Mapper(v Value) *Mapper {
	s := a.s
	return newMapper(v, Path{}, &s)
}

func (a *Adapter) logDecodeErr(err error) {
	if err == nil {
		return
	}
	f := Fields{"error": err.Error()}
	if de, ok := AsDecodeError(err); ok {
		f["code"] = de.Code()
		f["path"] = de.Path.String()
	}
	a.log.Debug("jsonmap decode failed", f)
}

// DecodeValue runs fn on an already built tree.
func DecodeValue[T any](a *Adapter, v Value, fn Func[T]) (T, error) {
	a = orDefault(a)
	out, err := fn(a.Mapper(v))
	a.logDecodeErr(err)
	return out, err
}

// Decode parses data and runs fn on the root value. a may be nil for the
// default configuration.
func Decode[T any](a *Adapter, data []byte, fn Func[T]) (T, error) {
	a = orDefault(a)
	v, err := a.Parse(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeValue(a, v, fn)
}

// DecodeString is Decode for a string input.
func DecodeString[T any](a *Adapter, s string, fn Func[T]) (T, error) {
	return Decode(a, []byte(s), fn)
}

// DecodeReader reads r to the end and decodes it. When MaxBytes is set, no
// more than MaxBytes+1 bytes are read.
func DecodeReader[T any](a *Adapter, r io.Reader, fn Func[T]) (T, error) {
	a = orDefault(a)
	var zero T
	if limit := a.s.Limits.MaxBytes; limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return zero, fmt.Errorf("jsonmap: read input: %w", err)
	}
	return Decode(a, buf.Bytes(), fn)
}

// DecodeFile decodes the file at path.
func DecodeFile[T any](a *Adapter, path string, fn Func[T]) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("jsonmap: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeReader(a, f, fn)
}

// DecodeAny converts a generic Go value (as produced by encoding/json,
// YAML or CBOR decoders) and decodes it.
func DecodeAny[T any](a *Adapter, x any, fn Func[T]) (T, error) {
	a = orDefault(a)
	v, err := FromAny(x, a.s.Limits.maxDepth())
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeValue(a, v, fn)
}

// DecodeMany decodes a root object as a one-element slice and a root array
// element by element. Any other root is an InvalidType error.
func DecodeMany[T any](a *Adapter, data []byte, fn Func[T]) ([]T, error) {
	a = orDefault(a)
	v, err := a.Parse(data)
	if err != nil {
		return nil, err
	}
	m := a.Mapper(v)
	var out []T
	switch v.Kind() {
	case KindObject:
		var one T
		one, err = fn(m)
		if err == nil {
			out = []T{one}
		}
	case KindArray:
		var u *Unkeyed
		if u, err = m.Unkeyed(); err == nil {
			out, err = Elements(u, fn)
		}
	default:
		err = m.InvalidTypeError("object or array")
	}
	a.logDecodeErr(err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TryDecode is the best-effort form of Decode: any failure yields false.
func TryDecode[T any](a *Adapter, data []byte, fn Func[T]) (T, bool) {
	v, err := Decode(a, data, fn)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func orDefault(a *Adapter) *Adapter {
	if a == nil {
		return defaultAdapter
	}
	return a
}
