package engine

import (
	"errors"
	"fmt"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the tree builder.
type TokenSource interface {
	NextToken() (Token, error)
	// Location returns the byte offset after the last token, or -1 when the
	// driver does not track offsets.
	Location() int64
}

// ErrUnexpectedToken is returned when a token arrives where the grammar does
// not allow it.
var ErrUnexpectedToken = errors.New("unexpected token")

// SyntaxError is returned by drivers for malformed input.
type SyntaxError struct {
	Offset int64 // -1 when unknown
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%v (offset %d)", e.Err, e.Offset)
	}
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Framer tracks object/array nesting for drivers whose underlying decoder
// reports keys as plain strings.
type Framer struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Open records the start of a container.
func (f *Framer) Open(object bool) {
	f.stack = append(f.stack, frame{object: object, expectingKey: object})
}

// Close records the end of a container, which counts as a value for its
// parent.
func (f *Framer) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.Value()
}

// Value records a complete value in the current container.
func (f *Framer) Value() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// Key reports whether the next string is an object key and, if so, consumes
// the key slot.
func (f *Framer) Key() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}
