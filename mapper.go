package jsonmap

import (
	"errors"
	"fmt"
)

// Func is the decoding contract for T: build a T from the node held by m, or
// fail with a *DecodeError. Built-in Funcs exist for every scalar type; domain
// types usually implement Mappable and are lifted with Model.
type Func[T any] func(m *Mapper) (T, error)

// Mappable is implemented by domain types, on a pointer receiver, to fill
// themselves from a Mapper.
type Mappable interface {
	MapJSON(m *Mapper) error
}

// Mapper is the decoding context handed to every Func: one JSON node (null
// when absent), the path leading to it and the strategies of the current
// decode call.
//
// Mappers are cheap and short-lived; create them with At, Keyed or Unkeyed and
// drop them once the field has been produced.
type Mapper struct {
	node Value
	path Path
	s    *Strategies
}

func newMapper(node Value, at Path, s *Strategies) *Mapper {
	return &Mapper{node: node, path: at, s: s}
}

// Value returns the node held by m. The null Value means absent.
func (m *Mapper) Value() Value { return m.node }

// Path returns the location of the node.
func (m *Mapper) Path() Path { return m.path }

// Strategies returns a copy of the active strategies.
func (m *Mapper) Strategies() Strategies { return *m.s }

// IsAbsent reports whether the node is missing or null.
func (m *Mapper) IsAbsent() bool { return m.node.IsNull() }

// At resolves kp below the current node and returns the child context. The
// child is absent when any segment is missing or null.
func (m *Mapper) At(kp KeyPath) *Mapper {
	node, at := resolve(m.node, kp, m.s.Keys, m.path)
	return newMapper(node, at, m.s)
}

// Contains reports whether kp resolves to a non-null value.
func (m *Mapper) Contains(kp KeyPath) bool {
	node, _ := resolve(m.node, kp, m.s.Keys, m.path)
	return !node.IsNull()
}

// Keyed returns the object view of the node.
func (m *Mapper) Keyed() (*Keyed, error) {
	if m.IsAbsent() {
		return nil, m.MissingError()
	}
	obj, ok := m.node.Object()
	if !ok {
		return nil, m.InvalidTypeError("object")
	}
	return &Keyed{m: m, obj: obj}, nil
}

// Unkeyed returns the array view of the node.
func (m *Mapper) Unkeyed() (*Unkeyed, error) {
	if m.IsAbsent() {
		return nil, m.MissingError()
	}
	items, ok := m.node.Array()
	if !ok {
		return nil, m.InvalidTypeError("array")
	}
	return &Unkeyed{m: m, items: items}, nil
}

// Single returns the scalar view of the node.
func (m *Mapper) Single() (*Single, error) {
	if m.IsAbsent() {
		return nil, m.MissingError()
	}
	return &Single{m: m}, nil
}

// InvalidTypeError builds an InvalidType error for the current node.
func (m *Mapper) InvalidTypeError(expected string) *DecodeError {
	return invalidType(m.path, expected, m.node)
}

// MissingError builds a KeyPathMissing error for the current path.
func (m *Mapper) MissingError() *DecodeError {
	return keyPathMissing(m.path)
}

// DataCorruptedError builds a DataCorrupted error for the current node.
func (m *Mapper) DataCorruptedError(reason string) *DecodeError {
	return dataCorrupted(m.path, m.node, reason, nil)
}

// wrapCustom turns an error returned by a caller-supplied function into a
// *DecodeError located at m. Errors that already are *DecodeError pass
// through.
func (m *Mapper) wrapCustom(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return dataCorrupted(m.path, m.node, err.Error(), err)
}

// Model lifts a Mappable type into a Func. The node must be an object; a
// missing node always fails with KeyPathMissing.
func Model[T any, PT interface {
	*T
	Mappable
}]() Func[T] {
	return func(m *Mapper) (T, error) {
		var v T
		if m.IsAbsent() {
			return v, m.MissingError()
		}
		if m.node.Kind() != KindObject {
			return v, m.InvalidTypeError(fmt.Sprintf("object (%T)", v))
		}
		if err := PT(&v).MapJSON(m); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Nested runs fn against the node after checking that it is a present object.
func Nested[T any](fn Func[T]) Func[T] {
	return func(m *Mapper) (T, error) {
		var zero T
		if _, err := m.Keyed(); err != nil {
			return zero, err
		}
		return fn(m)
	}
}

// Transform decodes with fn and converts the result with conv. Errors from
// conv are reported as DataCorrupted unless they already are *DecodeError.
func Transform[T, U any](fn Func[T], conv func(T) (U, error)) Func[U] {
	return func(m *Mapper) (U, error) {
		var zero U
		t, err := fn(m)
		if err != nil {
			return zero, err
		}
		u, err := conv(t)
		if err != nil {
			return zero, m.wrapCustom(err)
		}
		return u, nil
	}
}

// Raw returns the node itself. A missing node always fails.
func Raw(m *Mapper) (Value, error) {
	if m.IsAbsent() {
		return Value{}, m.MissingError()
	}
	return m.node, nil
}
