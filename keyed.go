package jsonmap

import (
	"net/url"
	"sort"
	"time"
)

// Keyed is the object view of a Mapper. Lookups go through the keypath
// resolver and the active key strategy.
type Keyed struct {
	m   *Mapper
	obj map[string]Value
}

// Mapper returns the context the view was built from.
func (k *Keyed) Mapper() *Mapper { return k.m }

// Path returns the location of the object.
func (k *Keyed) Path() Path { return k.m.path }

// Contains reports whether kp resolves to a non-null value.
func (k *Keyed) Contains(kp KeyPath) bool { return k.m.Contains(kp) }

// Keys returns the raw member names of the object in sorted order.
func (k *Keyed) Keys() []string {
	keys := make([]string, 0, len(k.obj))
	for key := range k.obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// At returns the child context at kp, absent when it does not resolve.
func (k *Keyed) At(kp KeyPath) *Mapper { return k.m.At(kp) }

// Keyed returns the object view at kp.
func (k *Keyed) Keyed(kp KeyPath) (*Keyed, error) { return k.m.At(kp).Keyed() }

// Unkeyed returns the array view at kp.
func (k *Keyed) Unkeyed(kp KeyPath) (*Unkeyed, error) { return k.m.At(kp).Unkeyed() }

// Field decodes the value at kp with fn.
func Field[T any](k *Keyed, kp KeyPath, fn Func[T]) (T, error) {
	return fn(k.m.At(kp))
}

// TryField is the best-effort form of Field: any failure is reported as
// absence.
func TryField[T any](k *Keyed, kp KeyPath, fn Func[T]) (T, bool) {
	v, err := fn(k.m.At(kp))
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// OptionalField is TryField returning nil on failure, convenient for optional
// struct fields.
func OptionalField[T any](k *Keyed, kp KeyPath, fn Func[T]) *T {
	v, ok := TryField(k, kp, fn)
	if !ok {
		return nil
	}
	return &v
}

// Shorthands for the built-in scalar Funcs.

func (k *Keyed) String(kp KeyPath) (string, error)      { return String(k.m.At(kp)) }
func (k *Keyed) Bool(kp KeyPath) (bool, error)          { return Bool(k.m.At(kp)) }
func (k *Keyed) Int(kp KeyPath) (int, error)            { return Int(k.m.At(kp)) }
func (k *Keyed) Int64(kp KeyPath) (int64, error)        { return Int64(k.m.At(kp)) }
func (k *Keyed) Uint64(kp KeyPath) (uint64, error)      { return Uint64(k.m.At(kp)) }
func (k *Keyed) Float64(kp KeyPath) (float64, error)    { return Float64(k.m.At(kp)) }
func (k *Keyed) Time(kp KeyPath) (time.Time, error)     { return Time(k.m.At(kp)) }
func (k *Keyed) Bytes(kp KeyPath) ([]byte, error)       { return Bytes(k.m.At(kp)) }
func (k *Keyed) URL(kp KeyPath) (*url.URL, error)       { return URL(k.m.At(kp)) }
func (k *Keyed) Raw(kp KeyPath) (Value, error)          { return Raw(k.m.At(kp)) }
func (k *Keyed) Strings(kp KeyPath) ([]string, error)   { return ArrayOf(String)(k.m.At(kp)) }
func (k *Keyed) Ints(kp KeyPath) ([]int, error)         { return ArrayOf(Int)(k.m.At(kp)) }
func (k *Keyed) Float64s(kp KeyPath) ([]float64, error) { return ArrayOf(Float64)(k.m.At(kp)) }
