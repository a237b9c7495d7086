package jsonmap

import "fmt"

// Enum decodes the raw value with raw and then requires it to equal one of
// cases. A missing value always fails, whatever the missing-value strategy.
func Enum[T comparable](raw Func[T], cases ...T) Func[T] {
	return func(m *Mapper) (T, error) {
		var zero T
		if m.IsAbsent() {
			return zero, m.MissingError()
		}
		v, err := raw(m)
		if err != nil {
			return zero, err
		}
		for _, c := range cases {
			if c == v {
				return v, nil
			}
		}
		return zero, m.DataCorruptedError(fmt.Sprintf("cannot initialize %T from invalid raw value %v", zero, v))
	}
}

// StringEnum is Enum for types whose raw value is a string.
func StringEnum[T ~string](cases ...T) Func[T] {
	return Enum(Transform(String, func(s string) (T, error) { return T(s), nil }), cases...)
}

// IntEnum is Enum for types whose raw value is an integer.
func IntEnum[T ~int | ~int8 | ~int16 | ~int32 | ~int64](cases ...T) Func[T] {
	return Enum(Transform(Int64, func(i int64) (T, error) {
		t := T(i)
		if int64(t) != i {
			return 0, fmt.Errorf("raw value %d overflows %T", i, t)
		}
		return t, nil
	}), cases...)
}
