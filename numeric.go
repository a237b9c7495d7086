package jsonmap

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// bitsOf returns the width and signedness of T.
func bitsOf[T integer]() (bits int, signed bool) {
	var zero T
	if zero-1 < 0 {
		for x := T(1); x != 0; x <<= 1 {
			bits++
		}
		return bits, true
	}
	for x := ^zero; x != 0; x >>= 1 {
		bits++
	}
	return bits, false
}

// decodeInteger reads a JSON number into T. The number must survive the
// narrowing exactly: a fraction or a value outside T's range is rejected.
func decodeInteger[T integer](m *Mapper, name string) (T, error) {
	var zero T
	if m.IsAbsent() {
		return zeroOrMissing(m, zero)
	}
	lit, ok := m.node.Number()
	if !ok {
		return zero, m.InvalidTypeError(name)
	}
	v, err := parseInteger[T](string(lit))
	if err != nil {
		return zero, dataCorrupted(m.path, m.node,
			fmt.Sprintf("parsed JSON number <%s> does not fit in %s", lit, name), err)
	}
	return v, nil
}

var errNotIntegral = errors.New("number is not integral")

func parseInteger[T integer](lit string) (T, error) {
	bits, signed := bitsOf[T]()
	if signed {
		if i, err := strconv.ParseInt(lit, 10, bits); err == nil {
			return T(i), nil
		} else if isRangeErr(err) {
			return 0, err
		}
	} else {
		if u, err := strconv.ParseUint(lit, 10, bits); err == nil {
			return T(u), nil
		} else if isRangeErr(err) {
			return 0, err
		}
	}
	// Fraction or exponent form: accept only integral values in range.
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return 0, fmt.Errorf("invalid number literal %q", lit)
	}
	if !r.IsInt() {
		return 0, errNotIntegral
	}
	n := r.Num()
	if signed {
		if !n.IsInt64() {
			return 0, strconv.ErrRange
		}
		i := n.Int64()
		if bits < 64 && (i < -(1<<(bits-1)) || i > 1<<(bits-1)-1) {
			return 0, strconv.ErrRange
		}
		return T(i), nil
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, strconv.ErrRange
	}
	u := n.Uint64()
	if bits < 64 && u > 1<<bits-1 {
		return 0, strconv.ErrRange
	}
	return T(u), nil
}

func Int(m *Mapper) (int, error)         { return decodeInteger[int](m, "int") }
func Int8(m *Mapper) (int8, error)       { return decodeInteger[int8](m, "int8") }
func Int16(m *Mapper) (int16, error)     { return decodeInteger[int16](m, "int16") }
func Int32(m *Mapper) (int32, error)     { return decodeInteger[int32](m, "int32") }
func Int64(m *Mapper) (int64, error)     { return decodeInteger[int64](m, "int64") }
func Uint(m *Mapper) (uint, error)       { return decodeInteger[uint](m, "uint") }
func Uint8(m *Mapper) (uint8, error)     { return decodeInteger[uint8](m, "uint8") }
func Uint16(m *Mapper) (uint16, error)   { return decodeInteger[uint16](m, "uint16") }
func Uint32(m *Mapper) (uint32, error)   { return decodeInteger[uint32](m, "uint32") }
func Uint64(m *Mapper) (uint64, error)   { return decodeInteger[uint64](m, "uint64") }
func Uintptr(m *Mapper) (uintptr, error) { return decodeInteger[uintptr](m, "uintptr") }

// Float64 reads a JSON number, or one of the non-finite sentinel strings when
// the NonFiniteStrategy allows them.
func Float64(m *Mapper) (float64, error) {
	switch m.node.Kind() {
	case KindNull:
		return zeroOrMissing(m, 0.0)
	case KindNumber:
		lit, _ := m.node.Number()
		f, err := strconv.ParseFloat(string(lit), 64)
		if err != nil {
			return 0, dataCorrupted(m.path, m.node,
				fmt.Sprintf("parsed JSON number <%s> does not fit in float64", lit), err)
		}
		return f, nil
	case KindString:
		if f, ok := m.nonFinite(); ok {
			return f, nil
		}
	}
	return 0, m.InvalidTypeError("float64")
}

// Float32 is Float64 narrowed to float32; finite values beyond the float32
// range are rejected.
func Float32(m *Mapper) (float32, error) {
	switch m.node.Kind() {
	case KindNull:
		return zeroOrMissing(m, float32(0))
	case KindNumber:
		lit, _ := m.node.Number()
		f, err := strconv.ParseFloat(string(lit), 64)
		if err != nil || math.Abs(f) > math.MaxFloat32 {
			return 0, dataCorrupted(m.path, m.node,
				fmt.Sprintf("parsed JSON number <%s> does not fit in float32", lit), err)
		}
		return float32(f), nil
	case KindString:
		if f, ok := m.nonFinite(); ok {
			return float32(f), nil
		}
	}
	return 0, m.InvalidTypeError("float32")
}

func (m *Mapper) nonFinite() (float64, bool) {
	nf := m.s.NonFinite
	if !nf.convert {
		return 0, false
	}
	s, _ := m.node.Str()
	switch s {
	case nf.posInf:
		return math.Inf(1), true
	case nf.negInf:
		return math.Inf(-1), true
	case nf.nanTok:
		return math.NaN(), true
	}
	return 0, false
}
