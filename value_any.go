package jsonmap

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	j "github.com/goccy/go-json"
)

// FromAny converts a generic Go tree, as produced by encoding/json, yaml.v3,
// cbor or msgpack decoders, into a Value.
//
// Byte slices become base64 strings and time.Time becomes an RFC 3339 string so
// that the default Data and Date strategies can read them back. Non-finite
// floats and unsupported types are rejected. maxDepth <= 0 selects
// DefaultMaxDepth.
func FromAny(v any, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return fromAny(v, Path{}, 0, maxDepth)
}

func fromAny(v any, at Path, depth, maxDepth int) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		if !isNumberLiteral(string(t)) {
			return Value{}, fmt.Errorf("jsonmap: invalid number %q at %s", string(t), at.display())
		}
		return NumberValue(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("jsonmap: non-finite number at %s", at.display())
		}
		return FloatValue(t), nil
	case float32:
		return fromAny(float64(t), at, depth, maxDepth)
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return UintValue(uint64(t)), nil
	case uint8:
		return UintValue(uint64(t)), nil
	case uint16:
		return UintValue(uint64(t)), nil
	case uint32:
		return UintValue(uint64(t)), nil
	case uint64:
		return UintValue(t), nil
	case []byte:
		return StringValue(base64.StdEncoding.EncodeToString(t)), nil
	case time.Time:
		return StringValue(t.Format(time.RFC3339Nano)), nil
	case []any:
		if depth+1 > maxDepth {
			return Value{}, fmt.Errorf("jsonmap: max depth %d exceeded at %s", maxDepth, at.display())
		}
		items := make([]Value, len(t))
		for i, e := range t {
			ev, err := fromAny(e, at.Index(i), depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			items[i] = ev
		}
		return ArrayValue(items...), nil
	case map[string]any:
		if depth+1 > maxDepth {
			return Value{}, fmt.Errorf("jsonmap: max depth %d exceeded at %s", maxDepth, at.display())
		}
		members := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := fromAny(e, at.Field(k), depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			members[k] = ev
		}
		return ObjectValue(members), nil
	case map[any]any:
		if depth+1 > maxDepth {
			return Value{}, fmt.Errorf("jsonmap: max depth %d exceeded at %s", maxDepth, at.display())
		}
		members := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("jsonmap: non-string key %v at %s", k, at.display())
			}
			ev, err := fromAny(e, at.Field(ks), depth+1, maxDepth)
			if err != nil {
				return Value{}, err
			}
			members[ks] = ev
		}
		return ObjectValue(members), nil
	default:
		return Value{}, fmt.Errorf("jsonmap: unsupported type %T at %s", v, at.display())
	}
}

// Interface converts v back into a generic tree: nil, bool, json.Number,
// string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.s)
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.Interface()) }

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// isNumberLiteral reports whether s is a JSON number literal: ParseFloat
// alone would also take "NaN", "Inf" and hex floats.
func isNumberLiteral(s string) bool {
	if s == "" || !(s[0] == '-' || isDigit(s[0])) || !isDigit(s[len(s)-1]) {
		return false
	}
	return j.Valid([]byte(s))
}
