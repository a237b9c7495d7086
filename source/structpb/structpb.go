// Package structpb reads google.protobuf.Struct and google.protobuf.Value
// messages into jsonmap Values.
//
// Struct numbers are doubles on the wire, so integers above 2^53 cannot be
// represented exactly; they arrive already rounded.
package structpb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsonmap"
)

// Parse unmarshals a serialized google.protobuf.Value.
func Parse(data []byte) (jsonmap.Value, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return jsonmap.Value{}, fmt.Errorf("structpb: %w", err)
	}
	return FromValue(&pv)
}

// ParseStruct unmarshals a serialized google.protobuf.Struct.
func ParseStruct(data []byte) (jsonmap.Value, error) {
	var ps structpb.Struct
	if err := proto.Unmarshal(data, &ps); err != nil {
		return jsonmap.Value{}, fmt.Errorf("structpb: %w", err)
	}
	return FromStruct(&ps)
}

// Decode runs fn on a google.protobuf.Struct with a's strategies.
func Decode[T any](a *jsonmap.Adapter, s *structpb.Struct, fn jsonmap.Func[T]) (T, error) {
	v, err := FromStruct(s)
	if err != nil {
		var zero T
		return zero, err
	}
	return jsonmap.DecodeValue(a, v, fn)
}

// FromStruct converts s; nil is null.
func FromStruct(s *structpb.Struct) (jsonmap.Value, error) {
	if s == nil {
		return jsonmap.Null(), nil
	}
	return fromStruct(s, 1)
}

// FromValue converts v; nil is null.
func FromValue(v *structpb.Value) (jsonmap.Value, error) {
	return fromValue(v, 0)
}

func fromStruct(s *structpb.Struct, depth int) (jsonmap.Value, error) {
	if depth > jsonmap.DefaultMaxDepth {
		return jsonmap.Value{}, fmt.Errorf("structpb: max depth %d exceeded", jsonmap.DefaultMaxDepth)
	}
	members := make(map[string]jsonmap.Value, len(s.GetFields()))
	for k, f := range s.GetFields() {
		mv, err := fromValue(f, depth)
		if err != nil {
			return jsonmap.Value{}, err
		}
		members[k] = mv
	}
	return jsonmap.ObjectValue(members), nil
}

func fromValue(v *structpb.Value, depth int) (jsonmap.Value, error) {
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return jsonmap.Null(), nil
	case *structpb.Value_BoolValue:
		return jsonmap.BoolValue(k.BoolValue), nil
	case *structpb.Value_StringValue:
		return jsonmap.StringValue(k.StringValue), nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return jsonmap.Value{}, fmt.Errorf("structpb: non-finite number %v", k.NumberValue)
		}
		return jsonmap.FloatValue(k.NumberValue), nil
	case *structpb.Value_StructValue:
		return fromStruct(k.StructValue, depth+1)
	case *structpb.Value_ListValue:
		if depth+1 > jsonmap.DefaultMaxDepth {
			return jsonmap.Value{}, fmt.Errorf("structpb: max depth %d exceeded", jsonmap.DefaultMaxDepth)
		}
		items := make([]jsonmap.Value, 0, len(k.ListValue.GetValues()))
		for _, e := range k.ListValue.GetValues() {
			ev, err := fromValue(e, depth+1)
			if err != nil {
				return jsonmap.Value{}, err
			}
			items = append(items, ev)
		}
		return jsonmap.ArrayValue(items...), nil
	}
	return jsonmap.Value{}, fmt.Errorf("structpb: unsupported kind %T", v.GetKind())
}
