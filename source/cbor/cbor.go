// Package cbor reads CBOR documents into jsonmap Values.
package cbor

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/reoring/jsonmap"
)

// decMode decodes into map[string]any so the result matches what JSON
// decoders produce. Byte strings become base64 text and time tags become
// RFC 3339 text, which the default Data and Date strategies read back.
var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: jsonmap.DefaultMaxDepth,
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// Parse converts one CBOR data item.
func Parse(data []byte) (jsonmap.Value, error) {
	return parse(data, 0)
}

// Decode parses data and runs fn on the root value with a's strategies.
func Decode[T any](a *jsonmap.Adapter, data []byte, fn jsonmap.Func[T]) (T, error) {
	depth := 0
	if a != nil {
		depth = a.Strategies().Limits.MaxDepth
	}
	v, err := parse(data, depth)
	if err != nil {
		var zero T
		return zero, err
	}
	return jsonmap.DecodeValue(a, v, fn)
}

func parse(data []byte, maxDepth int) (jsonmap.Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return jsonmap.Value{}, fmt.Errorf("cbor: %w", err)
	}
	v, err := jsonmap.FromAny(x, maxDepth)
	if err != nil {
		return jsonmap.Value{}, fmt.Errorf("cbor: %w", err)
	}
	return v, nil
}
