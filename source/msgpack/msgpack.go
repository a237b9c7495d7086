// Package msgpack reads MessagePack documents into jsonmap Values.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/jsonmap"
)

// Parse converts one MessagePack value.
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
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	x, err := dec.DecodeInterface()
	if err != nil {
		return jsonmap.Value{}, fmt.Errorf("msgpack: %w", err)
	}
	v, err := jsonmap.FromAny(x, maxDepth)
	if err != nil {
		return jsonmap.Value{}, fmt.Errorf("msgpack: %w", err)
	}
	return v, nil
}
