// Package yaml reads YAML documents into jsonmap Values.
//
// Only the JSON-compatible subset is accepted: mappings with string keys,
// sequences and scalars. Integer and float scalars keep their exact value;
// timestamps stay strings so the active DateStrategy decides how to read them.
package yaml

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonmap"
)

// Parse converts the first YAML document in data. An empty input is null.
func Parse(data []byte) (jsonmap.Value, error) {
	return parse(data, jsonmap.DefaultMaxDepth)
}

// Decode parses data and runs fn on the root value with a's strategies.
func Decode[T any](a *jsonmap.Adapter, data []byte, fn jsonmap.Func[T]) (T, error) {
	depth := jsonmap.DefaultMaxDepth
	if a != nil {
		if d := a.Strategies().Limits.MaxDepth; d > 0 {
			depth = d
		}
	}
	v, err := parse(data, depth)
	if err != nil {
		var zero T
		return zero, err
	}
	return jsonmap.DecodeValue(a, v, fn)
}

// nodesPerByte bounds alias expansion: the converted tree may hold at most
// this many nodes per input byte, plus minNodeBudget.
const (
	nodesPerByte  = 16
	minNodeBudget = 4096
)

func parse(data []byte, maxDepth int) (jsonmap.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return jsonmap.Value{}, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind == 0 {
		return jsonmap.Null(), nil
	}
	w := &walker{maxDepth: maxDepth, budget: minNodeBudget + nodesPerByte*len(data)}
	return w.convert(&doc, 0)
}

type walker struct {
	maxDepth int
	budget   int
}

func (w *walker) convert(n *yaml.Node, depth int) (jsonmap.Value, error) {
	w.budget--
	if w.budget < 0 {
		return jsonmap.Value{}, fmt.Errorf("yaml: line %d: document expands to too many nodes (alias expansion)", n.Line)
	}
	maxDepth := w.maxDepth
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonmap.Null(), nil
		}
		return w.convert(n.Content[0], depth)
	case yaml.AliasNode:
		return w.convert(n.Alias, depth)
	case yaml.SequenceNode:
		if depth+1 > maxDepth {
			return jsonmap.Value{}, fmt.Errorf("yaml: max depth %d exceeded at line %d", maxDepth, n.Line)
		}
		items := make([]jsonmap.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.convert(c, depth+1)
			if err != nil {
				return jsonmap.Value{}, err
			}
			items = append(items, v)
		}
		return jsonmap.ArrayValue(items...), nil
	case yaml.MappingNode:
		if depth+1 > maxDepth {
			return jsonmap.Value{}, fmt.Errorf("yaml: max depth %d exceeded at line %d", maxDepth, n.Line)
		}
		members := make(map[string]jsonmap.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return jsonmap.Value{}, fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			if k.ShortTag() == "!!merge" {
				return jsonmap.Value{}, fmt.Errorf("yaml: line %d: merge keys are not supported", k.Line)
			}
			cv, err := w.convert(v, depth+1)
			if err != nil {
				return jsonmap.Value{}, err
			}
			members[k.Value] = cv
		}
		return jsonmap.ObjectValue(members), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return jsonmap.Value{}, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func scalar(n *yaml.Node) (jsonmap.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonmap.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonmap.Value{}, fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		return jsonmap.BoolValue(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jsonmap.IntValue(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return jsonmap.Value{}, fmt.Errorf("yaml: line %d: integer %q out of range", n.Line, n.Value)
		}
		return jsonmap.UintValue(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonmap.Value{}, fmt.Errorf("yaml: line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return jsonmap.Value{}, fmt.Errorf("yaml: line %d: non-finite number %s", n.Line, n.Value)
		}
		return jsonmap.FloatValue(f), nil
	case "!!binary":
		return jsonmap.StringValue(strings.Join(strings.Fields(n.Value), "")), nil
	default:
		// !!str, !!timestamp and custom tags keep their text.
		return jsonmap.StringValue(n.Value), nil
	}
}
