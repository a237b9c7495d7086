package jsonmap

import "strings"

// KeyPath locates a value inside nested JSON objects. Each element may hold
// several dot-separated segments: KeyPath{"entities.urls"} and
// KeyPath{"entities", "urls"} address the same value.
type KeyPath []string

// ParseKeyPath builds a KeyPath from a dotted string such as "user.screen_name".
// The empty string addresses the current node.
func ParseKeyPath(dotted string) KeyPath {
	if dotted == "" {
		return nil
	}
	return KeyPath(strings.Split(dotted, "."))
}

// Segments returns the flattened list of lookup segments.
func (kp KeyPath) Segments() []string {
	out := make([]string, 0, len(kp))
	for _, k := range kp {
		out = append(out, strings.Split(k, ".")...)
	}
	return out
}

// String renders kp in dotted form.
func (kp KeyPath) String() string { return strings.Join(kp, ".") }

// resolve walks node along kp. Every segment is converted with ks before the
// lookup, and the converted segment is appended to the returned diagnostic
// path whether or not it was found.
//
// An absent key, a null value or a non-object before the last segment all
// yield the null Value: absence is a result, not an error.
func resolve(node Value, kp KeyPath, ks KeyStrategy, at Path) (Value, Path) {
	segs := kp.Segments()
	cur := node
	found := true
	for _, seg := range segs {
		key := ks.Convert(seg)
		at = at.Field(key)
		if !found {
			continue
		}
		next, ok := cur.Get(key)
		if !ok || next.IsNull() {
			found = false
			cur = Value{}
			continue
		}
		cur = next
	}
	if !found {
		return Value{}, at
	}
	return cur, at
}
