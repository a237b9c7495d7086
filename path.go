package jsonmap

import (
	"strconv"
	"strings"
)

// Path is the location of a node inside the document being decoded. It only
// grows as decoding descends and is used for diagnostics, never for lookup.
//
// Paths are values; Field and Index return extended copies and never modify
// the receiver.
type Path struct {
	parts []pathPart
}

type pathPart struct {
	key   string
	index int // -1 for object keys
}

// Field returns p extended with an object key.
func (p Path) Field(name string) Path {
	return Path{parts: appendPart(p.parts, pathPart{key: name, index: -1})}
}

// Index returns p extended with an array index.
func (p Path) Index(i int) Path {
	return Path{parts: appendPart(p.parts, pathPart{index: i})}
}

func appendPart(parts []pathPart, p pathPart) []pathPart {
	out := make([]pathPart, len(parts), len(parts)+1)
	copy(out, parts)
	return append(out, p)
}

// Len returns the number of elements in p.
func (p Path) Len() int { return len(p.parts) }

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p.parts) == 0 }

// String renders p in dotted form, e.g. user.urls[2].expanded_url. The root
// renders as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for i, part := range p.parts {
		if part.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(part.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part.key)
	}
	return b.String()
}

// Pointer renders p as an RFC 6901 JSON Pointer. The root renders as "/".
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, part := range p.parts {
		b.WriteByte('/')
		if part.index >= 0 {
			b.WriteString(strconv.Itoa(part.index))
			continue
		}
		b.WriteString(pointerEscaper.Replace(part.key))
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// display is String with a readable root, for messages.
func (p Path) display() string {
	if len(p.parts) == 0 {
		return "<root>"
	}
	return p.String()
}
