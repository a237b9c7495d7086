package jsonmap

import "strings"

// KeyStrategy transforms the key a decoder asks for into the key looked up in
// the JSON object.
type KeyStrategy int

const (
	// KeysDefault looks keys up exactly as written.
	KeysDefault KeyStrategy = iota
	// KeysSnakeCase converts camelCase keys to snake_case before lookup:
	// "oneTwoThree" becomes "one_two_three" and "_oneTwoThree_" becomes
	// "_one_two_three_".
	KeysSnakeCase
)

func (ks KeyStrategy) String() string {
	switch ks {
	case KeysSnakeCase:
		return "snake_case"
	default:
		return "default"
	}
}

// Convert applies the strategy to a single key segment.
func (ks KeyStrategy) Convert(key string) string {
	if ks != KeysSnakeCase || key == "" {
		return key
	}
	return toSnakeCase(key)
}

// toSnakeCase inserts '_' at every lowercase-or-digit to uppercase boundary
// and lowercases the result. Runs of capitals are not split, so "HTTPServer"
// becomes "httpserver".
func toSnakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	var prev byte
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isUpper(c) && (isLower(prev) || isDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteByte(c)
		prev = c
	}
	return strings.ToLower(b.String())
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
