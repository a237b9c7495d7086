package jsonmap

// ArrayOf decodes a JSON array element by element. The first failing element
// fails the whole array; a partial slice is never returned. A null element is
// treated as absent and goes through the missing-value policy of fn.
func ArrayOf[T any](fn Func[T]) Func[[]T] {
	return func(m *Mapper) ([]T, error) {
		if m.IsAbsent() {
			return zeroOrMissing(m, []T{})
		}
		u, err := m.Unkeyed()
		if err != nil {
			return nil, err
		}
		return Elements(u, fn)
	}
}

// MapOf decodes every member of a JSON object with fn. Member names are kept
// as written; the key strategy only applies to keypath lookups.
func MapOf[T any](fn Func[T]) Func[map[string]T] {
	return func(m *Mapper) (map[string]T, error) {
		if m.IsAbsent() {
			return zeroOrMissing(m, map[string]T{})
		}
		k, err := m.Keyed()
		if err != nil {
			return nil, err
		}
		out := make(map[string]T, len(k.obj))
		for _, key := range k.Keys() {
			v, err := fn(newMapper(k.obj[key], m.path.Field(key), m.s))
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
}
