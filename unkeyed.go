package jsonmap

// Unkeyed is the array view of a Mapper.
type Unkeyed struct {
	m     *Mapper
	items []Value
}

// Mapper returns the context the view was built from.
func (u *Unkeyed) Mapper() *Mapper { return u.m }

// Len returns the number of elements.
func (u *Unkeyed) Len() int { return len(u.items) }

// At returns the context of element i; out-of-range indexes are absent.
func (u *Unkeyed) At(i int) *Mapper {
	at := u.m.path.Index(i)
	if i < 0 || i >= len(u.items) {
		return newMapper(Value{}, at, u.m.s)
	}
	return newMapper(u.items[i], at, u.m.s)
}

// Each calls fn for every element in order and stops at the first error.
func (u *Unkeyed) Each(fn func(i int, m *Mapper) error) error {
	for i := range u.items {
		if err := fn(i, u.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// Elements decodes every element with fn. It fails with the first element
// error and never returns a partial slice.
func Elements[T any](u *Unkeyed, fn Func[T]) ([]T, error) {
	out := make([]T, 0, len(u.items))
	for i := range u.items {
		v, err := fn(u.At(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
