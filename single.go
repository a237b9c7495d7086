package jsonmap

// Single is the scalar view of a present Mapper.
type Single struct {
	m *Mapper
}

// Mapper returns the context the view was built from.
func (s *Single) Mapper() *Mapper { return s.m }

// Value returns the wrapped node.
func (s *Single) Value() Value { return s.m.node }

// Kind returns the JSON kind of the wrapped node.
func (s *Single) Kind() Kind { return s.m.node.Kind() }

func (s *Single) String() (string, error)   { return String(s.m) }
func (s *Single) Bool() (bool, error)       { return Bool(s.m) }
func (s *Single) Int64() (int64, error)     { return Int64(s.m) }
func (s *Single) Float64() (float64, error) { return Float64(s.m) }
