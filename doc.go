package jsonmap

// Package jsonmap maps untyped JSON onto typed Go values through per-type
// decoding functions, with pluggable strategies for dates, binary payloads,
// key casing, missing values and non-finite floats.
//
// - Input is parsed once into an immutable Value tree (goccy/go-json by default)
// - A Func[T] builds a T from a *Mapper: the node, its Path and the strategies
// - Domain types implement Mappable and are lifted with Model
// - Failures are *DecodeError (InvalidType, KeyPathMissing, DataCorrupted) or
//   *ParseError, always carrying the full location
//
// Design policy:
// - Keep only public APIs in the root package; tokenizer drivers and limit
//   enforcement live under internal/.
// - Converters for other document formats live under source/, logger adapters
//   under log/, and the CLI under cmd/jsonmap.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  type User struct {
//      ID   int64
//      Name string
//  }
//
//  func (u *User) MapJSON(m *jsonmap.Mapper) error {
//      k, err := m.Keyed()
//      if err != nil {
//          return err
//      }
//      if u.ID, err = k.Int64(jsonmap.KeyPath{"id"}); err != nil {
//          return err
//      }
//      u.Name, err = k.String(jsonmap.ParseKeyPath("profile.name"))
//      return err
//  }
//
//  a := jsonmap.New(jsonmap.WithKeyStrategy(jsonmap.KeysSnakeCase))
//  u, err := jsonmap.Decode(a, data, jsonmap.Model[User]())
//
