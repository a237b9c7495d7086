// Package stdjson provides an engine.TokenSource backed by encoding/json.
package stdjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	eng "github.com/reoring/jsonmap/internal/engine"
)

// Name identifies the driver in logs and configuration.
const Name = "encoding/json"

type jsonSource struct {
	dec        *json.Decoder
	f          eng.Framer
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		var se *json.SyntaxError
		if errors.As(err, &se) {
			return eng.Token{}, &eng.SyntaxError{Offset: se.Offset, Err: err}
		}
		return eng.Token{}, &eng.SyntaxError{Offset: s.dec.InputOffset(), Err: err}
	}
	s.lastOffset = s.dec.InputOffset()
	at := s.lastOffset

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.f.Open(true)
			return eng.Token{Kind: eng.KindBeginObject, Offset: at}, nil
		case '}':
			s.f.Close()
			return eng.Token{Kind: eng.KindEndObject, Offset: at}, nil
		case '[':
			s.f.Open(false)
			return eng.Token{Kind: eng.KindBeginArray, Offset: at}, nil
		case ']':
			s.f.Close()
			return eng.Token{Kind: eng.KindEndArray, Offset: at}, nil
		}
	case string:
		if s.f.Key() {
			return eng.Token{Kind: eng.KindKey, String: v, Offset: at}, nil
		}
		s.f.Value()
		return eng.Token{Kind: eng.KindString, String: v, Offset: at}, nil
	case bool:
		s.f.Value()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: at}, nil
	case json.Number:
		s.f.Value()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: at}, nil
	case float64:
		s.f.Value()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: at}, nil
	}
	s.f.Value()
	return eng.Token{Kind: eng.KindNull, Offset: at}, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
