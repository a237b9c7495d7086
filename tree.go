package jsonmap

import (
	"errors"
	"fmt"
	"io"

	"github.com/reoring/jsonmap/internal/engine"
)

// buildTree reads exactly one JSON value from src. Anything but end of input
// after the root value is an error.
func buildTree(src engine.TokenSource) (Value, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return Value{}, &ParseError{Code: CodeParseError, Path: "/", Offset: -1, Cause: io.ErrUnexpectedEOF}
		}
		return Value{}, parseError(err)
	}
	root, err := buildValue(src, tok)
	if err != nil {
		return Value{}, parseError(err)
	}
	if extra, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return Value{}, parseError(err)
		}
		return Value{}, &ParseError{Code: CodeParseError, Path: "/", Offset: extra.Offset,
			Cause: fmt.Errorf("trailing %s after top-level value", extra.Kind)}
	}
	return root, nil
}

func buildValue(src engine.TokenSource, tok engine.Token) (Value, error) {
	switch tok.Kind {
	case engine.KindBeginObject:
		return buildObject(src)
	case engine.KindBeginArray:
		return buildArray(src)
	case engine.KindString:
		return StringValue(tok.String), nil
	case engine.KindNumber:
		return Value{kind: KindNumber, s: tok.Number}, nil
	case engine.KindBool:
		return BoolValue(tok.Bool), nil
	case engine.KindNull:
		return Value{}, nil
	default:
		return Value{}, fmt.Errorf("%w %s", engine.ErrUnexpectedToken, tok.Kind)
	}
}

func buildObject(src engine.TokenSource) (Value, error) {
	m := make(map[string]Value)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, eofIsUnexpected(err)
		}
		if tok.Kind == engine.KindEndObject {
			return ObjectValue(m), nil
		}
		if tok.Kind != engine.KindKey {
			return Value{}, fmt.Errorf("%w %s, expected key", engine.ErrUnexpectedToken, tok.Kind)
		}
		vt, err := src.NextToken()
		if err != nil {
			return Value{}, eofIsUnexpected(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		m[tok.String] = v
	}
}

func buildArray(src engine.TokenSource) (Value, error) {
	arr := []Value{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, eofIsUnexpected(err)
		}
		if tok.Kind == engine.KindEndArray {
			return ArrayValue(arr...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
	}
}

func eofIsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// parseError maps driver and enforcement failures onto *ParseError.
func parseError(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	var ie engine.IssueError
	if errors.As(err, &ie) {
		code := CodeParseError
		switch ie.Code {
		case engine.CodeDuplicateKey:
			code = CodeDuplicateKey
		case engine.CodeMaxDepth:
			code = CodeMaxDepth
		case engine.CodeTruncated:
			code = CodeTruncated
		}
		return &ParseError{Code: code, Path: ie.Path, Offset: ie.Offset, Cause: err}
	}
	var se *engine.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Code: CodeParseError, Path: "/", Offset: se.Offset, Cause: se.Err}
	}
	return &ParseError{Code: CodeParseError, Path: "/", Offset: -1, Cause: err}
}
