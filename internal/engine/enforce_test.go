package engine_test

import (
	"errors"
	"io"
	"testing"

	eng "github.com/reoring/jsonmap/internal/engine"
)

// sliceSource replays a fixed token list.
type sliceSource struct {
	toks []eng.Token
	i    int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.i >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.i]
	s.i++
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.i * 4) }

func drain(src eng.TokenSource) error {
	for {
		if _, err := src.NextToken(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func obj(members ...eng.Token) []eng.Token {
	out := []eng.Token{{Kind: eng.KindBeginObject}}
	out = append(out, members...)
	return append(out, eng.Token{Kind: eng.KindEndObject})
}

func key(s string) eng.Token { return eng.Token{Kind: eng.KindKey, String: s} }
func num(s string) eng.Token { return eng.Token{Kind: eng.KindNumber, Number: s} }

func TestEnforce_DuplicateKey(t *testing.T) {
	toks := obj(key("x"), num("1"), key("y"), eng.Token{Kind: eng.KindBeginArray}, num("2"), eng.Token{Kind: eng.KindEndArray}, key("x"), num("3"))

	var seen []eng.Issue
	err := drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(is eng.Issue) { seen = append(seen, is) },
	}))
	if err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(seen) != 1 || seen[0].Code != eng.CodeDuplicateKey || seen[0].Path != "/x" {
		t.Fatalf("unexpected issues: %+v", seen)
	}

	err = drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{OnDuplicate: eng.DupError}))
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key error, got %v", err)
	}

	if err := drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{})); err != nil {
		t.Fatalf("ignore must not fail: %v", err)
	}
}

func TestEnforce_SameKeyInSiblingObjectsIsFine(t *testing.T) {
	toks := []eng.Token{{Kind: eng.KindBeginArray}}
	toks = append(toks, obj(key("a"), num("1"))...)
	toks = append(toks, obj(key("a"), num("2"))...)
	toks = append(toks, eng.Token{Kind: eng.KindEndArray})
	if err := drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{OnDuplicate: eng.DupError})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnforce_MaxDepthPath(t *testing.T) {
	toks := []eng.Token{
		{Kind: eng.KindBeginObject}, key("a"),
		{Kind: eng.KindBeginArray}, num("0"),
		{Kind: eng.KindBeginObject}, {Kind: eng.KindEndObject},
		{Kind: eng.KindEndArray}, {Kind: eng.KindEndObject},
	}
	err := drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{MaxDepth: 2}))
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeMaxDepth || ie.Path != "/a/1" {
		t.Fatalf("expected max_depth at /a/1, got %v (%+v)", err, ie)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	toks := obj(key("a"), num("1"), key("b"), num("2"))
	err := drain(eng.WrapWithEnforcement(&sliceSource{toks: toks}, eng.EnforceOptions{MaxBytes: 10}))
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestFramer(t *testing.T) {
	var f eng.Framer
	f.Open(true)
	if !f.Key() {
		t.Fatalf("first string in an object is a key")
	}
	if f.Key() {
		t.Fatalf("second string is a value")
	}
	f.Value()
	f.Open(false)
	if f.Key() {
		t.Fatalf("strings in arrays are values")
	}
	f.Close()
	f.Close()
	if f.Key() {
		t.Fatalf("no container left")
	}
}
