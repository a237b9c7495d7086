package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling,
// max depth checks, and max bytes truncation in a streaming fashion.

// DuplicatePolicy controls duplicate key handling.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota
	DupWarn
	DupError
)

// Issue codes reported by the enforcing source.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
	CodeTruncated    = "truncated"
)

// Issue is a finding of the enforcing source.
type Issue struct {
	Code    string
	Path    string // JSON Pointer; "/" for the root
	Message string
	Offset  int64
}

// IssueError is a fatal Issue.
type IssueError struct{ Issue }

func (e IssueError) Error() string { return e.Issue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int   // 0 disables
	MaxBytes    int64 // 0 disables; needs a source that reports offsets
	// IssueSink receives every issue, fatal or not. May be nil.
	IssueSink func(Issue)
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforceFrame struct {
	object     bool
	keys       map[string]struct{}
	awaitKey   bool
	path       string
	nextIndex  int
	pendingKey string
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []enforceFrame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.pathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		obj := tok.Kind == KindBeginObject
		f := enforceFrame{object: obj, awaitKey: obj, path: path}
		if obj {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail(Issue{Code: CodeMaxDepth, Path: path, Message: "max depth exceeded"}, tok)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.object && top.awaitKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, ok := top.keys[tok.String]; ok {
						is := Issue{Code: CodeDuplicateKey, Path: path, Message: "key '" + tok.String + "' duplicated"}
						if e.opt.OnDuplicate == DupError {
							return Token{}, e.fail(is, tok)
						}
						e.report(is, tok)
					}
				}
				top.keys[tok.String] = struct{}{}
				top.awaitKey = false
			}
		}
	default:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fail(Issue{Code: CodeTruncated, Path: path, Message: "max bytes exceeded"}, tok)
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) report(is Issue, tok Token) Issue {
	is.Offset = tok.Offset
	if is.Path == "" {
		is.Path = "/"
	}
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(is)
	}
	return is
}

func (e *enforcingTokenSource) fail(is Issue, tok Token) error {
	return IssueError{e.report(is, tok)}
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.object && !top.awaitKey {
			top.awaitKey = true
			top.pendingKey = ""
		}
	}
}

// pathForToken returns the JSON Pointer of the value a token belongs to.
func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		top.pendingKey = tok.String
		return joinJSONPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if !top.object {
		p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	if !top.awaitKey {
		return joinJSONPointer(top.path, top.pendingKey)
	}
	return top.path
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
