package engine

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions controls the pre-decode structural checks.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int // 0 disables the depth check
}

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Fatal   bool
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
}

// Enforce walks the token stream of data and reports duplicate keys and
// depth violations. Issues flagged Fatal must abort decoding.
func Enforce(data []byte, opt EnforceOptions) ([]SimpleIssue, error) {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var issues []SimpleIssue
	var stack []frame

	// childPath returns the pointer of the value about to be read.
	childPath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path + "/" + strconv.Itoa(top.nextIndex)
			top.nextIndex++
			return p
		}
		return top.path
	}
	valueDone := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.kind == kindObject && !top.expectingKey {
				top.expectingKey = true
				top.path = parentPath(top.path)
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return issues, err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := childPath()
				f := frame{kind: kindArray, path: p}
				if v == '{' {
					f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: p}
				}
				stack = append(stack, f)
				if opt.MaxDepth > 0 && len(stack) > opt.MaxDepth {
					issues = append(issues, SimpleIssue{Code: "too_deep", Path: normalizePath(p), Message: "max depth exceeded", Fatal: true})
					return issues, nil
				}
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 {
				top := &stack[n-1]
				if top.kind == kindObject && top.expectingKey {
					p := top.path + "/" + escape(v)
					if _, ok := top.keys[v]; ok && opt.OnDuplicate != DupIgnore {
						issues = append(issues, SimpleIssue{
							Code:    "duplicate_key",
							Path:    p,
							Message: "key '" + v + "' duplicated",
							Fatal:   opt.OnDuplicate == DupError,
						})
						if opt.OnDuplicate == DupError {
							return issues, nil
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					top.path = p
					continue
				}
			}
			childPath()
			valueDone()
		default:
			childPath()
			valueDone()
		}
	}
	return issues, nil
}

func escape(k string) string {
	return strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1")
}

func parentPath(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
