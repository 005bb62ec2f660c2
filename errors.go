package s2tilejson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/open-s2/s2tilejson/i18n"
)

// Issue codes
const (
	CodeSchema         = "schema_error"
	CodeInvalidLength  = "invalid_length"
	CodeUnknownVariant = "unknown_variant"
	CodeFormat         = "format_error"
	CodeInvalidType    = "invalid_type"
	CodeParseError     = "parse_error"
	CodeDuplicateKey   = "duplicate_key"
	CodeTooDeep        = "too_deep"
)

// Issue represents a single decoding or construction failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /info/value).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: offending value kind, raw variant, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"index":2, "got":3}).
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_variant at /layers/water/draw_types/0: 9
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, ": %s", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes issue causes to errors.Is / errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func newIssue(path, code, hint string, params map[string]any) Issue {
	if path == "" {
		path = "/"
	}
	return Issue{Path: path, Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}

func singleIssue(path, code, hint string) Issues {
	return AppendIssues(nil, newIssue(path, code, hint, nil))
}

func unknownVariant(kind string, raw any) Issues {
	return AppendIssues(nil, newIssue("/", CodeUnknownVariant, fmt.Sprintf("unknown %s variant: %v", kind, raw), map[string]any{"kind": kind, "got": raw}))
}

func invalidLength(index, got int) Issues {
	hint := fmt.Sprintf("expected a sequence of four numbers, missing index %d", index)
	if got > 4 {
		hint = fmt.Sprintf("expected a sequence of four numbers, got %d", got)
	}
	return AppendIssues(nil, newIssue("/", CodeInvalidLength, hint, map[string]any{"index": index, "got": got}))
}

// toIssues lifts an arbitrary decoding error into Issues, keeping the cause.
func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	it := newIssue("/", CodeParseError, err.Error(), nil)
	it.Cause = err
	return AppendIssues(nil, it)
}
