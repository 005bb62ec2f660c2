package s2tilejson

import (
	"github.com/open-s2/s2tilejson/internal/engine"
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// NormalizeOpt bundles the structural checks run before a metadata document
// is decoded. The zero value runs no checks.
type NormalizeOpt struct {
	Strictness Strictness
	MaxDepth   int // 0 disables the depth limit
}

// StrictNormalizeOpt rejects duplicate keys and documents nested deeper than
// 64 levels.
func StrictNormalizeOpt() NormalizeOpt {
	return NormalizeOpt{Strictness: Strictness{OnDuplicateKey: Error}, MaxDepth: 64}
}

func mergeOpts(opts []NormalizeOpt) NormalizeOpt {
	var o NormalizeOpt
	for _, x := range opts {
		if x.Strictness.OnDuplicateKey != Ignore {
			o.Strictness.OnDuplicateKey = x.Strictness.OnDuplicateKey
		}
		if x.MaxDepth != 0 {
			o.MaxDepth = x.MaxDepth
		}
	}
	return o
}

// StructureWarnings runs the duplicate key and depth checks over a JSON
// document. Violations configured as Error are returned as the error; those
// configured as Warn are returned as warnings. Malformed JSON is left for the
// decoder to report.
func StructureWarnings(data []byte, opts ...NormalizeOpt) (Issues, error) {
	o := mergeOpts(opts)
	dup := engine.DupIgnore
	switch o.Strictness.OnDuplicateKey {
	case Warn:
		dup = engine.DupWarn
	case Error:
		dup = engine.DupError
	}
	found, _ := engine.Enforce(data, engine.EnforceOptions{OnDuplicate: dup, MaxDepth: o.MaxDepth})
	var warnings, fatal Issues
	for _, si := range found {
		it := newIssue(si.Path, si.Code, si.Message, nil)
		if si.Fatal {
			fatal = AppendIssues(fatal, it)
			continue
		}
		warnings = AppendIssues(warnings, it)
	}
	if len(fatal) > 0 {
		return warnings, fatal
	}
	return warnings, nil
}
