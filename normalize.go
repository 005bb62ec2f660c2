package s2tilejson

import (
	"errors"

	"github.com/goccy/go-json"

	"github.com/open-s2/s2tilejson/internal/engine"
)

// Format names the dialect a metadata document was read as.
type Format int

const (
	FormatUnknown Format = iota
	FormatCanonical
	FormatLegacy
)

func (f Format) String() string {
	switch f {
	case FormatCanonical:
		return "canonical"
	case FormatLegacy:
		return "legacy"
	}
	return "unknown"
}

// Normalize reads a metadata document of either dialect into canonical
// Metadata. The canonical reading is tried first and, because every canonical
// field has a default, wins for any object whose present fields are well
// formed. The legacy reading is tried only when the canonical one fails.
// When both fail the error carries a format_error issue whose cause joins
// both failures.
func Normalize(data []byte, opts ...NormalizeOpt) (Metadata, Format, error) {
	if _, err := StructureWarnings(data, opts...); err != nil {
		return Metadata{}, FormatUnknown, err
	}
	var m Metadata
	canonErr := m.UnmarshalJSON(data)
	if canonErr == nil {
		return m, FormatCanonical, nil
	}
	var l LegacyMetadata
	legacyErr := l.UnmarshalJSON(data)
	if legacyErr == nil {
		return l.ToMetadata(), FormatLegacy, nil
	}
	return Metadata{}, FormatUnknown, formatError(canonErr, legacyErr)
}

// NormalizeYAML reads a YAML metadata document. Duplicate mapping keys are
// always rejected.
func NormalizeYAML(data []byte, opts ...NormalizeOpt) (Metadata, Format, error) {
	b, err := yamlToJSON(data)
	if err != nil {
		return Metadata{}, FormatUnknown, err
	}
	return Normalize(b, opts...)
}

// Detect reports which reading Normalize would take.
func Detect(data []byte) (Format, error) {
	var m Metadata
	canonErr := m.UnmarshalJSON(data)
	if canonErr == nil {
		return FormatCanonical, nil
	}
	var l LegacyMetadata
	legacyErr := l.UnmarshalJSON(data)
	if legacyErr == nil {
		return FormatLegacy, nil
	}
	return FormatUnknown, formatError(canonErr, legacyErr)
}

func formatError(canonErr, legacyErr error) error {
	it := newIssue("/", CodeFormat, "document is neither canonical nor legacy metadata", map[string]any{
		"canonical": canonErr.Error(),
		"legacy":    legacyErr.Error(),
	})
	it.Cause = errors.Join(canonErr, legacyErr)
	return AppendIssues(nil, it)
}

func yamlToJSON(data []byte) ([]byte, error) {
	v, err := engine.DecodeYAML(data)
	if err != nil {
		var dup *engine.DuplicateKeyError
		if errors.As(err, &dup) {
			it := newIssue("/"+escapePointer(dup.Key), CodeDuplicateKey, err.Error(), map[string]any{
				"line": dup.Line, "col": dup.Col, "firstLine": dup.FirstLine, "firstCol": dup.FirstCol,
			})
			it.Cause = err
			return nil, AppendIssues(nil, it)
		}
		return nil, toIssues(err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, toIssues(err)
	}
	return b, nil
}
