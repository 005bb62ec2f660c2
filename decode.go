package s2tilejson

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// objectDecoder decodes a JSON object field by field so that every failure is
// reported with its JSON Pointer and absent fields keep their defaults.
type objectDecoder struct {
	raw  map[string]json.RawMessage
	seen map[string]struct{}
	iss  Issues
}

func newObjectDecoder(b []byte, what string) (*objectDecoder, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		return nil, singleIssue("/", CodeInvalidType, "expected "+what+" object")
	}
	return &objectDecoder{raw: raw, seen: make(map[string]struct{}, len(raw))}, nil
}

// field decodes key into dst and reports whether it was present. A JSON null
// counts as absent.
func (d *objectDecoder) field(key string, dst any) bool {
	v, ok := d.raw[key]
	if !ok {
		return false
	}
	d.seen[key] = struct{}{}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return false
	}
	var err error
	if u, ok := dst.(json.Unmarshaler); ok {
		err = u.UnmarshalJSON(v)
	} else if err = json.Unmarshal(v, dst); err != nil {
		err = singleIssue("/", CodeInvalidType, err.Error())
	}
	if err != nil {
		if ii, ok := prefixIssues(err, "/"+escapePointer(key)).(Issues); ok {
			d.iss = AppendIssues(d.iss, ii...)
		}
		return false
	}
	return true
}

// has reports whether key is present and not null.
func (d *objectDecoder) has(key string) bool {
	v, ok := d.raw[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// rest returns the fields no call to field consumed.
func (d *objectDecoder) rest() map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for k, v := range d.raw {
		if _, ok := d.seen[k]; ok {
			continue
		}
		if out == nil {
			out = map[string]json.RawMessage{}
		}
		out[k] = v
	}
	return out
}

func (d *objectDecoder) err() error {
	if len(d.iss) == 0 {
		return nil
	}
	return d.iss
}

// fieldList decodes a JSON array at key element by element, so element errors
// such as unknown variants keep their code and index.
func fieldList[T any, P interface {
	*T
	json.Unmarshaler
}](d *objectDecoder, key string, dst *[]T) bool {
	var raw json.RawMessage
	if !d.field(key, &raw) {
		return false
	}
	out, err := decodeList[T, P](raw)
	if err != nil {
		if ii, ok := prefixIssues(err, "/"+escapePointer(key)).(Issues); ok {
			d.iss = AppendIssues(d.iss, ii...)
		}
		return false
	}
	*dst = out
	return true
}

func decodeList[T any, P interface {
	*T
	json.Unmarshaler
}](b []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, singleIssue("/", CodeInvalidType, "expected array")
	}
	out := make([]T, len(raw))
	var iss Issues
	for i, r := range raw {
		if err := P(&out[i]).UnmarshalJSON(r); err != nil {
			if ii, ok := prefixIssues(err, "/"+strconv.Itoa(i)).(Issues); ok {
				iss = AppendIssues(iss, ii...)
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
