package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// DecodeYAML decodes the first YAML document of data into a JSON-compatible
// value tree (map[string]any, []any, primitives). Duplicate keys are errors.
func DecodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	w := nodeWalker{active: map[*yaml.Node]bool{}}
	return w.value(&root)
}

var (
	// ErrAliasCycle is returned when an alias refers to a node that contains it.
	ErrAliasCycle = errors.New("yaml alias refers to an enclosing node")
	// ErrAliasExpansion is returned when aliases expand past maxAliasNodes.
	ErrAliasExpansion = errors.New("yaml alias expansion exceeds limit")
)

// maxAliasNodes bounds the nodes produced through alias expansion.
const maxAliasNodes = 1 << 20

type nodeWalker struct {
	active     map[*yaml.Node]bool
	aliasDepth int
	aliasNodes int
}

func (w *nodeWalker) value(n *yaml.Node) (any, error) {
	if w.aliasDepth > 0 {
		w.aliasNodes++
		if w.aliasNodes > maxAliasNodes {
			return nil, ErrAliasExpansion
		}
	}
	if w.active[n] {
		return nil, fmt.Errorf("%w at %d:%d", ErrAliasCycle, n.Line, n.Column)
	}
	w.active[n] = true
	defer delete(w.active, n)
	return w.node(n)
}

func (w *nodeWalker) node(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		w.aliasDepth++
		defer func() { w.aliasDepth-- }()
		return w.value(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.value(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			if b, err := strconv.ParseBool(n.Value); err == nil {
				return b, nil
			}
			return n.Value, nil
		case "!!int":
			// Use int64 to avoid overflow surprises; fall back to uint64 for
			// tile counters above MaxInt64.
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return i, nil
			}
			if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
				return u, nil
			}
			return n.Value, nil
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f, nil
			}
			return n.Value, nil
		default:
			return n.Value, nil
		}
	default:
		return nil, nil
	}
}
