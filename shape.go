package s2tilejson

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"

	"github.com/open-s2/s2tilejson/internal/engine"
)

// Shapes describe how feature properties are laid out so they can be
// deconstructed and rebuilt without per-feature reflection.
//
// Shape limitations:
//   - all keys are strings.
//   - values are primitive type names, arrays of primitives (or of flat
//     objects whose values are primitives), or nested shapes.
//   - arrays declare their element type; element homogeneity is not checked.

// PrimitiveShape is a primitive type name found in a shape.
type PrimitiveShape uint8

const (
	PrimitiveString PrimitiveShape = iota
	PrimitiveU64
	PrimitiveI64
	PrimitiveF32
	PrimitiveF64
	PrimitiveBool
	PrimitiveNull
)

var primitiveNames = map[PrimitiveShape]string{
	PrimitiveString: "string",
	PrimitiveU64:    "u64",
	PrimitiveI64:    "i64",
	PrimitiveF32:    "f32",
	PrimitiveF64:    "f64",
	PrimitiveBool:   "bool",
	PrimitiveNull:   "null",
}

// ParsePrimitiveShape resolves a primitive type name.
func ParsePrimitiveShape(s string) (PrimitiveShape, bool) {
	for k, n := range primitiveNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

func (p PrimitiveShape) String() string { return primitiveNames[p] }

func (p PrimitiveShape) MarshalJSON() ([]byte, error) {
	n, ok := primitiveNames[p]
	if !ok {
		return nil, unknownVariant("PrimitiveShape", uint8(p))
	}
	return json.Marshal(n)
}

func (p *PrimitiveShape) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return singleIssue("/", CodeSchema, "expected primitive type name")
	}
	v, ok := ParsePrimitiveShape(s)
	if !ok {
		return unknownVariant("PrimitiveShape", s)
	}
	*p = v
	return nil
}

// ShapePrimitiveType is an array element type: a primitive, or a one-level
// object whose values are all primitives.
type ShapePrimitiveType struct {
	Primitive PrimitiveShape
	// Nested is non-nil for the object form.
	Nested map[string]PrimitiveShape
}

// ElementOf returns a primitive array element type.
func ElementOf(p PrimitiveShape) ShapePrimitiveType { return ShapePrimitiveType{Primitive: p} }

// ElementObject returns a flat-object array element type.
func ElementObject(fields map[string]PrimitiveShape) ShapePrimitiveType {
	if fields == nil {
		fields = map[string]PrimitiveShape{}
	}
	return ShapePrimitiveType{Nested: fields}
}

// IsNested reports whether the element is the flat-object form.
func (e ShapePrimitiveType) IsNested() bool { return e.Nested != nil }

func (e ShapePrimitiveType) Equal(o ShapePrimitiveType) bool {
	if e.IsNested() != o.IsNested() {
		return false
	}
	if !e.IsNested() {
		return e.Primitive == o.Primitive
	}
	if len(e.Nested) != len(o.Nested) {
		return false
	}
	for k, v := range e.Nested {
		ov, ok := o.Nested[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

func (e ShapePrimitiveType) MarshalJSON() ([]byte, error) {
	if !e.IsNested() {
		return e.Primitive.MarshalJSON()
	}
	return marshalSorted(sortedKeys(e.Nested), func(k string) ([]byte, error) {
		return e.Nested[k].MarshalJSON()
	})
}

// ShapeKind discriminates the ShapeType variants.
type ShapeKind uint8

const (
	ShapeKindPrimitive ShapeKind = iota
	ShapeKindArray
	ShapeKindNested
)

// ShapeType is one value of a shape: a primitive, an array of element types,
// or a nested shape.
type ShapeType struct {
	Kind      ShapeKind
	Primitive PrimitiveShape
	Array     []ShapePrimitiveType
	Nested    Shape
}

// PrimitiveOf returns a primitive shape value.
func PrimitiveOf(p PrimitiveShape) ShapeType {
	return ShapeType{Kind: ShapeKindPrimitive, Primitive: p}
}

// ArrayOf returns an array shape value.
func ArrayOf(elems ...ShapePrimitiveType) ShapeType {
	if elems == nil {
		elems = []ShapePrimitiveType{}
	}
	return ShapeType{Kind: ShapeKindArray, Array: elems}
}

// NestedOf returns a nested shape value.
func NestedOf(s Shape) ShapeType {
	if s == nil {
		s = Shape{}
	}
	return ShapeType{Kind: ShapeKindNested, Nested: s}
}

func (t ShapeType) Equal(o ShapeType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case ShapeKindPrimitive:
		return t.Primitive == o.Primitive
	case ShapeKindArray:
		if len(t.Array) != len(o.Array) {
			return false
		}
		for i := range t.Array {
			if !t.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	default:
		return t.Nested.Equal(o.Nested)
	}
}

func (t ShapeType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case ShapeKindPrimitive:
		return t.Primitive.MarshalJSON()
	case ShapeKindArray:
		buf := bytes.NewBufferString("[")
		for i, e := range t.Array {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return t.Nested.MarshalJSON()
	}
}

func (t *ShapeType) UnmarshalJSON(b []byte) error {
	v, err := engine.DecodeAny(b)
	if err != nil {
		return toIssues(err)
	}
	st, iss := parseShapeType(rootPath(), v)
	if len(iss) > 0 {
		return iss
	}
	*t = st
	return nil
}

// Shape maps field names to their types. Keys are always emitted and compared
// by name, so insertion order never matters.
type Shape map[string]ShapeType

// ParseShape builds a Shape from a JSON-like value tree (map[string]any,
// []any, strings). Values that fit none of the three forms fail with a
// schema_error issue naming the key and the offending value kind.
func ParseShape(v any) (Shape, error) {
	s, iss := parseShape(rootPath(), v)
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// ParseShapeJSON decodes a JSON shape document.
func ParseShapeJSON(data []byte) (Shape, error) {
	v, err := engine.DecodeAny(data)
	if err != nil {
		return nil, toIssues(err)
	}
	return ParseShape(v)
}

// ParseShapeYAML decodes a YAML shape document.
func ParseShapeYAML(data []byte) (Shape, error) {
	v, err := engine.DecodeYAML(data)
	if err != nil {
		return nil, toIssues(err)
	}
	return ParseShape(v)
}

func parseShape(p pathRef, v any) (Shape, Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{p.Issue(CodeSchema, "expected object, got "+engine.KindOf(v), "kind", engine.KindOf(v))}
	}
	out := make(Shape, len(m))
	var iss Issues
	for _, k := range sortedKeys(m) {
		st, sub := parseShapeType(p.Field(k), m[k])
		if len(sub) > 0 {
			iss = AppendIssues(iss, sub...)
			continue
		}
		out[k] = st
	}
	return out, iss
}

func parseShapeType(p pathRef, v any) (ShapeType, Issues) {
	switch t := v.(type) {
	case string:
		prim, ok := ParsePrimitiveShape(t)
		if !ok {
			return ShapeType{}, Issues{p.Issue(CodeSchema, "unknown primitive type "+t, "kind", "string", "got", t)}
		}
		return PrimitiveOf(prim), nil
	case []any:
		elems := make([]ShapePrimitiveType, 0, len(t))
		var iss Issues
		for i, ev := range t {
			e, sub := parseElement(p.Index(i), ev)
			if len(sub) > 0 {
				iss = AppendIssues(iss, sub...)
				continue
			}
			elems = append(elems, e)
		}
		if len(iss) > 0 {
			return ShapeType{}, iss
		}
		return ArrayOf(elems...), nil
	case map[string]any:
		s, iss := parseShape(p, t)
		if len(iss) > 0 {
			return ShapeType{}, iss
		}
		return NestedOf(s), nil
	default:
		kind := engine.KindOf(v)
		return ShapeType{}, Issues{p.Issue(CodeSchema, "unsupported value kind "+kind, "kind", kind)}
	}
}

func parseElement(p pathRef, v any) (ShapePrimitiveType, Issues) {
	switch t := v.(type) {
	case string:
		prim, ok := ParsePrimitiveShape(t)
		if !ok {
			return ShapePrimitiveType{}, Issues{p.Issue(CodeSchema, "unknown primitive type "+t, "kind", "string", "got", t)}
		}
		return ElementOf(prim), nil
	case map[string]any:
		fields := make(map[string]PrimitiveShape, len(t))
		var iss Issues
		for _, k := range sortedKeys(t) {
			s, ok := t[k].(string)
			if !ok {
				kind := engine.KindOf(t[k])
				iss = AppendIssues(iss, p.Field(k).Issue(CodeSchema, "array objects may only hold primitives, got "+kind, "kind", kind))
				continue
			}
			prim, ok := ParsePrimitiveShape(s)
			if !ok {
				iss = AppendIssues(iss, p.Field(k).Issue(CodeSchema, "unknown primitive type "+s, "kind", "string", "got", s))
				continue
			}
			fields[k] = prim
		}
		if len(iss) > 0 {
			return ShapePrimitiveType{}, iss
		}
		return ElementObject(fields), nil
	default:
		kind := engine.KindOf(v)
		return ShapePrimitiveType{}, Issues{p.Issue(CodeSchema, "unsupported array element kind "+kind, "kind", kind)}
	}
}

// Equal is deep structural equality: same key set and recursively equal values.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for k, v := range s {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Keys returns the field names in sorted order.
func (s Shape) Keys() []string { return sortedKeys(s) }

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for k, v := range s {
		out[k] = v.clone()
	}
	return out
}

func (t ShapeType) clone() ShapeType {
	switch t.Kind {
	case ShapeKindArray:
		elems := make([]ShapePrimitiveType, len(t.Array))
		for i, e := range t.Array {
			if e.IsNested() {
				m := make(map[string]PrimitiveShape, len(e.Nested))
				for k, v := range e.Nested {
					m[k] = v
				}
				e.Nested = m
			}
			elems[i] = e
		}
		t.Array = elems
	case ShapeKindNested:
		t.Nested = t.Nested.Clone()
	}
	return t
}

func (s Shape) MarshalJSON() ([]byte, error) {
	return marshalSorted(sortedKeys(s), func(k string) ([]byte, error) {
		return s[k].MarshalJSON()
	})
}

func (s *Shape) UnmarshalJSON(b []byte) error {
	v, err := ParseShapeJSON(b)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// marshalSorted writes a JSON object whose keys appear in the given order.
func marshalSorted(keys []string, val func(k string) ([]byte, error)) ([]byte, error) {
	return marshalIndexed(keys, func(i int) ([]byte, error) { return val(keys[i]) })
}

// marshalIndexed writes an object with keys in the given order; val receives
// the key's index.
func marshalIndexed(keys []string, val func(i int) ([]byte, error)) ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := val(i)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
