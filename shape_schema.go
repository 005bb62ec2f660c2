package s2tilejson

import (
	"github.com/open-s2/s2tilejson/jsonschema"
)

// ShapeDocumentSchema returns the JSON Schema every shape document satisfies:
// an object whose values are primitive names, arrays of primitives or flat
// primitive objects, or nested shapes.
func ShapeDocumentSchema() *jsonschema.Schema {
	names := make([]any, 0, len(primitiveNames))
	for _, p := range []PrimitiveShape{PrimitiveString, PrimitiveU64, PrimitiveI64, PrimitiveF32, PrimitiveF64, PrimitiveBool, PrimitiveNull} {
		names = append(names, p.String())
	}
	return &jsonschema.Schema{
		Schema: jsonschema.Draft,
		Title:  "Shape",
		Ref:    "#/$defs/shape",
		Defs: map[string]*jsonschema.Schema{
			"primitive": {Type: "string", Enum: names},
			"element": {OneOf: []*jsonschema.Schema{
				jsonschema.RefTo("primitive"),
				{Type: "object", AdditionalProperties: jsonschema.RefTo("primitive")},
			}},
			"shape": {
				Type: "object",
				AdditionalProperties: &jsonschema.Schema{OneOf: []*jsonschema.Schema{
					jsonschema.RefTo("primitive"),
					{Type: "array", Items: jsonschema.RefTo("element")},
					jsonschema.RefTo("shape"),
				}},
			},
		},
	}
}

// JSONSchema projects the shape onto a schema for feature properties.
func (s Shape) JSONSchema() *jsonschema.Schema {
	out := s.objectSchema()
	out.Schema = jsonschema.Draft
	return out
}

func (s Shape) objectSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s))
	for k, t := range s {
		props[k] = t.jsonSchema()
	}
	return &jsonschema.Schema{Type: "object", Properties: props, AdditionalProperties: false}
}

func (t ShapeType) jsonSchema() *jsonschema.Schema {
	switch t.Kind {
	case ShapeKindArray:
		arr := &jsonschema.Schema{Type: "array"}
		switch len(t.Array) {
		case 0:
		case 1:
			arr.Items = t.Array[0].jsonSchema()
		default:
			alts := make([]*jsonschema.Schema, len(t.Array))
			for i, e := range t.Array {
				alts[i] = e.jsonSchema()
			}
			arr.Items = &jsonschema.Schema{AnyOf: alts}
		}
		return arr
	case ShapeKindNested:
		return t.Nested.objectSchema()
	default:
		return t.Primitive.jsonSchema()
	}
}

func (e ShapePrimitiveType) jsonSchema() *jsonschema.Schema {
	if !e.IsNested() {
		return e.Primitive.jsonSchema()
	}
	props := make(map[string]*jsonschema.Schema, len(e.Nested))
	for k, p := range e.Nested {
		props[k] = p.jsonSchema()
	}
	return &jsonschema.Schema{Type: "object", Properties: props, AdditionalProperties: false}
}

func (p PrimitiveShape) jsonSchema() *jsonschema.Schema {
	switch p {
	case PrimitiveU64:
		return &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Float(0)}
	case PrimitiveI64:
		return &jsonschema.Schema{Type: "integer"}
	case PrimitiveF32, PrimitiveF64:
		return &jsonschema.Schema{Type: "number"}
	case PrimitiveBool:
		return &jsonschema.Schema{Type: "boolean"}
	case PrimitiveNull:
		return &jsonschema.Schema{Type: "null"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}
