package s2tilejson_test

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/open-s2/s2tilejson"
)

const shapeDoc = `{
  "name": "string",
  "class": {"kind": "string", "rank": "u64"},
  "tags": ["string"],
  "stops": [{"at": "f64", "label": "string"}],
  "height": "f32"
}`

func TestParseShapeJSON(t *testing.T) {
	s, err := s2tilejson.ParseShapeJSON([]byte(shapeDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := s2tilejson.Shape{
		"name": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveString),
		"class": s2tilejson.NestedOf(s2tilejson.Shape{
			"kind": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveString),
			"rank": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveU64),
		}),
		"tags": s2tilejson.ArrayOf(s2tilejson.ElementOf(s2tilejson.PrimitiveString)),
		"stops": s2tilejson.ArrayOf(s2tilejson.ElementObject(map[string]s2tilejson.PrimitiveShape{
			"at":    s2tilejson.PrimitiveF64,
			"label": s2tilejson.PrimitiveString,
		})),
		"height": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveF32),
	}
	if !s.Equal(want) {
		t.Fatalf("parsed shape differs from constructed shape")
	}
	if !want.Equal(s) {
		t.Fatalf("equality must be symmetric")
	}
}

func TestShape_YAMLEqualsJSON(t *testing.T) {
	y := `
name: string
class:
  kind: string
  rank: u64
tags: [string]
stops:
  - at: f64
    label: string
height: f32
`
	fromYAML, err := s2tilejson.ParseShapeYAML([]byte(y))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromJSON, _ := s2tilejson.ParseShapeJSON([]byte(shapeDoc))
	if !fromYAML.Equal(fromJSON) {
		t.Fatalf("shapes built from different documents should compare equal")
	}
}

func TestShape_NotEqual(t *testing.T) {
	a := s2tilejson.Shape{"a": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveI64)}
	cases := []s2tilejson.Shape{
		{"a": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveU64)},
		{"b": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveI64)},
		{"a": s2tilejson.ArrayOf(s2tilejson.ElementOf(s2tilejson.PrimitiveI64))},
		{"a": s2tilejson.NestedOf(s2tilejson.Shape{"a": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveI64)})},
		{"a": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveI64), "b": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveBool)},
	}
	for i, c := range cases {
		if a.Equal(c) {
			t.Fatalf("case %d: expected not equal", i)
		}
	}
}

func TestShape_MarshalSorted(t *testing.T) {
	s := s2tilejson.Shape{
		"z": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveBool),
		"a": s2tilejson.ArrayOf(s2tilejson.ElementOf(s2tilejson.PrimitiveNull)),
		"m": s2tilejson.NestedOf(s2tilejson.Shape{
			"y": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveI64),
			"b": s2tilejson.PrimitiveOf(s2tilejson.PrimitiveString),
		}),
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":["null"],"m":{"b":"string","y":"i64"},"z":"bool"}`
	if string(b) != want {
		t.Fatalf("got %s want %s", b, want)
	}
	back, err := s2tilejson.ParseShapeJSON(b)
	if err != nil || !back.Equal(s) {
		t.Fatalf("round trip failed: %v", err)
	}
}

func TestShape_SchemaErrors(t *testing.T) {
	cases := []struct {
		doc  string
		path string
		kind string
	}{
		{`{"a": 5}`, "/a", "number"},
		{`{"a": true}`, "/a", "bool"},
		{`{"a": null}`, "/a", "null"},
		{`{"a": "decimal"}`, "/a", "string"},
		{`{"a": {"b": [[ "string" ]]}}`, "/a/b/0", "array"},
		{`{"a": [{"b": {"c": "u64"}}]}`, "/a/0/b", "object"},
		{`{"a~b/c": 1}`, "/a~0b~1c", "number"},
		{`[]`, "/", "array"},
	}
	for _, c := range cases {
		_, err := s2tilejson.ParseShapeJSON([]byte(c.doc))
		if !s2tilejson.HasCode(err, s2tilejson.CodeSchema) {
			t.Fatalf("%s: expected schema_error, got %v", c.doc, err)
		}
		iss, _ := s2tilejson.AsIssues(err)
		if iss[0].Path != c.path {
			t.Fatalf("%s: path %s want %s", c.doc, iss[0].Path, c.path)
		}
		if iss[0].Params["kind"] != c.kind {
			t.Fatalf("%s: kind %v want %s", c.doc, iss[0].Params["kind"], c.kind)
		}
	}
}

func TestShape_CloneIsIndependent(t *testing.T) {
	s, _ := s2tilejson.ParseShapeJSON([]byte(shapeDoc))
	c := s.Clone()
	c["class"].Nested["kind"] = s2tilejson.PrimitiveOf(s2tilejson.PrimitiveBool)
	if s.Equal(c) {
		t.Fatalf("mutating a clone must not affect the original")
	}
}

func TestShape_JSONSchema(t *testing.T) {
	s, _ := s2tilejson.ParseShapeJSON([]byte(shapeDoc))
	js := s.JSONSchema()
	if js.Type != "object" || js.Properties["height"].Type != "number" {
		t.Fatalf("unexpected projection: %+v", js)
	}
	if rank := js.Properties["class"].Properties["rank"]; rank.Type != "integer" || rank.Minimum == nil || *rank.Minimum != 0 {
		t.Fatalf("u64 should project to non-negative integer: %+v", rank)
	}
	stops := js.Properties["stops"]
	if stops.Type != "array" || stops.Items.Properties["at"].Type != "number" {
		t.Fatalf("array of objects: %+v", stops)
	}
	doc := s2tilejson.ShapeDocumentSchema()
	if doc.Defs["primitive"] == nil || len(doc.Defs["primitive"].Enum) != 7 {
		t.Fatalf("shape document schema should enumerate the seven primitives")
	}
}
