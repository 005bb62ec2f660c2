package jsonschema_test

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/open-s2/s2tilejson/jsonschema"
)

func TestSchema_OmitsEmptyKeywords(t *testing.T) {
	s := &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Float(0)}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"type":"integer","minimum":0}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestRefTo(t *testing.T) {
	if got := jsonschema.RefTo("shape").Ref; got != "#/$defs/shape" {
		t.Fatalf("ref: %s", got)
	}
}
