package engine

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
)

func TestDecodeAny(t *testing.T) {
	v, err := DecodeAny([]byte(`{"a":[1,"x",true,null,{"b":2.5}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	arr := m["a"].([]any)
	if len(arr) != 5 {
		t.Fatalf("array len %d", len(arr))
	}
	if n, ok := arr[0].(json.Number); !ok || n.String() != "1" {
		t.Fatalf("numbers should stay json.Number: %#v", arr[0])
	}
	kinds := []string{"number", "string", "bool", "null", "object"}
	for i, k := range kinds {
		if got := KindOf(arr[i]); got != k {
			t.Fatalf("kind[%d]=%s want %s", i, got, k)
		}
	}
}

func TestDecodeAny_Errors(t *testing.T) {
	if _, err := DecodeAny([]byte(`{"a":1} {"b":2}`)); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected trailing data error, got %v", err)
	}
	if _, err := DecodeAny([]byte(``)); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := DecodeAny([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected error for truncated input")
	}
}

func TestEnforce_Duplicates(t *testing.T) {
	doc := []byte(`{"a":[{"k":1,"k":2}],"b":{"c":1},"b":3}`)
	iss, err := Enforce(doc, EnforceOptions{OnDuplicate: DupWarn})
	if err != nil {
		t.Fatalf("enforce: %v", err)
	}
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", iss)
	}
	if iss[0].Path != "/a/0/k" || iss[1].Path != "/b" || iss[0].Fatal {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	iss, _ = Enforce(doc, EnforceOptions{OnDuplicate: DupError})
	if len(iss) != 1 || !iss[0].Fatal {
		t.Fatalf("DupError should stop at the first duplicate: %+v", iss)
	}
}

func TestEnforce_Depth(t *testing.T) {
	iss, _ := Enforce([]byte(`[[[1]]]`), EnforceOptions{MaxDepth: 2})
	if len(iss) != 1 || iss[0].Code != "too_deep" || iss[0].Path != "/0/0" {
		t.Fatalf("unexpected: %+v", iss)
	}
	iss, _ = Enforce([]byte(`[[1]]`), EnforceOptions{MaxDepth: 2})
	if len(iss) != 0 {
		t.Fatalf("depth 2 should pass: %+v", iss)
	}
}

func TestDecodeYAML(t *testing.T) {
	v, err := DecodeYAML([]byte("base: &b {x: 1}\nref: *b\nbig: 18446744073709551615\nf: 1.5\nok: true\nnone: ~\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	m := v.(map[string]any)
	if ref := m["ref"].(map[string]any); ref["x"] != int64(1) {
		t.Fatalf("alias: %#v", m["ref"])
	}
	if m["big"] != uint64(18446744073709551615) {
		t.Fatalf("uint64 fallback: %#v", m["big"])
	}
	if m["f"] != 1.5 || m["ok"] != true || m["none"] != nil {
		t.Fatalf("scalars: %#v", m)
	}
}

func TestDecodeYAML_DuplicateKey(t *testing.T) {
	_, err := DecodeYAML([]byte("a: 1\nb:\n  c: 1\n  c: 2\n"))
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dup.Key != "c" || dup.Line != 4 || dup.FirstLine != 3 {
		t.Fatalf("positions: %+v", dup)
	}
}

func TestDecodeYAML_SelfReferencingAnchor(t *testing.T) {
	for _, src := range []string{
		"a: &x\n  b: *x\n",
		"a: &x [1, *x]\n",
	} {
		_, err := DecodeYAML([]byte(src))
		if !errors.Is(err, ErrAliasCycle) {
			t.Fatalf("%q: expected alias cycle error, got %v", src, err)
		}
	}
}

func TestDecodeYAML_AliasExpansionLimit(t *testing.T) {
	src := "a: &a [x, x, x, x, x, x, x, x, x, x]\n"
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f", "g", "h"} {
		src += name + ": &" + name + " [*" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + ", *" + prev + "]\n"
		prev = name
	}
	if _, err := DecodeYAML([]byte(src)); !errors.Is(err, ErrAliasExpansion) {
		t.Fatalf("expected alias expansion error, got %v", err)
	}
}
