package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestNormalize_EmptyObject(t *testing.T) {
	p := writeFile(t, "meta.json", `{}`)
	out, err := run(t, "normalize", p)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, want := range []string{`"name":"default"`, `"extension":"pbf"`, `"maxzoom":27`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s: %s", want, out)
		}
	}
}

func TestNormalize_YAML(t *testing.T) {
	p := writeFile(t, "meta.yaml", "name: roads\nminzoom: 2\n")
	out, err := run(t, "normalize", p)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !strings.Contains(out, `"name":"roads"`) || !strings.Contains(out, `"minzoom":2`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNormalize_StrictRejectsDuplicates(t *testing.T) {
	p := writeFile(t, "meta.json", `{"name":"a","name":"b"}`)
	if _, err := run(t, "normalize", "--strict", p); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestDetect_Legacy(t *testing.T) {
	p := writeFile(t, "legacy.json", `{"tiles":["https://t/{z}/{x}/{y}.pbf"],"vector_layers":[],"layers":[]}`)
	out, err := run(t, "detect", p)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if strings.TrimSpace(out) != "legacy" {
		t.Fatalf("got %q", out)
	}
}

func TestSchemaShape(t *testing.T) {
	out, err := run(t, "schema", "shape")
	if err != nil {
		t.Fatalf("schema shape: %v", err)
	}
	if !strings.Contains(out, `"$defs"`) || !strings.Contains(out, `"u64"`) {
		t.Fatalf("unexpected schema: %s", out)
	}
}

func TestShape_InvalidDocument(t *testing.T) {
	p := writeFile(t, "shape.json", `{"a":5}`)
	if _, err := run(t, "shape", p); err == nil {
		t.Fatalf("expected schema error")
	}
}
