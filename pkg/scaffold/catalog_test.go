package scaffold

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestList(t *testing.T) {
	fsys := fstest.MapFS{
		"react/template.toml":  {Data: []byte(`description = "React app"`)},
		"react/index.jsx":      {Data: []byte("x")},
		"default/index.js":     {Data: []byte("x")},
		"future/template.toml": {Data: []byte(`requires = ">= 42"`)},
		".git/HEAD":            {Data: []byte("ref: refs/heads/main")},
		"README.md":            {Data: []byte("# templates")},
	}

	got, err := List(context.Background(), NewFSSource(fsys, ".", "root"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []Info{
		{Name: "default", Compatible: true},
		{Name: "future", Requires: ">= 42", Compatible: false},
		{Name: "react", Description: "React app", Compatible: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestListSubdirectoryRoot(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/default/index.js": {Data: []byte("x")},
		"other/ignored/index.js":     {Data: []byte("x")},
	}

	got, err := List(context.Background(), NewFSSource(fsys, "templates", "embedded"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]Info{{Name: "default", Compatible: true}}, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestListBrokenManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"ok/index.js":          {Data: []byte("x")},
		"broken/template.toml": {Data: []byte("unknown = 1")},
	}

	if _, err := List(context.Background(), NewFSSource(fsys, ".", "root")); err == nil {
		t.Fatal("expected error for broken manifest")
	}
}
