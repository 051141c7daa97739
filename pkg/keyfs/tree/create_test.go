package tree_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
	"github.com/arthur-debert/keyfs/pkg/keyfs/tree"
)

func newBase(t *testing.T) *filesystem.TestFileSystem {
	t.Helper()
	fs := filesystem.NewTestFileSystem()
	if err := fs.MkdirAll("base", 0755); err != nil {
		t.Fatalf("test setup failed: %v", err)
	}
	return fs
}

func mustParse(t *testing.T, raw []any) []tree.Node {
	t.Helper()
	nodes, err := tree.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return nodes
}

func TestCreateTree(t *testing.T) {
	t.Run("creates nested siblings", func(t *testing.T) {
		fs := newBase(t)
		spec := mustParse(t, []any{"a", []any{"b", "c"}, "d"})

		if err := tree.CreateTree(fs, "base", spec); err != nil {
			t.Fatalf("CreateTree failed: %v", err)
		}

		for _, dir := range []string{"base/a", "base/a/b", "base/a/c", "base/d"} {
			if !filesystem.IsDir(fs, dir) {
				t.Errorf("expected directory %s to exist", dir)
			}
		}
		if filesystem.Exists(fs, "base/a/d") {
			t.Error("d should attach to base, not to the nested subtree")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		fs := newBase(t)
		spec := mustParse(t, []any{"a", []any{"b", "c"}, "d"})

		if err := tree.CreateTree(fs, "base", spec); err != nil {
			t.Fatalf("first CreateTree failed: %v", err)
		}
		before := len(fs.MapFS)
		if err := tree.CreateTree(fs, "base", spec); err != nil {
			t.Fatalf("second CreateTree failed: %v", err)
		}
		if len(fs.MapFS) != before {
			t.Errorf("second run changed the directory set: %d -> %d entries", before, len(fs.MapFS))
		}
	})

	t.Run("deeply nested groups", func(t *testing.T) {
		fs := newBase(t)
		spec := mustParse(t, []any{"a", []any{"b", []any{"c", []any{"d"}}}})

		if err := tree.CreateTree(fs, "base", spec); err != nil {
			t.Fatalf("CreateTree failed: %v", err)
		}
		for _, dir := range []string{"base/a", "base/a/b", "base/a/b/c", "base/a/b/c/d"} {
			if !filesystem.IsDir(fs, dir) {
				t.Errorf("expected directory %s to exist", dir)
			}
		}
	})

	t.Run("empty spec is a no-op", func(t *testing.T) {
		fs := newBase(t)
		if err := tree.CreateTree(fs, "base", nil); err != nil {
			t.Fatalf("CreateTree with empty spec failed: %v", err)
		}
	})

	t.Run("leading group is invalid", func(t *testing.T) {
		fs := newBase(t)
		spec := mustParse(t, []any{[]any{"b"}, "a"})

		err := tree.CreateTree(fs, "base", spec)
		if !errors.Is(err, core.ErrInvalidStructure) {
			t.Fatalf("expected InvalidStructure, got %v", err)
		}
		if filesystem.Exists(fs, "base/b") {
			t.Error("leading group must not silently attach to base")
		}
	})

	t.Run("missing base is not found", func(t *testing.T) {
		fs := filesystem.NewTestFileSystem()
		err := tree.CreateTree(fs, "nope", mustParse(t, []any{"a"}))
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("rejects non-string non-list elements", func(t *testing.T) {
		_, err := tree.Parse([]any{"a", 42})
		if !errors.Is(err, core.ErrInvalidStructure) {
			t.Fatalf("expected InvalidStructure, got %v", err)
		}
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := tree.Parse([]any{""})
		if !errors.Is(err, core.ErrInvalidStructure) {
			t.Fatalf("expected InvalidStructure, got %v", err)
		}
	})

	t.Run("parses the JSON form", func(t *testing.T) {
		nodes, err := tree.ParseJSON([]byte(`["a",["b","c"],"d"]`))
		if err != nil {
			t.Fatalf("ParseJSON failed: %v", err)
		}
		if len(nodes) != 3 {
			t.Fatalf("expected 3 top-level nodes, got %d", len(nodes))
		}
		if _, ok := nodes[1].(tree.Group); !ok {
			t.Errorf("expected second node to be a group, got %T", nodes[1])
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := tree.ParseJSON([]byte(`{"a": 1}`))
		if !errors.Is(err, core.ErrInvalidStructure) {
			t.Fatalf("expected InvalidStructure, got %v", err)
		}
	})
}
