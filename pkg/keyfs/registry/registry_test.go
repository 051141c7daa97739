package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/registry"
)

func TestRegisterAndLookup(t *testing.T) {
	r := registry.New()
	r.Register("report", "/data/report.txt", registry.ClassRegular)

	rec, ok := r.Lookup("report")
	require.True(t, ok)
	assert.Equal(t, "/data/report.txt", rec.Path)
	assert.Equal(t, registry.ClassRegular, rec.Class)

	// Register overwrites; uniqueness is the naming resolver's concern.
	r.Register("report", "/data/other.txt", registry.ClassLog)
	rec, _ = r.Lookup("report")
	assert.Equal(t, "/data/other.txt", rec.Path)
	assert.Equal(t, 1, r.Len())
}

func TestResolveKey(t *testing.T) {
	r := registry.New()
	r.Register("report", "/data/report.txt", registry.ClassRegular)
	require.NoError(t, r.AddAlias("r", "report"))

	assert.Equal(t, "report", r.ResolveKey("r"))
	// Non-aliases pass through unchanged; existence is checked at the
	// point of use, not here.
	assert.Equal(t, "report", r.ResolveKey("report"))
	assert.Equal(t, "ghost", r.ResolveKey("ghost"))
}

func TestAddAlias(t *testing.T) {
	r := registry.New()
	r.Register("report", "/data/report.txt", registry.ClassRegular)
	r.Register("notes", "/data/notes.txt", registry.ClassRegular)

	t.Run("unknown target", func(t *testing.T) {
		err := r.AddAlias("x", "ghost")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("alias name colliding with a key", func(t *testing.T) {
		err := r.AddAlias("notes", "report")
		assert.ErrorIs(t, err, core.ErrConflict)
	})

	t.Run("duplicate alias", func(t *testing.T) {
		require.NoError(t, r.AddAlias("r", "report"))
		err := r.AddAlias("r", "notes")
		assert.ErrorIs(t, err, core.ErrConflict)
	})
}

func TestRemove(t *testing.T) {
	r := registry.New()
	r.Register("tmp", "/tmp/tmp_1.txt", registry.ClassTemporary)
	require.NoError(t, r.AddAlias("scratch", "tmp"))

	require.NoError(t, r.Remove("tmp"))

	_, ok := r.Lookup("tmp")
	assert.False(t, ok)
	assert.Empty(t, r.TemporaryKeys())
	// Aliases targeting the removed key go with it.
	assert.Equal(t, "scratch", r.ResolveKey("scratch"))

	err := r.Remove("tmp")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRename(t *testing.T) {
	t.Run("moves record and retargets aliases", func(t *testing.T) {
		r := registry.New()
		r.Register("draft", "/data/draft.txt", registry.ClassRegular)
		require.NoError(t, r.AddAlias("wip", "draft"))

		require.NoError(t, r.Rename("draft", "final", "/data/final.txt"))

		_, ok := r.Lookup("draft")
		assert.False(t, ok)
		rec, ok := r.Lookup("final")
		require.True(t, ok)
		assert.Equal(t, "/data/final.txt", rec.Path)
		assert.Equal(t, "final", r.ResolveKey("wip"))
	})

	t.Run("temporary marking follows the rename", func(t *testing.T) {
		r := registry.New()
		r.Register("tmp", "/tmp/a.txt", registry.ClassTemporary)
		require.NoError(t, r.Rename("tmp", "tmp2", "/tmp/b.txt"))
		assert.Equal(t, []string{"tmp2"}, r.TemporaryKeys())
	})

	t.Run("unknown key", func(t *testing.T) {
		r := registry.New()
		err := r.Rename("ghost", "x", "/x")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("new key colliding with an alias", func(t *testing.T) {
		r := registry.New()
		r.Register("a", "/a", registry.ClassRegular)
		r.Register("b", "/b", registry.ClassRegular)
		require.NoError(t, r.AddAlias("nick", "a"))
		err := r.Rename("b", "nick", "/b2")
		assert.ErrorIs(t, err, core.ErrConflict)
	})
}

func TestTemporaryKeys(t *testing.T) {
	r := registry.New()
	r.Register("b", "/tmp/b", registry.ClassTemporary)
	r.Register("a", "/tmp/a", registry.ClassTemporary)
	r.Register("c", "/data/c", registry.ClassRegular)

	assert.Equal(t, []string{"a", "b"}, r.TemporaryKeys())
	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
}
