package tree

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// Tokens recognized by the legacy delete grammar.
const (
	// TokenWildcard expands to every existing child directory of the cursor.
	TokenWildcard Leaf = "*"
	// TokenParent moves the cursor up one level, deleting nothing.
	TokenParent Leaf = ".."
)

// DeleteTreeLegacy deletes using the wildcard dialect with a nop logger.
// See Walker.DeleteLegacy.
func DeleteTreeLegacy(fsys filesystem.FullFileSystem, base string, spec []Node) error {
	return NewWalker(fsys, zerolog.Nop()).DeleteLegacy(base, spec)
}

// DeleteLegacy walks spec with the wildcard dialect, an alternate grammar
// kept for older spec files. The walker maintains a cursor starting at base:
//
//   - a plain name joins the cursor; if the next element is a group the
//     cursor descends into it, otherwise the directory is deleted if empty;
//   - a group lists relative targets under the cursor; after the group is
//     processed the cursor directory is deleted if empty and the cursor
//     pops back to its parent;
//   - ".." moves the cursor to its parent (never above base);
//   - "*" deletes every existing child directory of the cursor, recursively,
//     except the names listed in the group that immediately follows it.
//
// Deletion is best-effort throughout; base is never deleted. This grammar
// and the mode-based one never mix: use one or the other per call.
func (w *Walker) DeleteLegacy(base string, spec []Node) error {
	if !filesystem.IsDir(w.fsys, base) {
		return &core.NotFoundError{Kind: "directory", Name: base}
	}
	_, err := w.deleteLegacy(base, base, spec)
	return err
}

// deleteLegacy returns the cursor position after the walk so that nested
// groups restore it correctly.
func (w *Walker) deleteLegacy(root, cursor string, spec []Node) (string, error) {
	for i := 0; i < len(spec); i++ {
		switch v := spec[i].(type) {
		case Leaf:
			switch v {
			case TokenParent:
				if cursor != root {
					cursor = filepath.Dir(cursor)
				}
			case TokenWildcard:
				except := map[string]bool{}
				if i+1 < len(spec) {
					if g, ok := spec[i+1].(Group); ok {
						names, err := leafNames(g)
						if err != nil {
							return cursor, err
						}
						for _, name := range names {
							except[name] = true
						}
						i++
					}
				}
				entries, err := w.fsys.ReadDir(cursor)
				if err != nil {
					w.logger.Debug().Err(err).Str("path", cursor).Msg("skipping unreadable wildcard target")
					continue
				}
				for _, e := range entries {
					if !e.IsDir() || except[e.Name()] {
						continue
					}
					w.removeDir(filepath.Join(cursor, e.Name()), Force)
				}
			default:
				p := filepath.Join(cursor, string(v))
				if !filesystem.Exists(w.fsys, p) {
					w.logger.Debug().Str("path", p).Msg("skipping missing path")
					continue
				}
				if i+1 < len(spec) {
					if _, isGroup := spec[i+1].(Group); isGroup {
						cursor = p
						continue
					}
				}
				if p != root {
					w.removeDir(p, Preserve)
				}
			}
		case Group:
			if _, err := w.deleteLegacy(root, cursor, v); err != nil {
				return cursor, err
			}
			if cursor != root {
				w.removeDir(cursor, Preserve)
				cursor = filepath.Dir(cursor)
			}
		}
	}
	return cursor, nil
}

// leafNames flattens a group that must contain only plain names, such as a
// wildcard exception list.
func leafNames(g Group) ([]string, error) {
	names := make([]string, 0, len(g))
	for _, n := range g {
		leaf, ok := n.(Leaf)
		if !ok {
			return nil, &core.InvalidStructureError{Reason: "wildcard exception list must contain only names"}
		}
		names = append(names, string(leaf))
	}
	return names, nil
}
