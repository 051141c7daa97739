package tree

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// Mode selects how DeleteTree treats non-empty directories.
type Mode string

const (
	// Preserve deletes a directory only when it is empty.
	Preserve Mode = "preserve"
	// Force deletes directories unconditionally, contents included.
	Force Mode = "force"
)

// ParseMode validates a deletion-mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Preserve, Force:
		return Mode(s), nil
	}
	return "", &core.InvalidModeError{Mode: s, Allowed: []string{string(Preserve), string(Force)}}
}

// DeleteTree deletes the subtree described by spec under base using a nop
// logger. See Walker.Delete.
func DeleteTree(fsys filesystem.FullFileSystem, base string, spec []Node, mode Mode) error {
	return NewWalker(fsys, zerolog.Nop()).Delete(base, spec, mode)
}

// Delete walks spec left to right under base and deletes the named
// directories. A leaf is deleted immediately unless the next element is a
// group, in which case the group's children are deleted first and the leaf
// afterwards (under Preserve only once it has become empty). Missing paths
// are skipped, never raised. base itself is never deleted.
//
// The wildcard dialect's "*" and ".." tokens are not part of this grammar
// and are rejected; use DeleteLegacy for that dialect.
func (w *Walker) Delete(base string, spec []Node, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	return w.delete(base, base, spec, mode)
}

func (w *Walker) delete(root, base string, spec []Node, mode Mode) error {
	cursor := ""
	for i, n := range spec {
		switch v := n.(type) {
		case Leaf:
			if v == TokenWildcard || v == TokenParent {
				return &core.InvalidStructureError{
					Reason: string(v) + " token is only valid in the legacy delete grammar",
				}
			}
			p := filepath.Join(base, string(v))
			cursor = p
			if !filesystem.Exists(w.fsys, p) {
				w.logger.Debug().Str("path", p).Msg("skipping missing path")
				continue
			}
			if p == root {
				continue
			}
			if i+1 < len(spec) {
				if _, isGroup := spec[i+1].(Group); isGroup {
					// The group deletes inside p first; p itself is
					// cleaned up after the group is processed.
					continue
				}
			}
			w.removeDir(p, mode)
		case Group:
			if cursor == "" {
				return &core.InvalidStructureError{
					Reason: "group has no preceding sibling to attach to",
				}
			}
			if !filesystem.Exists(w.fsys, cursor) {
				w.logger.Debug().Str("path", cursor).Msg("skipping group under missing path")
				continue
			}
			if err := w.delete(root, cursor, v, mode); err != nil {
				return err
			}
			if cursor != root {
				w.removeDir(cursor, mode)
			}
		}
	}
	return nil
}

// removeDir deletes a single directory best-effort: failures are logged,
// never raised, so bulk cleanup does not abort on partial absence.
func (w *Walker) removeDir(p string, mode Mode) {
	if mode == Force {
		if err := w.fsys.RemoveAll(p); err != nil {
			w.logger.Warn().Err(err).Str("path", p).Msg("force delete failed")
			return
		}
		w.logger.Debug().Str("path", p).Msg("deleted directory")
		return
	}
	if !filesystem.IsEmptyDir(w.fsys, p) {
		w.logger.Debug().Str("path", p).Msg("directory not empty, preserved")
		return
	}
	if err := w.fsys.Remove(p); err != nil {
		w.logger.Warn().Err(err).Str("path", p).Msg("delete failed")
		return
	}
	w.logger.Debug().Str("path", p).Msg("deleted directory")
}
