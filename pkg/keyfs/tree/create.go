package tree

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// DirPerm is the mode used for every directory the walker creates.
const DirPerm fs.FileMode = 0755

// Walker creates and deletes directory subtrees described by folder specs.
type Walker struct {
	fsys   filesystem.FullFileSystem
	logger zerolog.Logger
}

// NewWalker creates a walker over the given filesystem.
func NewWalker(fsys filesystem.FullFileSystem, logger zerolog.Logger) *Walker {
	return &Walker{fsys: fsys, logger: logger}
}

// CreateTree creates the subtree described by spec under base using a
// nop logger. See Walker.Create.
func CreateTree(fsys filesystem.FullFileSystem, base string, spec []Node) error {
	return NewWalker(fsys, zerolog.Nop()).Create(base, spec)
}

// Create walks spec left to right under base, which must already exist.
// Leaves at one level are created as siblings; a group recurses into the
// most recently named sibling. Re-running the same spec is a no-op.
func (w *Walker) Create(base string, spec []Node) error {
	if !filesystem.IsDir(w.fsys, base) {
		return &core.NotFoundError{Kind: "directory", Name: base}
	}
	return w.create(base, spec)
}

func (w *Walker) create(base string, spec []Node) error {
	// cursor tracks the most recently named sibling; groups attach to it.
	cursor := ""
	for _, n := range spec {
		switch v := n.(type) {
		case Leaf:
			p := filepath.Join(base, string(v))
			if !filesystem.Exists(w.fsys, p) {
				if err := w.fsys.Mkdir(p, DirPerm); err != nil {
					return fmt.Errorf("create %s: %w", p, err)
				}
				w.logger.Debug().Str("path", p).Msg("created directory")
			}
			cursor = p
		case Group:
			if cursor == "" {
				return &core.InvalidStructureError{
					Reason: "group has no preceding sibling to attach to",
				}
			}
			if err := w.create(cursor, v); err != nil {
				return err
			}
		}
	}
	return nil
}
