package filesystem

import (
	"io"
	"io/fs"
)

// ReadFS defines the read-side operations the registry and walkers need.
type ReadFS interface {
	Open(name string) (fs.File, error)
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
}

// WriteFS defines the write-side operations.
type WriteFS interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
	AppendFile(name string, data []byte, perm fs.FileMode) error
	Create(name string) (io.WriteCloser, error)
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(name string) error
	Rename(oldpath, newpath string) error
}

// FullFileSystem combines read and write operations.
type FullFileSystem interface {
	ReadFS
	WriteFS
}

// Exists reports whether name exists in fsys.
func Exists(fsys ReadFS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists in fsys and is a directory.
func IsDir(fsys ReadFS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsEmptyDir reports whether name is a directory with no entries.
func IsEmptyDir(fsys ReadFS, name string) bool {
	entries, err := fsys.ReadDir(name)
	return err == nil && len(entries) == 0
}
