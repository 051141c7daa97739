package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// OSFileSystem implements FullFileSystem directly on top of the host
// filesystem. Paths are passed through as-is, absolute or relative to the
// process working directory.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS-backed filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open implements ReadFS.
func (osfs *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// Stat implements ReadFS.
func (osfs *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir implements ReadFS.
func (osfs *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// ReadFile implements ReadFS.
func (osfs *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile implements WriteFS.
func (osfs *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// AppendFile implements WriteFS.
func (osfs *OSFileSystem) AppendFile(name string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Create implements WriteFS.
func (osfs *OSFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Mkdir implements WriteFS.
func (osfs *OSFileSystem) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

// MkdirAll implements WriteFS.
func (osfs *OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove implements WriteFS.
func (osfs *OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// RemoveAll implements WriteFS.
func (osfs *OSFileSystem) RemoveAll(name string) error {
	return os.RemoveAll(name)
}

// Rename implements WriteFS.
func (osfs *OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
