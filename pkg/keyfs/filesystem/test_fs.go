package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"strings"
	"syscall"
	"testing/fstest"
)

// TestFileSystem backs FullFileSystem with a testing/fstest.MapFS so tests
// never touch the host filesystem. Paths must satisfy fs.ValidPath, i.e.
// slash-separated and relative.
type TestFileSystem struct {
	fstest.MapFS
}

// NewTestFileSystem creates an empty in-memory test filesystem.
func NewTestFileSystem() *TestFileSystem {
	return &TestFileSystem{
		MapFS: make(fstest.MapFS),
	}
}

// ReadDir implements ReadFS. MapFS synthesizes directory listings from key
// prefixes, which covers both explicit Mkdir entries and implied parents.
func (tfs *TestFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return tfs.MapFS.ReadDir(name)
}

// WriteFile implements WriteFS.
func (tfs *TestFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}
	tfs.MapFS[name] = &fstest.MapFile{
		Data: data,
		Mode: perm,
	}
	return nil
}

// AppendFile implements WriteFS.
func (tfs *TestFileSystem) AppendFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "appendfile", Path: name, Err: fs.ErrInvalid}
	}
	if existing, ok := tfs.MapFS[name]; ok {
		combined := make([]byte, 0, len(existing.Data)+len(data))
		combined = append(combined, existing.Data...)
		combined = append(combined, data...)
		tfs.MapFS[name] = &fstest.MapFile{Data: combined, Mode: existing.Mode}
		return nil
	}
	return tfs.WriteFile(name, data, perm)
}

type mapWriteCloser struct {
	tfs  *TestFileSystem
	name string
	buf  bytes.Buffer
}

func (w *mapWriteCloser) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *mapWriteCloser) Close() error {
	return w.tfs.WriteFile(w.name, w.buf.Bytes(), 0644)
}

// Create implements WriteFS. Data is committed to the map on Close.
func (tfs *TestFileSystem) Create(name string) (io.WriteCloser, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
	}
	return &mapWriteCloser{tfs: tfs, name: name}, nil
}

// Mkdir implements WriteFS.
func (tfs *TestFileSystem) Mkdir(name string, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	if _, exists := tfs.MapFS[name]; exists {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	tfs.MapFS[name] = &fstest.MapFile{
		Mode: perm | fs.ModeDir,
	}
	return nil
}

// MkdirAll implements WriteFS. Every missing parent gets an explicit entry
// so it can later be removed individually.
func (tfs *TestFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	if !fs.ValidPath(p) {
		return &fs.PathError{Op: "mkdirall", Path: p, Err: fs.ErrInvalid}
	}
	parts := strings.Split(p, "/")
	for i := range parts {
		dir := strings.Join(parts[:i+1], "/")
		if _, exists := tfs.MapFS[dir]; !exists {
			tfs.MapFS[dir] = &fstest.MapFile{Mode: perm | fs.ModeDir}
		}
	}
	return nil
}

// Remove implements WriteFS. Like os.Remove it refuses to remove a
// non-empty directory.
func (tfs *TestFileSystem) Remove(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
	}
	file, exists := tfs.MapFS[name]
	if !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if file.Mode.IsDir() {
		for other := range tfs.MapFS {
			if isSubPath(name, other) {
				return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
			}
		}
	}
	delete(tfs.MapFS, name)
	return nil
}

// RemoveAll implements WriteFS.
func (tfs *TestFileSystem) RemoveAll(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "removeall", Path: name, Err: fs.ErrInvalid}
	}
	for other := range tfs.MapFS {
		if other == name || isSubPath(name, other) {
			delete(tfs.MapFS, other)
		}
	}
	return nil
}

// Rename implements WriteFS. Renaming a directory carries its children.
func (tfs *TestFileSystem) Rename(oldpath, newpath string) error {
	if !fs.ValidPath(oldpath) || !fs.ValidPath(newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrInvalid}
	}
	file, exists := tfs.MapFS[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	tfs.MapFS[newpath] = file
	delete(tfs.MapFS, oldpath)
	if file.Mode.IsDir() {
		for other, f := range tfs.MapFS {
			if isSubPath(oldpath, other) {
				moved := path.Join(newpath, strings.TrimPrefix(other, oldpath+"/"))
				tfs.MapFS[moved] = f
				delete(tfs.MapFS, other)
			}
		}
	}
	return nil
}

// isSubPath reports whether child is strictly below parent.
func isSubPath(parent, child string) bool {
	return strings.HasPrefix(child, parent+"/")
}
