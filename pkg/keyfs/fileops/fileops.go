// Package fileops wraps the thin filesystem collaborators: stat, copy,
// timestamped backup, substring search, and gzip compression. Each is a
// direct call into the host platform with no state of its own.
package fileops

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// Info is the metadata subset callers care about.
type Info struct {
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// Stat returns metadata for path.
func Stat(fsys filesystem.ReadFS, path string) (Info, error) {
	fi, err := fsys.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Size:    fi.Size(),
		Mode:    fi.Mode(),
		ModTime: fi.ModTime(),
		IsDir:   fi.IsDir(),
	}, nil
}

// CopyFile copies src to dst, truncating dst if it exists.
func CopyFile(fsys filesystem.FullFileSystem, src, dst string) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	info, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}

// BackupStampFormat is the timestamp appended to backup copies.
const BackupStampFormat = "20060102-150405"

// BackupCopy copies src into dstDir under a timestamped name
// (<name>_<stamp><ext>) and returns the backup's path.
func BackupCopy(fsys filesystem.FullFileSystem, src, dstDir string, now time.Time) (string, error) {
	name := filepath.Base(src)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	dst := filepath.Join(dstDir, fmt.Sprintf("%s_%s%s", base, now.Format(BackupStampFormat), ext))
	if err := CopyFile(fsys, src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Search returns the names of entries in dir whose name contains substr,
// sorted by ReadDir order.
func Search(fsys filesystem.ReadFS, dir, substr string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		if strings.Contains(e.Name(), substr) {
			matches = append(matches, e.Name())
		}
	}
	return matches, nil
}
