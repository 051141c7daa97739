// Package naming decides final paths for new files when the desired path
// may already be taken, and derives the registry key for the result.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// Policy governs what happens when a target file path already exists.
type Policy string

const (
	// Preserve keeps an existing file untouched, contents included.
	Preserve Policy = "preserve"
	// Overwrite always truncates the target.
	Overwrite Policy = "overwrite"
	// Unique appends a numeric suffix until an unused path is found.
	Unique Policy = "unique"
)

// ParsePolicy validates a naming-policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Preserve, Overwrite, Unique:
		return Policy(s), nil
	}
	return "", &core.InvalidModeError{
		Mode:    s,
		Allowed: []string{string(Preserve), string(Overwrite), string(Unique)},
	}
}

// Resolve decides the final path for a desired file path under a policy.
// writeEmpty reports whether the caller must (re)write an empty file at the
// returned path; when false the existing file is kept as-is.
func Resolve(fsys filesystem.ReadFS, desired string, policy Policy) (finalPath string, writeEmpty bool, err error) {
	if _, err := ParsePolicy(string(policy)); err != nil {
		return "", false, err
	}
	switch policy {
	case Overwrite:
		return desired, true, nil
	case Preserve:
		if filesystem.Exists(fsys, desired) {
			return desired, false, nil
		}
		return desired, true, nil
	default: // Unique
		if !filesystem.Exists(fsys, desired) {
			return desired, true, nil
		}
		dir := filepath.Dir(desired)
		base, ext := splitExt(filepath.Base(desired))
		for n := 1; ; n++ {
			candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
			if !filesystem.Exists(fsys, candidate) {
				return candidate, true, nil
			}
		}
	}
}

// KeyFor derives the registry key for a resolved path: the base name
// without its extension, numeric suffix included (report_2.txt -> report_2).
func KeyFor(path string) string {
	base, _ := splitExt(filepath.Base(path))
	return base
}

func splitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}
