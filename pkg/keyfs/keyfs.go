// Package keyfs is a process-local registry that lets callers refer to
// files by short symbolic keys instead of full paths, with naming policies
// for collisions, aliasing, and automatic cleanup of temporary entries at
// shutdown. Bulk directory work goes through the tree subpackage's folder
// specs.
package keyfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gammazero/toposort"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
	"github.com/arthur-debert/keyfs/pkg/keyfs/fileops"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
	"github.com/arthur-debert/keyfs/pkg/keyfs/lifecycle"
	"github.com/arthur-debert/keyfs/pkg/keyfs/naming"
	"github.com/arthur-debert/keyfs/pkg/keyfs/registry"
	"github.com/arthur-debert/keyfs/pkg/keyfs/tree"
)

// FilePerm is the mode used for files the registry creates.
const FilePerm fs.FileMode = 0644

// KeyFS owns a registry, the filesystem it acts on, and the shutdown hook
// that sweeps temporary entries. All operations are synchronous; the
// registry state is guarded internally so concurrent callers are safe.
type KeyFS struct {
	fsys    filesystem.FullFileSystem
	reg     *registry.Registry
	walker  *tree.Walker
	hook    *lifecycle.Hook
	logger  zerolog.Logger
	tempDir string
}

// Option configures a KeyFS instance.
type Option func(*KeyFS)

// WithFileSystem replaces the OS-backed filesystem, e.g. with a
// filesystem.TestFileSystem.
func WithFileSystem(fsys filesystem.FullFileSystem) Option {
	return func(k *KeyFS) { k.fsys = fsys }
}

// WithLogger replaces the default logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(k *KeyFS) { k.logger = logger }
}

// WithTempDir sets the directory for unnamed temporary files.
func WithTempDir(dir string) Option {
	return func(k *KeyFS) { k.tempDir = dir }
}

// New creates a KeyFS over the OS filesystem with default settings.
func New(opts ...Option) *KeyFS {
	k := &KeyFS{
		fsys:    filesystem.NewOSFileSystem(),
		logger:  DefaultLogger(),
		tempDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(k)
	}
	k.reg = registry.New()
	k.walker = tree.NewWalker(k.fsys, k.logger)
	k.hook = lifecycle.NewHook(k.SweepTemporary)
	return k
}

// Registry exposes the underlying registry, mostly for inspection in tests.
func (k *KeyFS) Registry() *registry.Registry {
	return k.reg
}

// --- file creation ---

func (k *KeyFS) createFile(path string, policy naming.Policy, class registry.Class) (string, error) {
	final, writeEmpty, err := naming.Resolve(k.fsys, path, policy)
	if err != nil {
		return "", err
	}
	if writeEmpty {
		if err := k.fsys.WriteFile(final, nil, FilePerm); err != nil {
			return "", fmt.Errorf("create %s: %w", final, err)
		}
	}
	key := naming.KeyFor(final)
	k.reg.Register(key, final, class)
	k.logger.Debug().
		Str("key", key).
		Str("path", final).
		Str("class", string(class)).
		Msg("registered file")
	return key, nil
}

// CreateFile creates (or adopts, under the preserve policy) a file at path
// and registers it. Returns the derived key.
func (k *KeyFS) CreateFile(path string, policy naming.Policy) (string, error) {
	return k.createFile(path, policy, registry.ClassRegular)
}

// CreateTempFile is CreateFile with the temporary class: the entry is
// deleted by the shutdown sweep. An empty path derives a uuid-named file in
// the temp directory.
func (k *KeyFS) CreateTempFile(path string, policy naming.Policy) (string, error) {
	if path == "" {
		path = filepath.Join(k.tempDir, fmt.Sprintf("tmp_%s.txt", uuid.NewString()))
	}
	return k.createFile(path, policy, registry.ClassTemporary)
}

// CreateLogFile creates a log file in dir named per the log naming mode
// (date or increment) and registers it with the log class.
func (k *KeyFS) CreateLogFile(dir string, mode naming.LogMode) (string, error) {
	name, err := naming.LogName(k.fsys, dir, mode, time.Now())
	if err != nil {
		return "", err
	}
	return k.createFile(filepath.Join(dir, name), naming.Unique, registry.ClassLog)
}

// --- key operations ---

// record resolves an alias (single hop) and looks up the record.
func (k *KeyFS) record(nameOrAlias string) (registry.FileRecord, error) {
	key := k.reg.ResolveKey(nameOrAlias)
	rec, ok := k.reg.Lookup(key)
	if !ok {
		return registry.FileRecord{}, &core.NotFoundError{Kind: "key", Name: key}
	}
	return rec, nil
}

// Path returns the absolute path registered for a key or alias.
func (k *KeyFS) Path(nameOrAlias string) (string, error) {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return "", err
	}
	return rec.Path, nil
}

// Read returns the contents of the file behind a key or alias.
func (k *KeyFS) Read(nameOrAlias string) ([]byte, error) {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return nil, err
	}
	return k.fsys.ReadFile(rec.Path)
}

// Write replaces the contents of the file behind a key or alias.
func (k *KeyFS) Write(nameOrAlias string, data []byte) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	return k.fsys.WriteFile(rec.Path, data, FilePerm)
}

// Append appends to the file behind a key or alias.
func (k *KeyFS) Append(nameOrAlias string, data []byte) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	return k.fsys.AppendFile(rec.Path, data, FilePerm)
}

// AddAlias points alias at an existing key in a single hop.
func (k *KeyFS) AddAlias(alias, originalKey string) error {
	return k.reg.AddAlias(alias, originalKey)
}

// Remove deletes the file behind a key or alias and drops its record,
// temporary marking, and any aliases targeting it. A key whose file is
// already absent from disk is NotFound.
func (k *KeyFS) Remove(nameOrAlias string) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	if !filesystem.Exists(k.fsys, rec.Path) {
		return &core.NotFoundError{Kind: "file", Name: rec.Path}
	}
	if err := k.fsys.Remove(rec.Path); err != nil {
		return fmt.Errorf("remove %s: %w", rec.Path, err)
	}
	return k.reg.Remove(rec.Key)
}

// Rename moves the underlying file to newName within its directory and
// re-registers the record under the key derived from newName. Aliases that
// pointed at the old key follow the rename.
func (k *KeyFS) Rename(nameOrAlias, newName string) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	newPath := filepath.Join(filepath.Dir(rec.Path), newName)
	if err := k.fsys.Rename(rec.Path, newPath); err != nil {
		return fmt.Errorf("rename %s: %w", rec.Path, err)
	}
	return k.reg.Rename(rec.Key, naming.KeyFor(newPath), newPath)
}

// --- collaborator pass-throughs ---

// Stat returns metadata for the file behind a key or alias.
func (k *KeyFS) Stat(nameOrAlias string) (fileops.Info, error) {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return fileops.Info{}, err
	}
	return fileops.Stat(k.fsys, rec.Path)
}

// Copy copies the file behind a key or alias to dst. The copy is not
// registered.
func (k *KeyFS) Copy(nameOrAlias, dst string) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	return fileops.CopyFile(k.fsys, rec.Path, dst)
}

// Move moves the file behind a key or alias to dst and updates its record
// in place; the key is unchanged.
func (k *KeyFS) Move(nameOrAlias, dst string) error {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return err
	}
	if err := k.fsys.Rename(rec.Path, dst); err != nil {
		return fmt.Errorf("move %s: %w", rec.Path, err)
	}
	return k.reg.Rename(rec.Key, rec.Key, dst)
}

// Backup copies the file behind a key or alias into dstDir under a
// timestamped name and returns the backup path. The backup is not
// registered.
func (k *KeyFS) Backup(nameOrAlias, dstDir string) (string, error) {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return "", err
	}
	return fileops.BackupCopy(k.fsys, rec.Path, dstDir, time.Now())
}

// Search returns entry names in dir containing substr.
func (k *KeyFS) Search(dir, substr string) ([]string, error) {
	return fileops.Search(k.fsys, dir, substr)
}

// Compress streams the file behind a key or alias through gzip to dst,
// asynchronously. This is the sole asynchronous operation.
func (k *KeyFS) Compress(nameOrAlias, dst string) (*fileops.Future, error) {
	rec, err := k.record(nameOrAlias)
	if err != nil {
		return nil, err
	}
	return fileops.Compress(k.fsys, rec.Path, dst), nil
}

// --- tree operations ---

// CreateTree creates the directory subtree described by spec under base.
// The registry is not involved; base must already exist.
func (k *KeyFS) CreateTree(base string, spec []tree.Node) error {
	return k.walker.Create(base, spec)
}

// DeleteTree deletes the subtree described by spec under base using the
// mode-based grammar.
func (k *KeyFS) DeleteTree(base string, spec []tree.Node, mode tree.Mode) error {
	return k.walker.Delete(base, spec, mode)
}

// DeleteTreeLegacy deletes using the wildcard dialect.
func (k *KeyFS) DeleteTreeLegacy(base string, spec []tree.Node) error {
	return k.walker.DeleteLegacy(base, spec)
}

// --- lifecycle ---

// SweepTemporary removes every temporary entry, nested paths before their
// parents, skipping entries already gone from disk. Safe to call more than
// once; entries already removed are dropped without raising.
func (k *KeyFS) SweepTemporary() {
	keys := k.reg.TemporaryKeys()
	if len(keys) == 0 {
		return
	}
	k.logger.Info().Int("count", len(keys)).Msg("sweeping temporary entries")
	for _, key := range k.sweepOrder(keys) {
		if err := k.Remove(key); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// Already gone from disk; drop the stale record so the
				// temporary set still empties.
				_ = k.reg.Remove(key)
				k.logger.Debug().Str("key", key).Msg("temporary entry already removed")
				continue
			}
			k.logger.Warn().Err(err).Str("key", key).Msg("failed to remove temporary entry")
		}
	}
}

// sweepOrder topologically orders temporary keys so that entries nested
// under another entry's path are removed before it.
func (k *KeyFS) sweepOrder(keys []string) []string {
	paths := make(map[string]string, len(keys))
	for _, key := range keys {
		if rec, ok := k.reg.Lookup(key); ok {
			paths[key] = rec.Path
		}
	}
	var edges []toposort.Edge
	inEdge := make(map[string]bool)
	for _, outer := range keys {
		for _, inner := range keys {
			if outer == inner {
				continue
			}
			// Edge is [2]interface{} where element 0 comes before element 1,
			// so the nested entry precedes the one it sits under.
			if strings.HasPrefix(paths[inner], paths[outer]+string(filepath.Separator)) {
				edges = append(edges, toposort.Edge{inner, outer})
				inEdge[inner] = true
				inEdge[outer] = true
			}
		}
	}
	ordered := make([]string, 0, len(keys))
	if len(edges) > 0 {
		sorted, err := toposort.Toposort(edges)
		if err != nil {
			k.logger.Warn().Err(err).Msg("sweep ordering failed, falling back to key order")
			return keys
		}
		for _, id := range sorted {
			ordered = append(ordered, id.(string))
		}
	}
	for _, key := range keys {
		if !inEdge[key] {
			ordered = append(ordered, key)
		}
	}
	return ordered
}

// ShutdownHook returns the hook that sweeps temporary entries; it runs at
// most once no matter how it is triggered.
func (k *KeyFS) ShutdownHook() *lifecycle.Hook {
	return k.hook
}

// HandleShutdownSignals installs the sweep on the given signals. The sweep
// completes synchronously before the process exits.
func (k *KeyFS) HandleShutdownSignals(sigs ...os.Signal) (stop func()) {
	return k.hook.HandleSignals(sigs...)
}

// Close runs the shutdown sweep if it has not run yet.
func (k *KeyFS) Close() error {
	k.hook.Run()
	return nil
}
