// Package registry holds the process-local mapping from symbolic keys to
// file records, the alias table, and the set of temporary keys.
package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
)

// Class tags a record's lifecycle.
type Class string

const (
	ClassRegular   Class = "regular"
	ClassTemporary Class = "temporary"
	ClassLog       Class = "log"
)

// FileRecord is one registered file: a unique key and its absolute path.
type FileRecord struct {
	Key   string
	Path  string
	Class Class
}

// Registry is in-process mutable state with no persistence. A single mutex
// covers every public operation; intermediate states (mid alias resolution
// during a concurrent remove) are not otherwise safe.
type Registry struct {
	mu      sync.Mutex
	records map[string]FileRecord
	aliases map[string]string // alias name -> target key, single hop
	temp    map[string]struct{}
}

// New creates an empty registry. There is no package-level singleton;
// callers own their registry instance.
func New() *Registry {
	return &Registry{
		records: make(map[string]FileRecord),
		aliases: make(map[string]string),
		temp:    make(map[string]struct{}),
	}
}

// Register inserts or overwrites the record for key. Uniqueness of derived
// keys is the naming resolver's concern, not enforced here.
func (r *Registry) Register(key, path string, class Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = FileRecord{Key: key, Path: path, Class: class}
	if class == ClassTemporary {
		r.temp[key] = struct{}{}
	}
}

// Lookup returns the record for key, if any. No alias indirection.
func (r *Registry) Lookup(key string) (FileRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	return rec, ok
}

// ResolveKey maps an alias to its target key in a single hop, or returns
// the input unchanged. An unresolved key is reported as NotFound at the
// point of use, not here.
func (r *Registry) ResolveKey(nameOrAlias string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if target, ok := r.aliases[nameOrAlias]; ok {
		return target
	}
	return nameOrAlias
}

// AddAlias points alias at an existing key. An alias name must never
// collide with a key or another alias, and aliases are never chained.
func (r *Registry) AddAlias(alias, originalKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[originalKey]; !ok {
		return &core.NotFoundError{Kind: "key", Name: originalKey}
	}
	if _, ok := r.records[alias]; ok {
		return &core.ConflictError{Name: alias, Taken: "key"}
	}
	if _, ok := r.aliases[alias]; ok {
		return &core.ConflictError{Name: alias, Taken: "alias"}
	}
	r.aliases[alias] = originalKey
	return nil
}

// Remove deletes the record for key, drops it from the temporary set, and
// removes every alias targeting it.
func (r *Registry) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[key]; !ok {
		return &core.NotFoundError{Kind: "key", Name: key}
	}
	delete(r.records, key)
	delete(r.temp, key)
	for alias, target := range r.aliases {
		if target == key {
			delete(r.aliases, alias)
		}
	}
	return nil
}

// Rename moves the record for oldKey to newKey with its new path. Aliases
// that pointed at oldKey are retargeted to newKey in the same step, so they
// never dangle. newKey must not collide with an existing alias name.
func (r *Registry) Rename(oldKey, newKey, newPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[oldKey]
	if !ok {
		return &core.NotFoundError{Kind: "key", Name: oldKey}
	}
	if _, ok := r.aliases[newKey]; ok {
		return &core.ConflictError{Name: newKey, Taken: "alias"}
	}
	delete(r.records, oldKey)
	r.records[newKey] = FileRecord{Key: newKey, Path: newPath, Class: rec.Class}
	if _, wasTemp := r.temp[oldKey]; wasTemp {
		delete(r.temp, oldKey)
		r.temp[newKey] = struct{}{}
	}
	for alias, target := range r.aliases {
		if target == oldKey {
			r.aliases[alias] = newKey
		}
	}
	return nil
}

// TemporaryKeys returns the keys currently marked temporary, sorted for
// deterministic sweeps.
func (r *Registry) TemporaryKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.temp))
	for key := range r.temp {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Keys returns every registered key, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.records))
	for key := range r.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
