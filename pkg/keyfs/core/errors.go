package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error raised by the registry, the naming
// resolver, and the tree walkers wraps exactly one of these, so callers can
// branch with errors.Is without caring about the concrete type.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrInvalidStructure = errors.New("invalid structure")
)

// NotFoundError reports a key, alias, file, or directory that was required
// to exist but does not.
type NotFoundError struct {
	Kind string // "key", "alias", "file", "directory"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports an alias name colliding with an existing key or
// alias.
type ConflictError struct {
	Name   string
	Taken  string // what the name collided with: "key" or "alias"
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("conflict on %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("conflict: %q is already a registered %s", e.Name, e.Taken)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidModeError reports an unrecognized policy or mode string.
type InvalidModeError struct {
	Mode    string
	Allowed []string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q (allowed: %v)", e.Mode, e.Allowed)
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}

// InvalidStructureError reports a malformed folder spec, such as a group
// with no preceding sibling to attach to.
type InvalidStructureError struct {
	Reason string
}

func (e *InvalidStructureError) Error() string {
	return fmt.Sprintf("invalid folder spec: %s", e.Reason)
}

func (e *InvalidStructureError) Unwrap() error {
	return ErrInvalidStructure
}
