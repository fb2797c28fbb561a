// Package errs provides sentinel errors and typed errors for weaseltree.
// Use errors.Is() and errors.As() to check for specific conditions.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotManaged indicates the directory is neither a drive path with a
	// mapping nor a registered WSL worktree.
	ErrNotManaged = errors.New("not a weaseltree-managed path")

	// ErrNoMapping indicates a drive path without a stored mapping.
	ErrNoMapping = errors.New("no mapping found")

	// ErrNotDetached indicates the Windows side still has a branch checked out.
	ErrNotDetached = errors.New("Windows side is not in detached HEAD")

	// ErrDetachedHead indicates HEAD is not on a branch where one is needed.
	ErrDetachedHead = errors.New("not on a branch (detached HEAD)")

	// ErrNotRepo indicates the directory is not a git repository.
	ErrNotRepo = errors.New("not a git repository")

	// ErrTargetNotWorktree indicates the WSL target exists but is not a checkout.
	ErrTargetNotWorktree = errors.New("target exists but is not a git worktree")

	// ErrWrongSide indicates a command was run from the side it does not support.
	ErrWrongSide = errors.New("command not available on this side")
)

// NoMappingError carries the relative path that has no mapping.
type NoMappingError struct {
	RelPath     string
	Suggestions []string
}

func (e *NoMappingError) Error() string {
	msg := fmt.Sprintf("no config found for %s\nRun 'weaseltree clone' first.", e.RelPath)
	if len(e.Suggestions) > 0 {
		msg += "\nDid you mean: " + strings.Join(e.Suggestions, ", ")
	}
	return msg
}

// Is returns true if the target error is ErrNoMapping
func (e *NoMappingError) Is(target error) bool {
	return target == ErrNoMapping
}

// NotManagedError carries the path that could not be resolved.
type NotManagedError struct {
	Path string
}

func (e *NotManagedError) Error() string {
	return fmt.Sprintf("not a weaseltree-managed path: %s", e.Path)
}

// Is returns true if the target error is ErrNotManaged
func (e *NotManagedError) Is(target error) bool {
	return target == ErrNotManaged
}

// CommandError represents a failed external process.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	line := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	return fmt.Sprintf("%s: %v", line, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
