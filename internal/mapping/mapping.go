package mapping

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/weaseltree/weaseltree/internal/pathmap"
	"github.com/weaseltree/weaseltree/internal/storage"
)

// currentVersion is written into every saved file.
const currentVersion = 1

// Entry maps one relative path to its branch and both absolute paths.
type Entry struct {
	Branch      string    `json:"branch"`
	WindowsPath string    `json:"windows_path"`
	WSLPath     string    `json:"wsl_path"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Store holds all worktree mappings, keyed by drive-relative path.
type Store struct {
	Version   int              `json:"version"`
	Worktrees map[string]Entry `json:"worktrees"`

	path string
}

// Load reads the store from path without locking.
// A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{Worktrees: map[string]Entry{}, path: path}

	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		return s, nil
	}
	if err := storage.LoadJSON(path, s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}
	if s.Worktrees == nil {
		s.Worktrees = map[string]Entry{}
	}
	if s.Version > currentVersion {
		return nil, fmt.Errorf("mapping file %s has version %d, this weaseltree understands up to %d", path, s.Version, currentVersion)
	}
	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Save writes the store atomically.
func (s *Store) Save() error {
	s.Version = currentVersion
	if err := storage.SaveJSON(s.path, s); err != nil {
		return fmt.Errorf("save mapping file: %w", err)
	}
	return nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.Worktrees)
}

// Get returns the entry for rel.
func (s *Store) Get(rel string) (Entry, bool) {
	e, ok := s.Worktrees[rel]
	return e, ok
}

// Put stores e under rel and stamps it.
func (s *Store) Put(rel string, e Entry) {
	e.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	s.Worktrees[rel] = e
}

// Delete removes rel. Returns false if it was not present.
func (s *Store) Delete(rel string) bool {
	if _, ok := s.Worktrees[rel]; !ok {
		return false
	}
	delete(s.Worktrees, rel)
	return true
}

// Rekey moves the entry stored under from to to.
func (s *Store) Rekey(from, to string) error {
	e, ok := s.Worktrees[from]
	if !ok {
		return fmt.Errorf("no mapping for %s", from)
	}
	if _, taken := s.Worktrees[to]; taken && from != to {
		return fmt.Errorf("mapping for %s already exists", to)
	}
	delete(s.Worktrees, from)
	s.Put(to, e)
	return nil
}

// Keys returns all relative paths, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.Worktrees))
	for k := range s.Worktrees {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FindByWSLPath returns the key of the entry whose WSL path is p.
func (s *Store) FindByWSLPath(p string) (string, bool) {
	for _, k := range s.Keys() {
		if pathmap.Same(s.Worktrees[k].WSLPath, p) {
			return k, true
		}
	}
	return "", false
}

// FindByWindowsPath returns the key of the entry whose Windows path is p.
func (s *Store) FindByWindowsPath(p string) (string, bool) {
	for _, k := range s.Keys() {
		if pathmap.Same(s.Worktrees[k].WindowsPath, p) {
			return k, true
		}
	}
	return "", false
}

// FindByBranch returns the keys of all entries on branch.
func (s *Store) FindByBranch(branch string) []string {
	var keys []string
	for _, k := range s.Keys() {
		if s.Worktrees[k].Branch == branch {
			keys = append(keys, k)
		}
	}
	return keys
}
