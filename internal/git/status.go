package git

import (
	"bytes"
	"fmt"
)

// StatusEntry is one line of porcelain status.
type StatusEntry struct {
	Index    byte   // X: staged state
	Worktree byte   // Y: unstaged state
	Path     string // slash-separated, relative to the checkout root
	OrigPath string // rename or copy source, else ""
}

// Code returns the two-letter status code ("M ", "??", ...).
func (e StatusEntry) Code() string {
	return string([]byte{e.Index, e.Worktree})
}

// Deleted reports whether the file is gone from the working tree.
func (e StatusEntry) Deleted() bool {
	return e.Index == 'D' || e.Worktree == 'D'
}

// Renamed reports whether the entry is a staged rename.
func (e StatusEntry) Renamed() bool {
	return e.Index == 'R'
}

// Untracked reports whether git does not track the file.
func (e StatusEntry) Untracked() bool {
	return e.Index == '?' && e.Worktree == '?'
}

// ParseStatus parses the output of "git status --porcelain -z".
// Each record is "XY path\0"; renames and copies are followed by
// "orig\0".
func ParseStatus(out []byte) ([]StatusEntry, error) {
	var entries []StatusEntry
	fields := bytes.Split(out, []byte{0})
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if len(f) == 0 {
			continue
		}
		if len(f) < 4 || f[2] != ' ' {
			return nil, fmt.Errorf("malformed status record %q", f)
		}
		e := StatusEntry{Index: f[0], Worktree: f[1], Path: string(f[3:])}
		if e.Index == 'R' || e.Index == 'C' {
			i++
			if i >= len(fields) || len(fields[i]) == 0 {
				return nil, fmt.Errorf("status record %q is missing its source path", f)
			}
			e.OrigPath = string(fields[i])
		}
		entries = append(entries, e)
	}
	return entries, nil
}
