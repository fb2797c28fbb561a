// Package resolve maps the current directory to a worktree mapping.
//
// A directory is one of three things: the Windows checkout (a drive path,
// /mnt/c/... or C:\...), the WSL worktree (below the WSL home), or
// unmanaged. [Resolve] lifts the directory to its checkout root and tries,
// in order:
//
//  1. Windows side by drive-relative path. An entry stored under another
//     key whose Windows path matches is moved to the new key.
//  2. WSL side by home-relative path.
//  3. WSL side by the stored WSL path.
//  4. WSL side by branch: the checked out branch matches exactly one entry
//     whose recorded WSL worktree no longer exists, so the worktree moved.
//
// On the WSL side a checked out branch that differs from the recorded one
// updates the entry.
//
// Every change made to the store is listed in [Location.Repairs]. The store
// is only modified in memory; callers holding the mapping lock save it.
package resolve
