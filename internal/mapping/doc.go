// Package mapping persists the worktree mapping table.
//
// The table lives in a single JSON file in the Windows home directory
// (<windows home>/.weaseltree.json) so that both the Windows and the WSL
// side read the same data:
//
//	{
//	  "version": 1,
//	  "worktrees": {
//	    "r/foo/bar": {
//	      "branch": "feature-x",
//	      "windows_path": "/mnt/c/r/foo/bar",
//	      "wsl_path": "/home/me/r/foo/bar",
//	      "updated_at": "2026-10-17T12:00:00Z"
//	    }
//	  }
//	}
//
// Keys are paths relative to the drive root, always with forward slashes.
//
// # Concurrency
//
// Use [Open] for load-modify-save cycles. It holds an exclusive flock for
// the duration so two shells cannot interleave writes. Read-only commands
// use [Load].
//
// # Entry Lifecycle
//
// Entries are created by clone, updated by sync and by branch-change
// detection, and only deleted explicitly ("weaseltree fix --prune").
package mapping
