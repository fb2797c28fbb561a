// Package doctor diagnoses and repairs the worktree mappings.
//
// [Check] inspects every stored entry and reports issues:
//
//   - Missing worktrees: the WSL worktree, the Windows checkout, or both
//     are gone from disk.
//   - Drift: the WSL worktree switched branch, the Windows checkout has a
//     branch checked out instead of a detached HEAD, or the WSL worktree
//     lives outside the mirrored home layout.
//
// HEADs are read with go-git, so checking spawns no processes.
//
// [Fix] applies the repairable issues. Entries whose both sides are gone
// are only dropped when pruning is requested.
//
// # Usage
//
//	issues := doctor.Check(env, store)
//	results := doctor.Fix(ctx, env, store, issues, prune)
//	// save store under the mapping lock
package doctor
