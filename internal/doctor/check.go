package doctor

import (
	"fmt"
	"os"

	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/pathmap"
)

// Check reports every issue found in store, in key order.
func Check(env Env, store *mapping.Store) []Issue {
	var issues []Issue
	for _, rel := range store.Keys() {
		e, _ := store.Get(rel)
		issues = append(issues, checkEntry(env, rel, e)...)
	}
	return issues
}

func checkEntry(env Env, rel string, e mapping.Entry) []Issue {
	wslOK := isDir(e.WSLPath)
	winOK := isDir(e.WindowsPath)

	switch {
	case !wslOK && !winOK:
		return []Issue{{
			Rel:         rel,
			Category:    CategoryMissing,
			Description: "both the WSL worktree and the Windows checkout are gone",
			Action:      ActionPrune,
			Hint:        "run 'weaseltree fix --prune' to drop the entry",
		}}
	case !wslOK:
		return []Issue{{
			Rel:         rel,
			Category:    CategoryMissing,
			Description: fmt.Sprintf("WSL worktree missing: %s", e.WSLPath),
			Hint:        fmt.Sprintf("run 'weaseltree clone' in %s to recreate it", e.WindowsPath),
		}}
	case !winOK:
		return []Issue{{
			Rel:         rel,
			Category:    CategoryMissing,
			Description: fmt.Sprintf("Windows checkout missing: %s", e.WindowsPath),
			Hint:        "run 'weaseltree status' in the moved checkout to update the entry",
		}}
	}

	var issues []Issue

	if head, err := git.ReadHead(e.WSLPath); err != nil {
		issues = append(issues, Issue{
			Rel:         rel,
			Category:    CategoryDrift,
			Description: fmt.Sprintf("cannot read WSL worktree HEAD: %v", err),
		})
	} else if !head.Detached() && head.Branch != e.Branch {
		issues = append(issues, Issue{
			Rel:         rel,
			Category:    CategoryDrift,
			Description: fmt.Sprintf("WSL worktree is on '%s', entry says '%s'", head.Branch, e.Branch),
			Action:      ActionUpdateBranch,
			Value:       head.Branch,
		})
	}

	if head, err := git.ReadHead(e.WindowsPath); err != nil {
		issues = append(issues, Issue{
			Rel:         rel,
			Category:    CategoryDrift,
			Description: fmt.Sprintf("cannot read Windows checkout HEAD: %v", err),
		})
	} else if !head.Detached() {
		issues = append(issues, Issue{
			Rel:         rel,
			Category:    CategoryDrift,
			Description: fmt.Sprintf("Windows checkout is on branch '%s' instead of a detached HEAD", head.Branch),
			Action:      ActionDetach,
		})
	}

	// A moved worktree still resolves by its stored path, so this is a note.
	if target := pathmap.WSLTarget(env.WSLHome, rel); env.WSLHome != "" && !pathmap.Same(e.WSLPath, target) {
		issues = append(issues, Issue{
			Rel:         rel,
			Category:    CategoryNote,
			Description: fmt.Sprintf("WSL worktree %s is outside the mirrored layout (%s)", e.WSLPath, target),
			Hint:        fmt.Sprintf("nothing to fix; run 'git worktree move %s %s' to restore the layout", e.WSLPath, target),
		})
	}

	return issues
}

func isDir(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
