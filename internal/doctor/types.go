package doctor

import (
	"github.com/weaseltree/weaseltree/internal/git"
)

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryMissing represents checkouts that are gone from disk.
	CategoryMissing IssueCategory = "missing"
	// CategoryDrift represents checkouts that no longer match their entry.
	CategoryDrift IssueCategory = "drift"
	// CategoryNote is informational; the entry still works.
	CategoryNote IssueCategory = "note"
)

// FixAction names what Fix does for an issue.
type FixAction string

const (
	ActionNone         FixAction = ""              // report only
	ActionUpdateBranch FixAction = "update_branch" // record the worktree's branch
	ActionDetach       FixAction = "detach"        // detach HEAD on the Windows side
	ActionPrune        FixAction = "prune"         // drop the entry
)

// Issue represents a problem detected by Check.
type Issue struct {
	Rel         string        // mapping key
	Description string        // human-readable description
	Hint        string        // what the user can do when there is no fix
	Action      FixAction     // what Fix would do
	Category    IssueCategory // issue category
	Value       string        // action argument (new branch)
}

// Fixable reports whether Fix can act on the issue.
func (i Issue) Fixable(prune bool) bool {
	switch i.Action {
	case ActionNone:
		return false
	case ActionPrune:
		return prune
	default:
		return true
	}
}

// Result is the outcome of fixing one issue.
type Result struct {
	Issue   Issue
	Fixed   bool
	Skipped bool
	Err     error
}

// Env is what checking and fixing need from the environment.
type Env struct {
	WSLHome    string
	WindowsGit *git.Client
}
