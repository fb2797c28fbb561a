package doctor

import (
	"context"
	"fmt"

	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
)

// Fix applies the fixable issues to store and the Windows checkouts.
// Entries are only dropped when prune is set. The store is modified in
// memory; the caller saves it.
func Fix(ctx context.Context, env Env, store *mapping.Store, issues []Issue, prune bool) []Result {
	results := make([]Result, 0, len(issues))
	for _, issue := range issues {
		if !issue.Fixable(prune) {
			results = append(results, Result{Issue: issue, Skipped: true})
			continue
		}
		err := fixIssue(ctx, env, store, issue)
		if err != nil {
			log.FromContext(ctx).Debug("fix failed", "rel", issue.Rel, "action", string(issue.Action), "err", err)
		}
		results = append(results, Result{Issue: issue, Fixed: err == nil, Err: err})
	}
	return results
}

func fixIssue(ctx context.Context, env Env, store *mapping.Store, issue Issue) error {
	e, ok := store.Get(issue.Rel)
	if !ok {
		return fmt.Errorf("no mapping for %s", issue.Rel)
	}

	switch issue.Action {
	case ActionUpdateBranch:
		e.Branch = issue.Value
		store.Put(issue.Rel, e)
		return nil

	case ActionDetach:
		if env.WindowsGit == nil {
			return fmt.Errorf("no Windows git configured")
		}
		return env.WindowsGit.DetachHead(ctx, e.WindowsPath)

	case ActionPrune:
		store.Delete(issue.Rel)
		return nil

	default:
		return fmt.Errorf("issue %q has no fix", issue.Description)
	}
}
