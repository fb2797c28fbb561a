package doctor

import (
	"context"
	"fmt"

	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/ui/styles"
)

// Summary counts entries and issues for PrintIssues.
type Summary struct {
	Entries int
	Healthy int
	Missing int
	Drift   int
	Notes   int
}

// Summarize counts issues per category. An entry with several issues
// counts once as unhealthy; notes do not make an entry unhealthy.
func Summarize(entries int, issues []Issue) Summary {
	s := Summary{Entries: entries}
	bad := make(map[string]bool)
	for _, i := range issues {
		switch i.Category {
		case CategoryMissing:
			s.Missing++
			bad[i.Rel] = true
		case CategoryDrift:
			s.Drift++
			bad[i.Rel] = true
		case CategoryNote:
			s.Notes++
		}
	}
	s.Healthy = entries - len(bad)
	return s
}

// PrintIssues prints the summary and the issues grouped by category.
func PrintIssues(ctx context.Context, entries int, issues []Issue) {
	out := output.FromContext(ctx)
	s := Summarize(entries, issues)

	out.Printf("  %s %d of %d mappings healthy\n", styles.OKSymbol(), s.Healthy, s.Entries)
	if s.Missing > 0 {
		out.Printf("  %s %d missing checkouts\n", styles.WarnSymbol(), s.Missing)
	}
	if s.Drift > 0 {
		out.Printf("  %s %d drifted entries\n", styles.WarnSymbol(), s.Drift)
	}

	if s.Missing+s.Drift == 0 {
		out.Println("\nNo issues found")
	}

	names := map[IssueCategory]string{
		CategoryMissing: "Missing checkouts",
		CategoryDrift:   "Drift",
		CategoryNote:    "Notes",
	}
	for _, cat := range []IssueCategory{CategoryMissing, CategoryDrift, CategoryNote} {
		header := false
		for _, i := range issues {
			if i.Category != cat {
				continue
			}
			if !header {
				out.Printf("\n%s:\n", names[cat])
				header = true
			}
			out.Printf("  • %s: %s\n", i.Rel, i.Description)
			if i.Hint != "" {
				out.Printf("      %s\n", i.Hint)
			}
		}
	}
}

// PrintResults prints one line per result and a closing count.
func PrintResults(ctx context.Context, results []Result) {
	out := output.FromContext(ctx)
	var fixed, failed int
	for _, r := range results {
		switch {
		case r.Skipped:
			continue
		case r.Err != nil:
			failed++
			out.Mark(styles.FailSymbol(), r.Issue.Rel, r.Err.Error())
		default:
			fixed++
			out.Mark(styles.OKSymbol(), r.Issue.Rel, describe(r.Issue))
		}
	}

	if failed > 0 {
		out.Printf("\nFixed %d issues, %d failed.\n", fixed, failed)
	} else {
		out.Printf("\nFixed %d issues.\n", fixed)
	}
}

func describe(i Issue) string {
	switch i.Action {
	case ActionUpdateBranch:
		return fmt.Sprintf("recorded branch '%s'", i.Value)
	case ActionDetach:
		return "detached Windows HEAD"
	case ActionPrune:
		return "dropped entry"
	default:
		return string(i.Action)
	}
}

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
