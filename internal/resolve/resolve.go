package resolve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/pathmap"
)

// Side identifies which checkout a directory belongs to.
type Side int

const (
	SideWindows Side = iota + 1
	SideWSL
)

func (s Side) String() string {
	switch s {
	case SideWindows:
		return "windows"
	case SideWSL:
		return "wsl"
	default:
		return "unknown"
	}
}

// RepairKind names what a repair changed.
type RepairKind string

const (
	RepairRekey       RepairKind = "rekey"        // entry moved to a new relative path
	RepairWindowsPath RepairKind = "windows_path" // Windows checkout moved or changed drive
	RepairWSLPath     RepairKind = "wsl_path"     // WSL worktree moved
	RepairBranch      RepairKind = "branch"       // WSL worktree switched branch
)

// Repair records one change made to the store during resolution.
type Repair struct {
	Kind RepairKind
	Rel  string
	From string
	To   string
}

func (r Repair) String() string {
	switch r.Kind {
	case RepairRekey:
		return fmt.Sprintf("moved mapping %s to %s", r.From, r.To)
	case RepairBranch:
		return fmt.Sprintf("updated branch of %s from '%s' to '%s'", r.Rel, r.From, r.To)
	default:
		return fmt.Sprintf("updated %s of %s from %s to %s", r.Kind, r.Rel, r.From, r.To)
	}
}

// Env is what resolution needs from the environment.
type Env struct {
	WSLHome string
	Git     *git.Client // WSL-side git
}

// Location is a resolved directory.
type Location struct {
	Side    Side
	Rel     string        // key in the store
	Dir     string        // checkout root the directory belongs to
	Entry   mapping.Entry // entry after repairs
	Repairs []Repair
}

// Changed reports whether resolution modified the store.
func (l *Location) Changed() bool {
	return len(l.Repairs) > 0
}

// Counterpart returns the checkout on the other side.
func (l *Location) Counterpart() string {
	if l.Side == SideWindows {
		return l.Entry.WSLPath
	}
	return l.Entry.WindowsPath
}

// Resolve finds the mapping for cwd, repairing stale entries in store.
func Resolve(ctx context.Context, env Env, store *mapping.Store, cwd string) (*Location, error) {
	top := Toplevel(ctx, env.Git, cwd)
	l := log.FromContext(ctx)

	if rel, ok := pathmap.RelativeFromDrive(top); ok {
		loc, err := resolveWindows(store, rel, top)
		if err != nil {
			return nil, err
		}
		l.Debug("resolved", "side", loc.Side, "rel", loc.Rel, "repairs", len(loc.Repairs))
		return loc, nil
	}

	loc := resolveWSL(ctx, env, store, top)
	if loc == nil {
		return nil, &errs.NotManagedError{Path: cwd}
	}
	l.Debug("resolved", "side", loc.Side, "rel", loc.Rel, "repairs", len(loc.Repairs))
	return loc, nil
}

// Toplevel returns the checkout root containing dir, or dir itself when it
// is not inside a checkout.
func Toplevel(ctx context.Context, g *git.Client, dir string) string {
	if top, err := g.Toplevel(ctx, dir); err == nil && top != "" {
		return filepath.Clean(filepath.FromSlash(top))
	}
	return filepath.Clean(dir)
}

func resolveWindows(store *mapping.Store, rel, top string) (*Location, error) {
	loc := &Location{Side: SideWindows, Rel: rel, Dir: top}

	e, ok := store.Get(rel)
	if !ok {
		from, found := store.FindByWindowsPath(top)
		if !found {
			return nil, &errs.NoMappingError{RelPath: rel, Suggestions: Suggest(store, rel)}
		}
		if err := store.Rekey(from, rel); err != nil {
			return nil, err
		}
		loc.Repairs = append(loc.Repairs, Repair{Kind: RepairRekey, Rel: rel, From: from, To: rel})
		e, _ = store.Get(rel)
	}

	if !pathmap.Same(e.WindowsPath, top) {
		loc.Repairs = append(loc.Repairs, Repair{Kind: RepairWindowsPath, Rel: rel, From: e.WindowsPath, To: top})
		e.WindowsPath = top
		store.Put(rel, e)
	}

	loc.Entry = e
	return loc, nil
}

func resolveWSL(ctx context.Context, env Env, store *mapping.Store, top string) *Location {
	branch := func() string {
		b, err := env.Git.CurrentBranch(ctx, top)
		if err != nil {
			return ""
		}
		return b
	}

	loc := &Location{Side: SideWSL, Dir: top}

	switch {
	case lookupHome(store, env.WSLHome, top, loc):
	case lookupWSLPath(store, top, loc):
	default:
		b := branch()
		if b == "" || !lookupBranch(ctx, env.Git, store, b, top, loc) {
			return nil
		}
		return loc
	}

	if !pathmap.Same(loc.Entry.WSLPath, top) {
		loc.Repairs = append(loc.Repairs, Repair{Kind: RepairWSLPath, Rel: loc.Rel, From: loc.Entry.WSLPath, To: top})
		loc.Entry.WSLPath = top
		store.Put(loc.Rel, loc.Entry)
	}

	if b := branch(); b != "" && b != loc.Entry.Branch {
		loc.Repairs = append(loc.Repairs, Repair{Kind: RepairBranch, Rel: loc.Rel, From: loc.Entry.Branch, To: b})
		loc.Entry.Branch = b
		store.Put(loc.Rel, loc.Entry)
	}
	return loc
}

func lookupHome(store *mapping.Store, home, top string, loc *Location) bool {
	rel, ok := pathmap.RelativeFromHome(home, top)
	if !ok {
		return false
	}
	e, ok := store.Get(rel)
	if !ok {
		return false
	}
	loc.Rel, loc.Entry = rel, e
	return true
}

func lookupWSLPath(store *mapping.Store, top string, loc *Location) bool {
	rel, ok := store.FindByWSLPath(top)
	if !ok {
		return false
	}
	loc.Rel = rel
	loc.Entry, _ = store.Get(rel)
	return true
}

// lookupBranch matches a worktree that was moved: exactly one entry on
// branch whose recorded WSL path is gone and whose Windows checkout owns
// the repository top belongs to.
func lookupBranch(ctx context.Context, g *git.Client, store *mapping.Store, branch, top string, loc *Location) bool {
	common, err := g.CommonDir(ctx, top)
	if err != nil || common == "" {
		return false
	}

	var stale []string
	for _, rel := range store.FindByBranch(branch) {
		e, _ := store.Get(rel)
		if exists(e.WSLPath) || e.WindowsPath == "" {
			continue
		}
		if pathmap.Same(common, filepath.Join(e.WindowsPath, ".git")) {
			stale = append(stale, rel)
		}
	}
	if len(stale) != 1 {
		return false
	}

	rel := stale[0]
	e, _ := store.Get(rel)
	loc.Rel = rel
	loc.Repairs = append(loc.Repairs, Repair{Kind: RepairWSLPath, Rel: rel, From: e.WSLPath, To: top})
	e.WSLPath = top
	store.Put(rel, e)
	loc.Entry = e
	return true
}

func exists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
