package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
)

// Action is what happened to one file.
type Action string

const (
	ActionCopied  Action = "copied"
	ActionDeleted Action = "deleted"
)

// FileResult records one copied or deleted file.
type FileResult struct {
	Path   string // slash-separated, relative to the checkout root
	Action Action
	New    bool // untracked in the source checkout
}

// Result summarizes a transfer.
type Result struct {
	Files    []FileResult
	Copied   int
	Deleted  int
	Excluded int
	Changes  int // status entries reported by git
	DryRun   bool
}

// Options tune CopyChanges.
type Options struct {
	DryRun  bool     // report what would happen without writing
	Exclude []string // basename globs or path segments to skip
}

type op struct {
	rel    string
	src    string // "" for deletions
	dst    string
	action Action
	status string // porcelain code of the entry that produced the op
	fresh  bool
}

// CopyChanges mirrors the uncommitted changes of the checkout at src into
// dst. g runs git status in src.
func CopyChanges(ctx context.Context, g *git.Client, src, dst string, opts Options) (*Result, error) {
	entries, err := g.Status(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	res := &Result{Changes: len(entries), DryRun: opts.DryRun}
	ops, err := plan(entries, src, dst, opts, res)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	for _, o := range ops {
		if !opts.DryRun {
			if err := apply(o); err != nil {
				return res, fmt.Errorf("%s %s: %w", o.action, o.rel, err)
			}
		}
		l.Debug("transfer", "file", o.rel, "action", string(o.action), "status", o.status, "dry_run", opts.DryRun)
		res.Files = append(res.Files, FileResult{Path: o.rel, Action: o.action, New: o.fresh})
		switch o.action {
		case ActionCopied:
			res.Copied++
		case ActionDeleted:
			res.Deleted++
		}
	}
	return res, nil
}

func plan(entries []git.StatusEntry, src, dst string, opts Options, res *Result) ([]op, error) {
	var ops []op

	del := func(rel, status string) error {
		target, err := within(dst, rel)
		if err != nil {
			return err
		}
		if exists(target) {
			ops = append(ops, op{rel: rel, dst: target, action: ActionDeleted, status: status})
		}
		return nil
	}

	for _, e := range entries {
		if matchesExclude(e.Path, opts.Exclude) {
			res.Excluded++
			continue
		}

		if e.Deleted() {
			if err := del(e.Path, e.Code()); err != nil {
				return nil, err
			}
			continue
		}

		from, err := within(src, e.Path)
		if err != nil {
			return nil, err
		}
		to, err := within(dst, e.Path)
		if err != nil {
			return nil, err
		}
		if info, err := os.Stat(from); err != nil || !info.Mode().IsRegular() {
			// gone since status ran, or a directory such as a submodule
			continue
		}
		ops = append(ops, op{rel: e.Path, src: from, dst: to, action: ActionCopied, status: e.Code(), fresh: e.Untracked()})

		if e.Renamed() && e.OrigPath != "" {
			if err := del(e.OrigPath, e.Code()); err != nil {
				return nil, err
			}
		}
	}
	return ops, nil
}

func apply(o op) error {
	switch o.action {
	case ActionCopied:
		return CopyFile(o.src, o.dst)
	case ActionDeleted:
		if err := os.Remove(o.dst); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", o.action)
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
