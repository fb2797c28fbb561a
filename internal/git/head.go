package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/weaseltree/weaseltree/internal/errs"
)

// Head describes what a checkout has checked out.
type Head struct {
	Branch string // "" when detached
	Hash   string
}

// Detached reports whether HEAD points at a commit instead of a branch.
func (h Head) Detached() bool {
	return h.Branch == ""
}

// Short returns the abbreviated commit hash.
func (h Head) Short() string {
	if len(h.Hash) > 7 {
		return h.Hash[:7]
	}
	return h.Hash
}

// ReadHead opens the checkout containing path and reports its HEAD.
func ReadHead(path string) (Head, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return Head{}, fmt.Errorf("%s: %w", path, errs.ErrNotRepo)
		}
		return Head{}, fmt.Errorf("open %s: %w", path, err)
	}

	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// unborn branch: HEAD is symbolic but has no commit yet
			sym, symErr := repo.Reference(plumbing.HEAD, false)
			if symErr == nil && sym.Type() == plumbing.SymbolicReference {
				return Head{Branch: sym.Target().Short()}, nil
			}
		}
		return Head{}, fmt.Errorf("read HEAD of %s: %w", path, err)
	}

	h := Head{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		h.Branch = ref.Name().Short()
	}
	return h, nil
}
