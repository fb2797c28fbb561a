// Package git runs git through a [Client] bound to one binary.
//
// weaseltree talks to the same repository through two binaries: "git" for
// the WSL checkout and "git.exe" (configurable) for the Windows checkout,
// so that Windows line endings, remotes and credential helpers apply on
// that side. Commands run with their working directory set to the checkout
// rather than with -C, because git.exe cannot interpret /mnt paths.
//
// All subprocesses go through [github.com/weaseltree/weaseltree/internal/cmd],
// which logs them and folds stderr into the returned error.
//
// # Status
//
// [Client.Status] parses "git status --porcelain -z --untracked-files=all"
// into [StatusEntry] values, including rename sources.
//
// # HEAD inspection
//
// [ReadHead] reads a checkout's HEAD with go-git, without a subprocess.
// It follows worktree .git files so it works on both sides.
package git
