// Package cmd runs external processes for weaseltree.
//
// Every git, git.exe, cmd.exe and wslpath invocation goes through this
// package so that stderr ends up in the returned error, the context cancels
// the child process, and --verbose can show each command with its duration.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
//	if err != nil {
//	    // err is an *errs.CommandError whose message is git's stderr
//	}
//
//	// push progress and credential prompts must reach the terminal:
//	err = cmd.StreamContext(ctx, winPath, "git.exe", "push", "origin", branch)
//
// # Testing
//
// The [Executor] travels in the context. Tests attach a [Mock] with
// [WithExecutor] and register canned responses:
//
//	m := cmd.NewMock().
//	    OnPrefix("git", []string{"rev-parse", "--abbrev-ref"}, cmd.Response{Stdout: "HEAD\n"})
//	ctx = cmd.WithExecutor(ctx, m)
package cmd
