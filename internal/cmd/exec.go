package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/output"
)

// Stdio holds the streams attached to an interactive command.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Executor runs external processes.
// Production code uses Real; tests inject a Mock.
type Executor interface {
	// Capture runs a command and returns its stdout and stderr.
	Capture(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)

	// Attach runs a command with the given streams connected.
	Attach(ctx context.Context, dir string, stdio Stdio, name string, args ...string) error
}

// Real executes commands using os/exec.
type Real struct{}

// Capture implements Executor.
func (Real) Capture(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Attach implements Executor.
func (Real) Attach(ctx context.Context, dir string, stdio Stdio, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = stdio.In
	c.Stdout = stdio.Out
	c.Stderr = stdio.Err
	return c.Run()
}

type ctxKey struct{}

// WithExecutor attaches an executor to the context.
func WithExecutor(ctx context.Context, e Executor) context.Context {
	return context.WithValue(ctx, ctxKey{}, e)
}

// FromContext returns the executor in ctx, or Real if none is attached.
func FromContext(ctx context.Context) Executor {
	if e, ok := ctx.Value(ctxKey{}).(Executor); ok {
		return e
	}
	return Real{}
}

// RunContext executes a command and returns stderr in the error if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in the
// error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	stdout, stderr, err := FromContext(ctx).Capture(ctx, dir, name, args...)
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, &errs.CommandError{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return stdout, nil
}

// StreamContext executes a command with stdin attached, stdout going to the
// context's printer and stderr to the logger's writer. Used for commands
// whose progress or prompts the user must see (push, fetch, run).
func StreamContext(ctx context.Context, dir, name string, args ...string) error {
	stdio := Stdio{
		In:  os.Stdin,
		Out: output.FromContext(ctx).Writer(),
		Err: log.FromContext(ctx).Writer(),
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := FromContext(ctx).Attach(ctx, dir, stdio, name, args...)
	done(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return &errs.CommandError{Name: name, Args: args, Err: err}
	}
	return nil
}
