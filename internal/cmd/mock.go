package cmd

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
)

// ErrExit is a stand-in for a non-zero exit status in mocked responses.
var ErrExit = errors.New("exit status 1")

// Response is the canned result of a mocked command.
type Response struct {
	Stdout string
	Stderr string
	Err    error
}

// Matcher decides whether a rule applies to a command.
type Matcher func(dir, name string, args []string) bool

// Call records a command invocation for verification.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

type rule struct {
	match    Matcher
	response Response
}

// Mock returns pre-recorded responses for commands.
// Rules are matched in registration order; unmatched commands succeed with
// empty output.
type Mock struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

// NewMock creates an empty Mock.
func NewMock() *Mock {
	return &Mock{}
}

// On adds a rule with a custom matcher.
func (m *Mock) On(match Matcher, resp Response) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, rule{match: match, response: resp})
	return m
}

// OnExact adds a rule matching name and args exactly.
func (m *Mock) OnExact(name string, args []string, resp Response) *Mock {
	return m.On(func(_, n string, a []string) bool {
		return n == name && slices.Equal(a, args)
	}, resp)
}

// OnPrefix adds a rule matching name and a leading run of args.
func (m *Mock) OnPrefix(name string, prefix []string, resp Response) *Mock {
	return m.On(func(_, n string, a []string) bool {
		return n == name && len(a) >= len(prefix) && slices.Equal(a[:len(prefix)], prefix)
	}, resp)
}

// OnDir adds a rule matching a directory, name and args prefix.
func (m *Mock) OnDir(dir, name string, prefix []string, resp Response) *Mock {
	return m.On(func(d, n string, a []string) bool {
		return d == dir && n == name && len(a) >= len(prefix) && slices.Equal(a[:len(prefix)], prefix)
	}, resp)
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Called reports whether a command line starting with name and args ran.
func (m *Mock) Called(name string, args ...string) bool {
	want := strings.TrimSpace(name + " " + strings.Join(args, " "))
	for _, c := range m.Calls() {
		if strings.HasPrefix(c.String(), want) {
			return true
		}
	}
	return false
}

func (m *Mock) record(dir, name string, args []string) Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Dir: dir, Name: name, Args: slices.Clone(args)})
	for _, r := range m.rules {
		if r.match(dir, name, args) {
			return r.response
		}
	}
	return Response{}
}

// Capture implements Executor.
func (m *Mock) Capture(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	resp := m.record(dir, name, args)
	return []byte(resp.Stdout), []byte(resp.Stderr), resp.Err
}

// Attach implements Executor.
func (m *Mock) Attach(_ context.Context, dir string, stdio Stdio, name string, args ...string) error {
	resp := m.record(dir, name, args)
	if stdio.Out != nil && resp.Stdout != "" {
		_, _ = stdio.Out.Write([]byte(resp.Stdout))
	}
	if stdio.Err != nil && resp.Stderr != "" {
		_, _ = stdio.Err.Write([]byte(resp.Stderr))
	}
	return resp.Err
}

var (
	_ Executor = Real{}
	_ Executor = (*Mock)(nil)
)
