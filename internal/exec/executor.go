// Package exec provides an abstraction over command execution for
// testability. Production code uses RealExecutor; tests inject a
// MockExecutor that returns pre-recorded responses, so units that drive
// the git binary can be tested without git installed.
package exec

import (
	"bytes"
	"context"
	"os/exec"
	"sync"
)

// CommandExecutor abstracts command execution.
type CommandExecutor interface {
	// Run executes a command in dir and returns stdout, stderr, and any
	// error. A non-zero exit is returned as an *exec.ExitError.
	Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error)
}

// RealExecutor executes commands using os/exec.
type RealExecutor struct{}

// NewRealExecutor returns a new RealExecutor.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

// Run executes a command and returns stdout, stderr, and any error.
func (e *RealExecutor) Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	return stdoutBuf.Bytes(), stderrBuf.Bytes(), err
}

// MockResponse defines the response for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// CommandMatcher reports whether a command invocation matches a rule.
type CommandMatcher func(dir, name string, args []string) bool

// mockRule pairs a matcher with its response.
type mockRule struct {
	match    CommandMatcher
	response MockResponse
}

// MockCall records a command invocation for verification.
type MockCall struct {
	Dir  string
	Name string
	Args []string
}

// MockExecutor returns pre-recorded responses for commands. Rules are
// matched in registration order; unmatched commands succeed with empty
// output, which keeps test setup focused on the interesting invocations.
type MockExecutor struct {
	mu    sync.Mutex
	rules []mockRule
	calls []MockCall
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddRule adds a matching rule with its response.
func (e *MockExecutor) AddRule(match CommandMatcher, response MockResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, mockRule{match: match, response: response})
}

// AddPrefixMatch adds a rule that matches an invocation of name whose
// arguments start with prefixArgs.
func (e *MockExecutor) AddPrefixMatch(name string, prefixArgs []string, response MockResponse) {
	e.AddRule(func(_, n string, a []string) bool {
		if n != name || len(a) < len(prefixArgs) {
			return false
		}
		for i, arg := range prefixArgs {
			if a[i] != arg {
				return false
			}
		}
		return true
	}, response)
}

// Run records the call and returns the first matching rule's response.
func (e *MockExecutor) Run(_ context.Context, dir string, name string, args ...string) ([]byte, []byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, MockCall{Dir: dir, Name: name, Args: args})

	for _, r := range e.rules {
		if r.match(dir, name, args) {
			return r.response.Stdout, r.response.Stderr, r.response.Err
		}
	}
	return nil, nil, nil
}

// Calls returns a copy of all recorded invocations.
func (e *MockExecutor) Calls() []MockCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]MockCall, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallsFor returns the recorded invocations of the given command name.
func (e *MockExecutor) CallsFor(name string) []MockCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []MockCall
	for _, c := range e.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
