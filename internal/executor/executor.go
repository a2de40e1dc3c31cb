package executor

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Result is what a finished command reported back.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	return string(r.Stdout) + string(r.Stderr)
}

// CommandExecutor is an interface for executing system commands.
//
// A non-zero exit status is not an error: it is reported in Result.ExitCode.
// The error return is reserved for commands that could not be started.
type CommandExecutor interface {
	Run(name string, args ...string) (Result, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Run executes the command and captures its exit status and output streams.
func (e *SystemExecutor) Run(name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return res, nil
}

// Split parses a shell-style command line such as "systemctl reload nginx"
// into a program name and its arguments.
func Split(line string) (string, []string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return "", nil, fmt.Errorf("invalid command %q: %w", line, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("empty command")
	}
	return words[0], words[1:], nil
}

// RunLine splits line and runs it through e.
func RunLine(e CommandExecutor, line string) (Result, error) {
	name, args, err := Split(line)
	if err != nil {
		return Result{}, err
	}
	return e.Run(name, args...)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	RunFunc func(name string, args ...string) (Result, error)
	Calls   []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// String renders the call as a command line.
func (c CommandCall) String() string {
	return strings.TrimSpace(c.Name + " " + shellquote.Join(c.Args...))
}

// Run records the call and invokes the mock function if set
func (m *MockExecutor) Run(name string, args ...string) (Result, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return Result{}, nil
}

// CallCount returns how many recorded calls match the given command line.
func (m *MockExecutor) CallCount(line string) int {
	n := 0
	for _, c := range m.Calls {
		if c.String() == line {
			n++
		}
	}
	return n
}
