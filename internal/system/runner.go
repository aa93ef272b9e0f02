// Package system wraps the external tooling this utility shells out to:
// dpkg for the installed-package listing and apt-get for the purge itself.
package system

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes an external command and returns its combined output.
// A fake implementation backs the tests.
type Runner interface {
	// Output runs the command and returns stdout, surfacing the exit code
	// in the error on failure.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Stream runs the command with stdout/stderr attached to w so the user
	// sees apt's own progress output.
	Stream(ctx context.Context, w io.Writer, env []string, name string, args ...string) error
}

// ExitError wraps a command failure with its exit code so callers can
// surface it without re-parsing exec errors.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return out, wrapExit(name, err)
	}
	return out, nil
}

func (execRunner) Stream(ctx context.Context, w io.Writer, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return wrapExit(name, err)
	}
	return nil
}

func wrapExit(name string, err error) error {
	if exit, ok := err.(*exec.ExitError); ok {
		return &ExitError{Command: name, Code: exit.ExitCode(), Err: err}
	}
	return fmt.Errorf("run %s: %w", name, err)
}
