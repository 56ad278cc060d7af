// Package subproc runs external commands and captures their output.
package subproc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
)

// Result holds the outcome of a finished command
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs a command in a working directory.
// It is the seam tests use to stand in for the build tool.
type Runner interface {
	Run(ctx context.Context, cwd string, argv []string) (*Result, error)
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context, cwd string, argv []string) (*Result, error)

// Run calls f
func (f RunnerFunc) Run(ctx context.Context, cwd string, argv []string) (*Result, error) {
	return f(ctx, cwd, argv)
}

// Default runs commands as real child processes
var Default Runner = RunnerFunc(Run)

// Run executes argv[0] with the remaining elements as arguments in cwd, capturing
// stdout and stderr as text. A nonzero exit status is NOT an error: check
// Result.ExitCode. An error is returned only when the command could not be started.
func Run(ctx context.Context, cwd string, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, derrors.NewExecutionError("", "empty command", nil)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit code is not an execution error
			return &Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return nil, derrors.NewExecutionError(strings.Join(argv, " "), "failed to run command", err)
	}

	return &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
