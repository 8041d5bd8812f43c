// Package runner is the narrow subprocess capability used by the git and
// package-manager steps.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes name with args in dir and reports failure as an error.
// A non-zero exit status is an error.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner invokes binaries from PATH.
type ExecRunner struct {
	// Stdout and Stderr receive the child's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s is required but was not found on PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout

	// keep the tail of stderr for the error message even when it is also streamed
	var stderr bytes.Buffer
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", Command(name, args...), err)
		}
		return fmt.Errorf("%s: %w (%s)", Command(name, args...), err, lastLine(msg))
	}

	return nil
}

// Command renders an invocation for logs and error messages.
func Command(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
