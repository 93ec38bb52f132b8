// Package process runs the external pipeline tools and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env replaces the child environment when non-nil.
	Env []string
}

// String renders the command line the way it is recorded in the report.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is what a finished process leaves behind.
type Result struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner launches a command and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec. It never applies a deadline of its
// own; a hung child blocks until ctx is cancelled.
type ExecRunner struct {
	Now func() time.Time
}

// NewExecRunner returns an ExecRunner using the wall clock.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Now: time.Now}
}

// Run executes cmd. A non-zero exit is reported through Result.Success with
// a nil error; the error is reserved for processes that could not be started
// or were interrupted.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	now := r.Now
	if now == nil {
		now = time.Now
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if cmd.Env != nil {
		c.Env = cmd.Env
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := now()
	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: now().Sub(start),
		ExitCode: -1,
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err == nil {
		result.Success = true
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s interrupted: %w", cmd.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	return result, err
}

// Lines splits captured output into its non-empty lines.
func Lines(output string) []string {
	lines := []string{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
