// Package shellexec wraps process invocation behind a small API: run a
// command synchronously with captured output, start it asynchronously and
// wait on a handle, or stream its output live to caller-supplied writers.
package shellexec

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/logging"
)

// Options adjusts how a command is executed. The zero value is usable.
type Options struct {
	// Dir is the working directory; empty means inherit.
	Dir string
	// Env entries (KEY=value) appended to the inherited environment.
	Env []string
	// Stdin is fed to the process when non-nil.
	Stdin io.Reader
}

// Result captures a completed command.
type Result struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Run executes a command and waits for it, capturing stdout and stderr
// separately. A non-zero exit is an EXEC_FAILED error carrying the exit
// code and stderr as details; the Result is returned either way so callers
// can inspect output on failure.
func Run(ctx context.Context, opts Options, name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	applyOptions(cmd, opts)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Command:  name,
		Args:     args,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(cmd, err),
		Duration: time.Since(start),
	}
	return result, wrapRunError(err, ctx, result)
}

// RunShell executes a command line through the system shell (sh -c).
func RunShell(ctx context.Context, opts Options, commandLine string) (Result, error) {
	return Run(ctx, opts, "sh", "-c", commandLine)
}

// RunLive executes a command with stdout and stderr streamed to the given
// writers as the process produces them, instead of captured in the Result.
func RunLive(ctx context.Context, opts Options, stdout, stderr io.Writer, name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	applyOptions(cmd, opts)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	result := Result{
		Command:  name,
		Args:     args,
		ExitCode: exitCode(cmd, err),
		Duration: time.Since(start),
	}
	return result, wrapRunError(err, ctx, result)
}

// Handle is a started command that has not been waited on yet.
type Handle struct {
	cmd    *exec.Cmd
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	start  time.Time
	ctx    context.Context
}

// Start launches a command without waiting for it. Output is captured and
// becomes available from Wait.
func Start(ctx context.Context, opts Options, name string, args ...string) (*Handle, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	applyOptions(cmd, opts)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrExecStart, "failed to start %s", name)
	}
	return &Handle{cmd: cmd, stdout: &stdout, stderr: &stderr, start: time.Now(), ctx: ctx}, nil
}

// Wait blocks until the command exits and returns its Result, with the
// same error contract as Run. Wait must be called exactly once.
func (h *Handle) Wait() (Result, error) {
	err := h.cmd.Wait()
	result := Result{
		Command:  h.cmd.Path,
		Args:     h.cmd.Args[1:],
		Stdout:   h.stdout.String(),
		Stderr:   h.stderr.String(),
		ExitCode: exitCode(h.cmd, err),
		Duration: time.Since(h.start),
	}
	return result, wrapRunError(err, h.ctx, result)
}

func applyOptions(cmd *exec.Cmd, opts Options) {
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}
	cmd.Stdin = opts.Stdin
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func wrapRunError(err error, ctx context.Context, result Result) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, errors.ErrExecFailed, "%s interrupted", result.Command).
			WithDetail("exitCode", result.ExitCode)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return errors.Newf(errors.ErrExecFailed, "%s exited with code %d", result.Command, result.ExitCode).
			WithDetail("exitCode", result.ExitCode).
			WithDetail("stderr", strings.TrimSpace(result.Stderr))
	}
	return errors.Wrapf(err, errors.ErrExecStart, "failed to run %s", result.Command)
}
