package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
)

// Result is the outcome of one command run
type Result struct {
	ExitCode int
	// Output is stdout followed by stderr, trimmed. Only set when Captured is true.
	Output string
	// Captured reports whether output was collected. False means the command
	// was attached to the terminal and Output is absent.
	Captured bool
}

// Runner executes an approved command
type Runner interface {
	Run(ctx context.Context, command string, capture bool) (Result, error)
}

// Ensure ShellRunner implements Runner
var _ Runner = (*ShellRunner)(nil)

// ShellRunner runs commands through a shell.
// Zero value uses $SHELL and the process's real stdio.
type ShellRunner struct {
	// Shell overrides $SHELL
	Shell string

	// Stdin, Stdout and Stderr are used when not capturing; nil means os.Std*
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner using the user's shell
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Run executes command and blocks until it exits. A non-zero exit code is
// reported in Result, not as an error; an error means the shell could not be started.
// ctx is only checked before the command starts. Running commands are never cancelled.
func (r *ShellRunner) Run(ctx context.Context, command string, capture bool) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	shell := r.Shell
	if shell == "" {
		shell = Shell()
	}

	cmd := exec.Command(shell, ShellArgs(shell, command, capture)...)
	cmd.Env = shellEnv(os.Environ(), capture)

	var stdout, stderr bytes.Buffer
	if capture {
		// exec opens os.DevNull for a nil Stdin
		cmd.Stdin = nil
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = orReader(r.Stdin, os.Stdin)
		cmd.Stdout = orWriter(r.Stdout, os.Stdout)
		cmd.Stderr = orWriter(r.Stderr, os.Stderr)
	}

	// The terminal sends SIGINT to the whole foreground group. Catch it here
	// so only the child reacts to Ctrl+C.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	err := cmd.Run()

	result := Result{Captured: capture}
	if capture {
		result.Output = strings.TrimSpace(stdout.String() + stderr.String())
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return Result{}, fmt.Errorf("failed to start %s: %w", shell, err)
	}

	result.ExitCode = cmd.ProcessState.ExitCode()
	return result, nil
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
