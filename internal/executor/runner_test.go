package executor

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func newTestRunner() (*ShellRunner, *bytes.Buffer) {
	var out bytes.Buffer
	return &ShellRunner{
		Shell:  "/bin/sh",
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: &out,
	}, &out
}

func TestShellRunner_Capture(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		wantCode int
		wantOut  string
	}{
		{"success", "echo hello", 0, "hello"},
		{"trimmed", "printf '\\n  padded  \\n\\n'", 0, "padded"},
		{"failure with stderr", "echo 'error: not found' >&2; exit 1", 1, "error: not found"},
		{"stdout then stderr", "echo out; echo err >&2", 0, "out\nerr"},
		{"no output", "true", 0, ""},
		{"exit code", "exit 42", 42, ""},
		{"dumb terminal", "echo $TERM", 0, "dumb"},
		{"stdin is empty", "cat", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner()
			got, err := r.Run(context.Background(), tt.command, true)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !got.Captured {
				t.Error("Run() Captured = false, want true")
			}
			if got.ExitCode != tt.wantCode {
				t.Errorf("Run() ExitCode = %d, want %d", got.ExitCode, tt.wantCode)
			}
			if got.Output != tt.wantOut {
				t.Errorf("Run() Output = %q, want %q", got.Output, tt.wantOut)
			}
		})
	}
}

func TestShellRunner_Attached(t *testing.T) {
	r, out := newTestRunner()

	got, err := r.Run(context.Background(), "echo attached; exit 3", false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Captured {
		t.Error("Run() Captured = true, want false")
	}
	if got.Output != "" {
		t.Errorf("Run() Output = %q, want empty", got.Output)
	}
	if got.ExitCode != 3 {
		t.Errorf("Run() ExitCode = %d, want 3", got.ExitCode)
	}
	if !strings.Contains(out.String(), "attached") {
		t.Errorf("attached output = %q, want it to contain %q", out.String(), "attached")
	}
}

func TestShellRunner_SpawnFailure(t *testing.T) {
	r := &ShellRunner{Shell: "/nonexistent/shell"}

	_, err := r.Run(context.Background(), "true", true)
	if err == nil {
		t.Fatal("Run() error = nil, want spawn failure")
	}
	if !strings.Contains(err.Error(), "failed to start") {
		t.Errorf("Run() error = %v, want it to mention the start failure", err)
	}
}

func TestShellRunner_CancelledBeforeStart(t *testing.T) {
	r, out := newTestRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, "echo never", false); err == nil {
		t.Fatal("Run() error = nil, want context error")
	}
	if out.Len() != 0 {
		t.Errorf("command ran after cancellation: %q", out.String())
	}
}
