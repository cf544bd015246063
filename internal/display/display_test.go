package display

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/quocvuong92/nova/internal/constants"
	"github.com/quocvuong92/nova/internal/executor"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// chunkReader returns one queued chunk per Read, like a terminal in canonical mode
type chunkReader struct {
	chunks []string
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestConsole_ReadLine(t *testing.T) {
	in := &chunkReader{chunks: []string{"\n", "use tree\n", "\x1b"}}
	var out bytes.Buffer
	c := NewConsole(in, &out)

	for _, want := range []string{"\n", "use tree\n", "\x1b"} {
		got, err := c.ReadLine("")
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadLine() = %q, want %q", got, want)
		}
	}

	if _, err := c.ReadLine(""); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine() at end error = %v, want io.EOF", err)
	}
}

func TestConsole_ReadLineSingleRead(t *testing.T) {
	// A strings.Reader hands back everything available in one Read
	c := NewConsole(strings.NewReader("first\nsecond\n"), io.Discard)

	got, err := c.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if got != "first\nsecond\n" {
		t.Errorf("ReadLine() = %q, want both lines from the single read", got)
	}
}

func TestConsole_ReadLineTruncates(t *testing.T) {
	long := strings.Repeat("x", constants.InputChunkSize+500)
	c := NewConsole(strings.NewReader(long), io.Discard)

	got, err := c.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if len(got) != constants.InputChunkSize {
		t.Errorf("len(ReadLine()) = %d, want %d", len(got), constants.InputChunkSize)
	}
}

func TestConsole_ReadLineError(t *testing.T) {
	readErr := errors.New("input/output error")
	c := NewConsole(&chunkReader{err: readErr}, io.Discard)

	if _, err := c.ReadLine(""); !errors.Is(err, readErr) {
		t.Errorf("ReadLine() error = %v, want %v", err, readErr)
	}
}

func TestConsole_ReadLinePrompt(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&chunkReader{chunks: []string{"exit\n"}}, &out)

	if _, err := c.ReadLine("> "); err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if out.String() != "> " {
		t.Errorf("prompt output = %q, want %q", out.String(), "> ")
	}
}

func TestConsole_ShowCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		risk    executor.Risk
		want    string
	}{
		{"safe", "ls -la", executor.Safe, "$ ls -la (Enter/Esc)\n"},
		{"modifying", "mkdir x", executor.NeedsConfirm, "$ mkdir x (Enter/Esc)\n"},
		{"dangerous", "sudo rm -rf /", executor.Dangerous, "$ sudo rm -rf / (Enter/Esc)\n  ! Potentially dangerous command\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			NewConsole(nil, &out).ShowCommand(tt.command, tt.risk)
			if out.String() != tt.want {
				t.Errorf("ShowCommand() printed %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestConsole_ShowOutputAndExitCode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(nil, &out)

	c.ShowOutput("error: not found")
	c.ShowExitCode(1)

	want := "error: not found\nCommand exited with code: 1\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestConsole_StartIndicatorOffTerminal(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(nil, &out)

	stop := c.StartIndicator("Generating...")
	stop()
	stop()

	if out.Len() != 0 {
		t.Errorf("indicator drew on a non-terminal writer: %q", out.String())
	}
}

func TestConsole_ShowReply(t *testing.T) {
	var out bytes.Buffer
	NewConsole(nil, &out).ShowReply("Hello!", false)

	if out.String() != "nova: Hello!\n" {
		t.Errorf("ShowReply() printed %q", out.String())
	}
}

func TestConsole_ShowChatError(t *testing.T) {
	var out bytes.Buffer
	NewConsole(nil, &out).ShowChatError(errors.New("connection refused"))

	want := "Error: connection refused\nYou can continue the conversation.\n\n"
	if out.String() != want {
		t.Errorf("ShowChatError() printed %q, want %q", out.String(), want)
	}
}

func TestShowErrorAndWarning(t *testing.T) {
	var buf bytes.Buffer
	old := stderr
	stderr = &buf
	defer func() { stderr = old }()

	ShowError("bad thing")
	ShowWarning("careful")

	want := "nova: error: bad thing\nWarning: careful\n"
	if buf.String() != want {
		t.Errorf("stderr = %q, want %q", buf.String(), want)
	}
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	sp := NewSpinner("Working...", io.Discard)
	sp.Start()
	sp.UpdateMessage("Still working...")
	sp.Stop()
	sp.Stop()
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}

func TestRenderMarkdown_WithoutRenderer(t *testing.T) {
	rendererMu.Lock()
	old := renderer
	renderer = nil
	rendererMu.Unlock()
	defer func() {
		rendererMu.Lock()
		renderer = old
		rendererMu.Unlock()
	}()

	if got := RenderMarkdown("# Title"); got != "# Title" {
		t.Errorf("RenderMarkdown() = %q, want input unchanged", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if err := InitRenderer(); err != nil {
		t.Fatalf("InitRenderer() error = %v", err)
	}
	got := RenderMarkdown("# Title\n\nSome text.")
	if !strings.Contains(got, "Title") || !strings.Contains(got, "Some text.") {
		t.Errorf("RenderMarkdown() = %q, want the rendered content", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("RenderMarkdown() = %q, want trailing newlines trimmed", got)
	}
}

func TestUserPrompt(t *testing.T) {
	if got := UserPrompt(); got != "You: " {
		t.Errorf("UserPrompt() = %q, want %q", got, "You: ")
	}
}
