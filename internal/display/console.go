package display

import (
	"fmt"
	"io"

	"github.com/quocvuong92/nova/internal/constants"
	"github.com/quocvuong92/nova/internal/executor"
	"github.com/quocvuong92/nova/internal/session"
)

// Ensure Console can drive a session
var (
	_ session.View       = (*Console)(nil)
	_ session.LineReader = (*Console)(nil)
)

// Console is the terminal front end of a session: it prints commands and
// results and reads one bounded chunk of input per prompt.
type Console struct {
	in  io.Reader
	out io.Writer

	// spin is false when out is not a terminal
	spin bool
}

// NewConsole creates a console. The spinner runs only when out is a terminal.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, spin: IsTerminal(out)}
}

// ReadLine prints prompt and performs exactly one Read of at most
// constants.InputChunkSize bytes. Longer input is truncated for this call.
// The returned text is raw, including any newline. A read that yields no
// data is end of input.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		_, _ = dimColor.Fprint(c.out, prompt)
	}

	buf := make([]byte, constants.InputChunkSize)
	n, err := c.in.Read(buf)
	if n > 0 {
		return string(buf[:n]), nil
	}
	if err != nil {
		return "", err
	}
	return "", io.EOF
}

// ShowCommand prints the generated command awaiting confirmation
func (c *Console) ShowCommand(command string, risk executor.Risk) {
	_, _ = promptColor.Fprint(c.out, "$")
	_, _ = fmt.Fprint(c.out, " ")
	_, _ = commandColor.Fprint(c.out, command)
	_, _ = fmt.Fprintln(c.out, " (Enter/Esc)")
	if risk == executor.Dangerous {
		_, _ = dangerColor.Fprintf(c.out, "  ! %s\n", risk.Description())
	}
}

// ShowOutput prints captured command output
func (c *Console) ShowOutput(output string) {
	_, _ = fmt.Fprintln(c.out, output)
}

// ShowExitCode warns about a non-zero exit code
func (c *Console) ShowExitCode(code int) {
	_, _ = warningColor.Fprintf(c.out, "Command exited with code: %d\n", code)
}

// StartIndicator starts the spinner and returns its idempotent stop func
func (c *Console) StartIndicator(message string) func() {
	if !c.spin {
		return func() {}
	}
	sp := NewSpinner(message, c.out)
	sp.Start()
	return sp.Stop
}

// ShowReply prints a chat reply, rendered as markdown when render is set
func (c *Console) ShowReply(reply string, render bool) {
	_, _ = promptColor.Fprint(c.out, "nova:")
	if render {
		_, _ = fmt.Fprintln(c.out)
		_, _ = fmt.Fprintln(c.out, RenderMarkdown(reply))
		return
	}
	_, _ = fmt.Fprintf(c.out, " %s\n", reply)
}

// ShowChatError reports a failed chat turn; the conversation continues
func (c *Console) ShowChatError(err error) {
	_, _ = warningColor.Fprint(c.out, "Error:")
	_, _ = fmt.Fprintf(c.out, " %v\n", err)
	_, _ = dimColor.Fprintln(c.out, "You can continue the conversation.")
	_, _ = fmt.Fprintln(c.out)
}

// UserPrompt is the chat input prompt
func UserPrompt() string {
	return userColor.Sprint("You:") + " "
}
