package session

import (
	"context"

	"github.com/quocvuong92/nova/internal/api"
	"github.com/quocvuong92/nova/internal/executor"
)

// Completer is the part of the completion gateway the session needs
type Completer interface {
	Complete(ctx context.Context, messages []api.Message, opts api.Options) (string, error)
}

// LineReader reads one line of user input. Each call performs a single bounded
// read; input past the bound is dropped. It returns io.EOF at end of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// View presents the session to the user
type View interface {
	// ShowCommand presents a generated command awaiting confirmation
	ShowCommand(command string, risk executor.Risk)

	// ShowOutput prints captured command output
	ShowOutput(output string)

	// ShowExitCode warns about a non-zero exit code
	ShowExitCode(code int)

	// StartIndicator starts the progress indicator. The returned func stops it
	// and is safe to call more than once.
	StartIndicator(message string) (stop func())
}

// Ensure api.Client satisfies Completer
var _ Completer = (api.Client)(nil)
