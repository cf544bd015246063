// Package display handles terminal output, the progress spinner, bounded
// line input and markdown rendering.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	promptColor  = color.New(color.FgGreen, color.Bold)
	commandColor = color.New(color.FgBlue)
	dimColor     = color.New(color.Faint)
	userColor    = color.New(color.FgBlue, color.Bold)
	dangerColor  = color.New(color.FgRed)
)

// stderr is replaced in tests
var stderr io.Writer = os.Stderr

// ShowError prints a fatal diagnostic to stderr as a single "nova: error:" line
func ShowError(msg string) {
	_, _ = errorColor.Fprint(stderr, "nova: error:")
	_, _ = fmt.Fprintf(stderr, " %s\n", msg)
}

// ShowWarning prints a warning to stderr
func ShowWarning(msg string) {
	_, _ = warningColor.Fprintf(stderr, "Warning: %s\n", msg)
}
