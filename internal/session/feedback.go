package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/quocvuong92/nova/internal/executor"
)

// ResultPrefix starts every feedback turn
const ResultPrefix = "[COMMAND_RESULT]"

const outputMarker = "\nOutput:\n"

var (
	// ErrNotCommandResult is returned by ParseResult for text without the prefix
	ErrNotCommandResult = errors.New("not a command result turn")

	exitCodePattern = regexp.MustCompile(`\(exit code: (-?\d+)\)`)
)

// FormatResult builds the user turn that reports an execution back to the model.
// The exit code is always present; output is included only when non-empty.
func FormatResult(r executor.Result) string {
	var b strings.Builder
	b.WriteString(ResultPrefix)
	if r.ExitCode == 0 {
		fmt.Fprintf(&b, " Command executed successfully (exit code: %d)", r.ExitCode)
	} else {
		fmt.Fprintf(&b, " Command failed (exit code: %d)", r.ExitCode)
	}
	if r.Output != "" {
		b.WriteString(outputMarker)
		b.WriteString(r.Output)
	}
	return b.String()
}

// ParseResult recovers the exit code and output from a FormatResult turn
func ParseResult(text string) (executor.Result, error) {
	if !strings.HasPrefix(text, ResultPrefix) {
		return executor.Result{}, ErrNotCommandResult
	}

	summary, output, _ := strings.Cut(text, outputMarker)

	m := exitCodePattern.FindStringSubmatch(summary)
	if m == nil {
		return executor.Result{}, fmt.Errorf("%w: missing exit code", ErrNotCommandResult)
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return executor.Result{}, fmt.Errorf("%w: bad exit code %q", ErrNotCommandResult, m[1])
	}

	return executor.Result{ExitCode: code, Output: output, Captured: true}, nil
}
