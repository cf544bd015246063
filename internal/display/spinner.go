package display

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Spinner is a progress indicator. It never draws when the writer is not a terminal.
type Spinner struct {
	s       *spinner.Spinner
	enabled bool
	once    sync.Once
}

// NewSpinner creates a spinner that writes to w
func NewSpinner(message string, w io.Writer) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	return &Spinner{s: s, enabled: IsTerminal(w)}
}

// Start starts the animation
func (sp *Spinner) Start() {
	if sp.enabled {
		sp.s.Start()
	}
}

// UpdateMessage replaces the text after the spinner
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Lock()
	sp.s.Suffix = " " + message
	sp.s.Unlock()
}

// Stop stops the animation and clears the line. Calling it again is a no-op.
func (sp *Spinner) Stop() {
	sp.once.Do(func() {
		if sp.enabled {
			sp.s.Stop()
		}
	})
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
