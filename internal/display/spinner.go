package display

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress while a request is in flight. It stays silent when
// its output is not a terminal.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given message
func NewSpinner(msg string) *Spinner {
	return NewSpinnerTo(os.Stderr, msg)
}

// NewSpinnerTo creates a spinner writing to w. Writers other than files,
// such as test buffers, get a disabled spinner.
func NewSpinnerTo(w io.Writer, msg string) *Spinner {
	f, ok := w.(*os.File)
	if !ok {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
		s.Disable()
		return &Spinner{s: s}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriterFile(f),
		spinner.WithSuffix(" "+msg),
	)
	return &Spinner{s: s}
}

// Start starts the spinner
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop stops the spinner and clears its line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage changes the text next to the spinner
func (sp *Spinner) UpdateMessage(msg string) {
	sp.s.Lock()
	sp.s.Suffix = " " + msg
	sp.s.Unlock()
}
