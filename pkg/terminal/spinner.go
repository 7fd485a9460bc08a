package terminal

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress of a long-running step such as the external
// binding generator.
type Spinner struct {
	mu      sync.Mutex
	s       *spinner.Spinner
	enabled bool
	active  bool
}

// NewSpinner returns a spinner writing to w. A disabled spinner does
// nothing.
func NewSpinner(w io.Writer, enabled bool) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	return &Spinner{s: s, enabled: enabled}
}

// Start shows message next to the spinner.
func (sp *Spinner) Start(message string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.enabled {
		return
	}
	sp.s.Suffix = " " + message
	if !sp.active {
		sp.s.Start()
		sp.active = true
	}
}

// Stop hides the spinner and prints final, if not empty, in its place.
func (sp *Spinner) Stop(final string) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.active {
		return
	}
	if final != "" {
		sp.s.FinalMSG = final + "\n"
	}
	sp.s.Stop()
	sp.active = false
}

// Active reports whether the spinner is running.
func (sp *Spinner) Active() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.active
}
