package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate defines the refresh frequency of the submission
// spinner. 200ms keeps updates cheap without looking frozen.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal
// spinner. It decouples the submission flow from a specific spinner
// implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (r *realSpinner) Start() { r.s.Start() }

// Stop halts the spinner animation.
func (r *realSpinner) Stop() { r.s.Stop() }

// UpdateSuffix sets the text that is displayed after the spinner.
func (r *realSpinner) UpdateSuffix(suffix string) { r.s.Suffix = " " + suffix }

// newSpinner creates the default spinner. It is a variable so tests can
// substitute a fake.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s: s}
}
