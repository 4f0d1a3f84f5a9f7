// Package cli implements the one-shot command-line surface: submitting a
// post and presenting outcomes. It consumes the taxonomy's kind, user
// message, and retryability to pick title, body, and retry affordance;
// classification itself lives in the errors package.
package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pulsefeed/pulsecli/internal/backend"
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// Presenter renders outcomes for terminal output.
type Presenter struct {
	out   io.Writer
	debug bool
}

// NewPresenter creates a Presenter. With debug enabled the raw message,
// origin, and cause chain are shown alongside the fixed user message.
func NewPresenter(out io.Writer, debug bool) *Presenter {
	return &Presenter{out: out, debug: debug}
}

// titleFor picks the headline for an error's family.
func titleFor(e *apperrors.Error) string {
	switch {
	case e.IsNetwork():
		return "Connection problem"
	case e.IsAuth():
		return "Sign-in required"
	case e.IsValidation():
		return "Check your input"
	case e.IsMedia():
		return "Media problem"
	case e.IsRateLimited():
		return "Slow down"
	case e.IsDatabase():
		return "Data problem"
	default:
		return "Something went wrong"
	}
}

// PresentError renders a taxonomy error: title, fixed user message, any
// per-field messages, and a retry affordance when the failure is
// retryable.
func (p *Presenter) PresentError(e *apperrors.Error) {
	fmt.Fprintf(p.out, "%s\n  %s\n", titleFor(e), e.UserMessage())

	if len(e.FieldErrors) > 0 {
		fields := make([]string, 0, len(e.FieldErrors))
		for field := range e.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			for _, msg := range e.FieldErrors[field] {
				fmt.Fprintf(p.out, "  - %s: %s\n", field, msg)
			}
		}
	} else if e.Field != "" {
		fmt.Fprintf(p.out, "  - %s: %s\n", e.Field, e.Message)
	}

	if e.IsRetryable() {
		if e.RetryAfterSeconds > 0 {
			fmt.Fprintf(p.out, "  You can retry in %d seconds.\n", e.RetryAfterSeconds)
		} else {
			fmt.Fprintln(p.out, "  You can retry this action.")
		}
	}

	if p.debug {
		fmt.Fprintf(p.out, "\n[debug]\n%s\n", e.DebugString())
	}
}

// PresentPost renders a successfully published post with the time the
// submission took.
func (p *Presenter) PresentPost(post backend.Post, elapsed time.Duration) {
	fmt.Fprintf(p.out, "Published post %s by @%s in %s\n  %s\n",
		post.ID, post.Author, formatElapsed(elapsed), post.Content)
	if post.MediaURL != "" {
		fmt.Fprintf(p.out, "  media: %s\n", post.MediaURL)
	}
}

// formatElapsed rounds a duration to a human-scale precision.
func formatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}
