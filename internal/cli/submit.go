package cli

import (
	"context"
	"io"
	"time"

	"github.com/pulsefeed/pulsecli/internal/backend"
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/logging"
	"github.com/pulsefeed/pulsecli/internal/surface"
	"github.com/pulsefeed/pulsecli/internal/validate"
)

// Submitter drives the one-shot post flow: validate locally, then publish
// under the error surface's guard. Validation failures never reach the
// backend.
type Submitter struct {
	validator validate.Validator
	client    backend.Client
	surface   *surface.Surface
	presenter *Presenter
	spinner   Spinner
	logger    logging.Logger
	timeout   time.Duration
}

// SubmitterOption configures a Submitter during construction.
type SubmitterOption func(*Submitter)

// WithSpinner substitutes the progress spinner, mainly for tests.
func WithSpinner(s Spinner) SubmitterOption {
	return func(sub *Submitter) { sub.spinner = s }
}

// WithLogger attaches a logger to the submission flow.
func WithLogger(logger logging.Logger) SubmitterOption {
	return func(sub *Submitter) { sub.logger = logger }
}

// NewSubmitter assembles a Submitter writing human output to out.
func NewSubmitter(
	validator validate.Validator,
	client backend.Client,
	errSurface *surface.Surface,
	presenter *Presenter,
	out io.Writer,
	timeout time.Duration,
	opts ...SubmitterOption,
) *Submitter {
	sub := &Submitter{
		validator: validator,
		client:    client,
		surface:   errSurface,
		presenter: presenter,
		spinner:   newSpinner(out),
		logger:    logging.Nop(),
		timeout:   timeout,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

// RunPost validates and publishes a post, returning the process exit code.
func (s *Submitter) RunPost(ctx context.Context, content, mediaURL string) int {
	validated := s.validator.NewPost(content, mediaURL)
	if validated.IsErr() {
		e := validated.UnwrapErr()
		s.surface.ApplyValidation(e)
		s.presenter.PresentError(e)
		return apperrors.ExitCodeFor(e)
	}

	post := validated.Unwrap()
	s.logger.Info("submitting post",
		logging.Int("content_length", len(post.Content.String())))

	s.spinner.UpdateSuffix("Publishing...")
	s.spinner.Start()
	start := time.Now()

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res := surface.Run(opCtx, s.surface, func(ctx context.Context) (backend.Post, error) {
		url := ""
		if post.MediaURL != nil {
			url = post.MediaURL.String()
		}
		return s.client.CreatePost(ctx, post.Content.String(), url)
	})
	s.spinner.Stop()

	if res.IsErr() {
		e := res.UnwrapErr()
		s.presenter.PresentError(e)
		return apperrors.ExitCodeFor(e)
	}

	s.presenter.PresentPost(res.Unwrap(), time.Since(start))
	return apperrors.ExitSuccess
}
