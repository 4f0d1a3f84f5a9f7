// Package app assembles the application: configuration, backend client,
// logging, metrics, and mode dispatch between the interactive form and
// the one-shot CLI. The whole run executes inside a crash containment
// boundary, so a programming error surfaces as a critical-severity report
// and an exit code instead of a raw stack trace.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/pulsecli/internal/backend"
	"github.com/pulsefeed/pulsecli/internal/boundary"
	"github.com/pulsefeed/pulsecli/internal/cli"
	"github.com/pulsefeed/pulsecli/internal/config"
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/logging"
	"github.com/pulsefeed/pulsecli/internal/metrics"
	"github.com/pulsefeed/pulsecli/internal/surface"
	"github.com/pulsefeed/pulsecli/internal/tui"
	"github.com/pulsefeed/pulsecli/internal/validate"
)

// Application represents the pulsecli application instance.
type Application struct {
	Config    config.AppConfig
	Client    backend.Client
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClient sets a custom backend client for the application.
func WithClient(c backend.Client) AppOption {
	return func(a *Application) { a.Client = c }
}

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Client == nil {
		app.Client = backend.NewTraced(backend.NewMemory())
	}
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}

	programName := "pulsecli"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode. Every mode
// runs inside the containment boundary; a contained fault is presented to
// the user and mapped to an exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	recorder := metrics.NewRecorder()
	if a.Config.MetricsAddr != "" {
		stop := a.serveMetrics(recorder)
		defer stop()
	}

	b := boundary.New[int](func(e *apperrors.Error) int {
		cli.NewPresenter(a.ErrWriter, a.Config.Debug).PresentError(e)
		return apperrors.ExitCodeFor(e)
	}, boundary.WithLogger[int](a.Logger))

	return b.Execute(func() int {
		ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stopSignals()

		if a.Config.TUI {
			return tui.Run(ctx, a.Client, a.Config, Version)
		}
		if a.Config.Content != "" {
			return a.runSubmit(ctx, out, recorder)
		}
		return a.runSnapshot(ctx, out, recorder)
	})
}

// runSubmit publishes a single post from the command line.
func (a *Application) runSubmit(ctx context.Context, out io.Writer, recorder *metrics.Recorder) int {
	s := surface.New(surface.WithLogger(a.Logger), surface.WithRecorder(recorder))
	presenter := cli.NewPresenter(out, a.Config.Debug)
	submitter := cli.NewSubmitter(
		validate.NewValidator(a.Config.Rules),
		a.Client,
		s,
		presenter,
		out,
		a.Config.Timeout,
		cli.WithLogger(a.Logger),
	)
	return submitter.RunPost(ctx, a.Config.Content, a.Config.MediaURL)
}

// runSnapshot is the default one-shot mode: fetch the profile and recent
// timeline in parallel and print them.
func (a *Application) runSnapshot(ctx context.Context, out io.Writer, recorder *metrics.Recorder) int {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	s := surface.New(surface.WithLogger(a.Logger), surface.WithRecorder(recorder))
	res := surface.Run(ctx, s, func(ctx context.Context) (Snapshot, error) {
		return Prefetch(ctx, a.Client)
	})
	if res.IsErr() {
		e := res.UnwrapErr()
		cli.NewPresenter(a.ErrWriter, a.Config.Debug).PresentError(e)
		return apperrors.ExitCodeFor(e)
	}

	snap := res.Unwrap()
	fmt.Fprintf(out, "@%s", snap.Profile.Username)
	if snap.Profile.Bio != "" {
		fmt.Fprintf(out, " · %s", snap.Profile.Bio)
	}
	fmt.Fprintln(out)
	for _, post := range snap.Timeline {
		fmt.Fprintf(out, "  %s  @%s: %s\n",
			post.CreatedAt.Format("15:04"), post.Author, post.Content)
	}
	return apperrors.ExitSuccess
}

// serveMetrics exposes the Prometheus endpoint and returns a function that
// shuts the server down.
func (a *Application) serveMetrics(recorder *metrics.Recorder) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Addr: a.Config.MetricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Warn("metrics server stopped", logging.Err(err))
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
