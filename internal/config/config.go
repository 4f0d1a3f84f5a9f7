// Package config parses command-line flags and PULSE_-prefixed environment
// overrides into the application configuration, including every validation
// bound the validate package consumes. Bounds are configuration the
// validators receive, not own: a deployment can tighten or relax any limit
// without touching validator control flow.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/pulsefeed/pulsecli/internal/validate"
)

// EnvPrefix is prepended to every environment variable key.
const EnvPrefix = "PULSE_"

// DefaultTimeout bounds a single backend operation.
const DefaultTimeout = 30 * time.Second

// AppConfig holds the complete parsed configuration.
type AppConfig struct {
	// TUI selects the interactive dashboard instead of the one-shot CLI.
	TUI bool
	// Debug enables developer mode: raw messages, origin descriptions,
	// and cause chains are shown alongside the fixed user messages.
	Debug bool
	// Timeout bounds each backend operation.
	Timeout time.Duration
	// MetricsAddr, when non-empty, serves the Prometheus exposition
	// endpoint on this address.
	MetricsAddr string

	// Content and MediaURL feed the one-shot post submission.
	Content  string
	MediaURL string

	// Rules carries the validation bounds handed to validate.NewValidator.
	Rules validate.Rules
}

// ParseConfig parses flags and applies environment overrides. Flags win
// over environment variables; environment variables win over defaults.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Timeout: DefaultTimeout,
		Rules:   validate.DefaultRules(),
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive dashboard")
	fs.BoolVar(&cfg.Debug, "debug", false, "Show raw error details alongside user messages")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Timeout for a single backend operation")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (empty: disabled)")
	fs.StringVar(&cfg.Content, "content", "", "Post content for one-shot submission")
	fs.StringVar(&cfg.MediaURL, "media-url", "", "Optional media URL attached to the post")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects configurations no component could operate under.
func (c AppConfig) validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	r := c.Rules
	if r.UsernameMinLen < 1 || r.UsernameMaxLen < r.UsernameMinLen {
		return fmt.Errorf("invalid username bounds [%d, %d]", r.UsernameMinLen, r.UsernameMaxLen)
	}
	if r.PasswordMinLen < 1 || r.PasswordMaxLen < r.PasswordMinLen {
		return fmt.Errorf("invalid password bounds [%d, %d]", r.PasswordMinLen, r.PasswordMaxLen)
	}
	if r.PostMaxLen < 1 || r.CommentMaxLen < 1 || r.BioMaxLen < 0 {
		return fmt.Errorf("content bounds must be positive")
	}
	if r.ImageMaxBytes < 1 || r.VideoMaxBytes < 1 {
		return fmt.Errorf("media size bounds must be positive")
	}
	return nil
}
