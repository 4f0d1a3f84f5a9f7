// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseBoolEnv parses a boolean environment value. Accepts "true", "1",
// "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override. Each entry
// maps an env key (without the PULSE_ prefix) to the CLI flag name(s) it
// corresponds to and a function that applies the env value. Overrides with
// no flag names are always applied when the variable is set.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable
// overrides, grouped as app settings then validation bounds.
var envOverrides = []envOverride{
	// App settings
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"DEBUG", []string{"debug"}, func(c *AppConfig, v string) {
		c.Debug = parseBoolEnv(v, c.Debug)
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Validation bounds
	{"USERNAME_MIN_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.UsernameMinLen = parsed
		}
	}},
	{"USERNAME_MAX_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.UsernameMaxLen = parsed
		}
	}},
	{"PASSWORD_MIN_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.PasswordMinLen = parsed
		}
	}},
	{"PASSWORD_MAX_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.PasswordMaxLen = parsed
		}
	}},
	{"PASSWORD_REQUIRE_SPECIAL", nil, func(c *AppConfig, v string) {
		c.Rules.PasswordRequireSpecial = parseBoolEnv(v, c.Rules.PasswordRequireSpecial)
	}},
	{"POST_MAX_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.PostMaxLen = parsed
		}
	}},
	{"COMMENT_MAX_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.CommentMaxLen = parsed
		}
	}},
	{"BIO_MAX_LEN", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.BioMaxLen = parsed
		}
	}},
	{"IMAGE_MAX_BYTES", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Rules.ImageMaxBytes = parsed
		}
	}},
	{"VIDEO_MAX_BYTES", nil, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Rules.VideoMaxBytes = parsed
		}
	}},
	{"ALLOWED_IMAGE_TYPES", nil, func(c *AppConfig, v string) {
		c.Rules.AllowedImageTypes = splitCommaList(v)
	}},
	{"ALLOWED_VIDEO_TYPES", nil, func(c *AppConfig, v string) {
		c.Rules.AllowedVideoTypes = splitCommaList(v)
	}},
}

// applyEnvOverrides walks the override table. A flag explicitly set on the
// command line always wins over its environment variable.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if len(o.flags) > 0 && isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(cfg, val)
	}
}

// splitCommaList splits a comma-separated env value, trimming whitespace
// and dropping empty entries.
func splitCommaList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
