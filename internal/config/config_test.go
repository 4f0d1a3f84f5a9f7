package config

import (
	"io"
	"testing"
	"time"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("pulsecli", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.TUI {
		t.Error("TUI should default to false")
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Rules.UsernameMinLen != 3 || cfg.Rules.UsernameMaxLen != 30 {
		t.Errorf("username bounds = [%d, %d], want [3, 30]",
			cfg.Rules.UsernameMinLen, cfg.Rules.UsernameMaxLen)
	}
	if cfg.Rules.PostMaxLen != 2000 {
		t.Errorf("PostMaxLen = %d, want 2000", cfg.Rules.PostMaxLen)
	}
	if cfg.Rules.ImageMaxBytes != 10<<20 {
		t.Errorf("ImageMaxBytes = %d, want 10MB", cfg.Rules.ImageMaxBytes)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := ParseConfig("pulsecli", []string{
		"-tui", "-debug", "-timeout", "5s", "-content", "hello", "-media-url", "https://x.co/a.png",
	}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if !cfg.TUI || !cfg.Debug {
		t.Error("tui and debug flags should be set")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.Content != "hello" {
		t.Errorf("Content = %q", cfg.Content)
	}
	if cfg.MediaURL != "https://x.co/a.png" {
		t.Errorf("MediaURL = %q", cfg.MediaURL)
	}
}

func TestParseConfig_InvalidFlag(t *testing.T) {
	if _, err := ParseConfig("pulsecli", []string{"-no-such-flag"}, io.Discard); err == nil {
		t.Error("unknown flag should fail parsing")
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"POST_MAX_LEN", "280")
	t.Setenv(EnvPrefix+"PASSWORD_REQUIRE_SPECIAL", "yes")
	t.Setenv(EnvPrefix+"ALLOWED_IMAGE_TYPES", "image/png, image/webp")
	t.Setenv(EnvPrefix+"TIMEOUT", "10s")

	cfg, err := ParseConfig("pulsecli", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Rules.PostMaxLen != 280 {
		t.Errorf("PostMaxLen = %d, want 280 from env", cfg.Rules.PostMaxLen)
	}
	if !cfg.Rules.PasswordRequireSpecial {
		t.Error("PasswordRequireSpecial should be enabled from env")
	}
	if len(cfg.Rules.AllowedImageTypes) != 2 || cfg.Rules.AllowedImageTypes[1] != "image/webp" {
		t.Errorf("AllowedImageTypes = %v", cfg.Rules.AllowedImageTypes)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %s, want 10s from env", cfg.Timeout)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"TIMEOUT", "10s")

	cfg, err := ParseConfig("pulsecli", []string{"-timeout", "3s"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, explicit flag must win over env", cfg.Timeout)
	}
}

func TestParseConfig_RejectsBadBounds(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		value  string
	}{
		{"zero username min", "USERNAME_MIN_LEN", "0"},
		{"max below min", "USERNAME_MAX_LEN", "1"},
		{"zero post max", "POST_MAX_LEN", "0"},
		{"zero image bytes", "IMAGE_MAX_BYTES", "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPrefix+tt.envKey, tt.value)
			if _, err := ParseConfig("pulsecli", nil, io.Discard); err == nil {
				t.Error("invalid bound should be rejected")
			}
		})
	}
}

func TestParseConfig_RejectsNonPositiveTimeout(t *testing.T) {
	if _, err := ParseConfig("pulsecli", []string{"-timeout", "-1s"}, io.Discard); err == nil {
		t.Error("negative timeout should be rejected")
	}
}
