package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("key", "value")
		if f.Key != "key" {
			t.Errorf("String().Key = %q, want %q", f.Key, "key")
		}
		if f.Value != "value" {
			t.Errorf("String().Value = %q, want %q", f.Value, "value")
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("count", 42)
		if f.Value != 42 {
			t.Errorf("Int().Value = %v, want %v", f.Value, 42)
		}
	})

	t.Run("Uint64 creates field with key and uint64 value", func(t *testing.T) {
		f := Uint64("n", 12345678901234567890)
		if f.Value != uint64(12345678901234567890) {
			t.Errorf("Uint64().Value = %v", f.Value)
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("duration", 3.14159)
		if f.Value != 3.14159 {
			t.Errorf("Float64().Value = %v", f.Value)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})

	t.Run("Kind creates field with kind key", func(t *testing.T) {
		f := Kind(apperrors.KindTimeout)
		if f.Key != "kind" {
			t.Errorf("Kind().Key = %q, want %q", f.Key, "kind")
		}
		if f.Value != "timeout" {
			t.Errorf("Kind().Value = %v, want %q", f.Value, "timeout")
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	adapter := NewZerologAdapter(zl)

	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-component")

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "test-component") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestZerologAdapter_Levels tests each log level with structured fields.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("request processed", String("method", "GET"), Int("status", 200)) },
			contains: []string{"request processed", "GET", "200", "info"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("slow response", Float64("seconds", 2.5)) },
			contains: []string{"slow response", "2.5", "warn"},
		},
		{
			name:     "error with error field",
			log:      func(l Logger) { l.Error("operation failed", Err(errors.New("connection refused"))) },
			contains: []string{"operation failed", "connection refused", "error"},
		},
		{
			name:     "error with kind field",
			log:      func(l Logger) { l.Error("normalized failure", Kind(apperrors.KindRateLimited)) },
			contains: []string{"normalized failure", "rate_limited"},
		},
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("detail", Uint64("bytes", 1024)) },
			contains: []string{"detail", "1024", "debug"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			tt.log(logger)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestNop verifies the nop logger discards output without panicking.
func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("discarded")
	logger.Error("also discarded", Err(errors.New("x")))
}
