package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
)

// TestNormalize_RulePrecedence exercises one input per normalizer rule.
func TestNormalize_RulePrecedence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		input       any
		wantKind    Kind
		wantMessage string
	}{
		{
			name:     "rule 1: taxonomy error returned unchanged",
			input:    Duplicate("handle taken"),
			wantKind: KindDuplicate,
		},
		{
			name:     "rule 2: backend error resolved via code table",
			input:    &BackendError{Code: pgerrcode.UniqueViolation, Message: "duplicate key"},
			wantKind: KindDuplicate,
		},
		{
			name:     "rule 3: timeout message",
			input:    errors.New("request timeout after 30s"),
			wantKind: KindTimeout,
		},
		{
			name:     "rule 3: network request failed message",
			input:    errors.New("Network request failed"),
			wantKind: KindNetwork,
		},
		{
			name:        "rule 4: generic error",
			input:       errors.New("index out of range"),
			wantKind:    KindUnknown,
			wantMessage: "index out of range",
		},
		{
			name:        "rule 5: plain string",
			input:       "boom",
			wantKind:    KindUnknown,
			wantMessage: "boom",
		},
		{
			name:        "rule 6: arbitrary value",
			input:       42,
			wantKind:    KindUnknown,
			wantMessage: "An unknown error occurred",
		},
		{
			name:        "rule 6: nil",
			input:       nil,
			wantKind:    KindUnknown,
			wantMessage: "An unknown error occurred",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("Normalize() kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("Normalize() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestNormalize_IdentityOnTaxonomyError(t *testing.T) {
	t.Parallel()
	original := RateLimit("slow down", 30, 100, 0)

	if got := Normalize(original); got != original {
		t.Error("Normalize should return an existing taxonomy error unchanged")
	}

	t.Run("also when wrapped as error", func(t *testing.T) {
		t.Parallel()
		var err error = original
		if got := Normalize(err); got != original {
			t.Error("Normalize should unwrap the error interface to the same value")
		}
	})

	t.Run("also when inside a wrap chain", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("submit failed: %w", original)
		if got := Normalize(wrapped); got != original {
			t.Error("Normalize should find the taxonomy error through errors.As")
		}
	})
}

// TestNormalize_BackendTable has one regression test per row of the backend
// matching table. The phrases are owned by the backend and can change
// without notice; these tests document the contract as currently observed.
func TestNormalize_BackendTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    *BackendError
		wantKind Kind
	}{
		{
			name:     "unique violation code maps to duplicate",
			input:    &BackendError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantKind: KindDuplicate,
		},
		{
			name:     "foreign key violation code maps to not found",
			input:    &BackendError{Code: "23503", Message: "insert or update violates foreign key constraint"},
			wantKind: KindNotFound,
		},
		{
			name:     "permission denied phrase maps to forbidden",
			input:    &BackendError{Code: "42501", Message: "permission denied for table posts"},
			wantKind: KindForbidden,
		},
		{
			name:     "row-level security phrase maps to forbidden",
			input:    &BackendError{Message: "new row violates row-level security policy"},
			wantKind: KindForbidden,
		},
		{
			name:     "JWT phrase maps to session expired",
			input:    &BackendError{Message: "JWT expired"},
			wantKind: KindSessionExpired,
		},
		{
			name:     "token phrase maps to session expired",
			input:    &BackendError{Message: "refresh token not found"},
			wantKind: KindSessionExpired,
		},
		{
			name:     "invalid login credentials phrase",
			input:    &BackendError{Message: "Invalid login credentials"},
			wantKind: KindInvalidCredentials,
		},
		{
			name:     "unmatched code falls back to database",
			input:    &BackendError{Code: "40001", Message: "serialization failure"},
			wantKind: KindDatabase,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("Normalize(%+v) kind = %q, want %q", tt.input, got.Kind, tt.wantKind)
			}
			if got.Cause == nil {
				t.Error("backend errors should be retained as cause")
			}
		})
	}
}

// TestNormalize_BackendBeatsNetworkSniffing pins the precedence between
// rules 2 and 3: a backend failure whose message also looks like a network
// failure must resolve through the backend table.
func TestNormalize_BackendBeatsNetworkSniffing(t *testing.T) {
	t.Parallel()
	be := &BackendError{Code: "23505", Message: "duplicate key (statement timeout retried)"}

	got := Normalize(be)
	if got.Kind != KindDuplicate {
		t.Errorf("kind = %q, want %q (rule 2 must win over rule 3)", got.Kind, KindDuplicate)
	}
}

func TestNormalize_NetworkFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    error
		wantKind Kind
	}{
		{"timeout substring", errors.New("i/o timeout"), KindTimeout},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), KindTimeout},
		{"network request failed", errors.New("network request failed"), KindNetwork},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if !got.Retryable {
				t.Error("network-layer failures must be marked retryable")
			}
			if got.Cause == nil {
				t.Error("original failure should be retained as cause")
			}
		})
	}
}

func TestNormalize_RetainsDiagnosticValue(t *testing.T) {
	t.Parallel()
	type odd struct{ n int }
	got := Normalize(odd{n: 7})

	if got.Kind != KindUnknown {
		t.Errorf("kind = %q, want %q", got.Kind, KindUnknown)
	}
	if got.Value == nil {
		t.Error("unrecognized values should be retained for diagnostics")
	}
}

func TestBackendError_ErrorString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *BackendError
		want string
	}{
		{"with code", &BackendError{Code: "23505", Message: "duplicate key"}, "backend error 23505: duplicate key"},
		{"without code", &BackendError{Message: "broken"}, "backend error: broken"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
