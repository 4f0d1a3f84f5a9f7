package validate

import (
	"strings"
	"testing"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
)

func defaultValidator() Validator {
	return NewValidator(DefaultRules())
}

func TestEmail(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	tests := []struct {
		name     string
		input    string
		wantOk   bool
		wantKind apperrors.Kind
	}{
		{"valid address", "alice@example.com", true, ""},
		{"subdomain", "bob@mail.example.co", true, ""},
		{"empty", "", false, apperrors.KindMissingField},
		{"whitespace only", "   ", false, apperrors.KindMissingField},
		{"no at sign", "alice.example.com", false, apperrors.KindValidation},
		{"no tld", "alice@example", false, apperrors.KindValidation},
		{"spaces inside", "alice smith@example.com", false, apperrors.KindValidation},
		{"two at signs", "a@b@example.com", false, apperrors.KindValidation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.Email(tt.input)
			if res.IsOk() != tt.wantOk {
				t.Fatalf("Email(%q) ok = %v, want %v", tt.input, res.IsOk(), tt.wantOk)
			}
			if tt.wantOk {
				if got := res.Unwrap().String(); got != tt.input {
					t.Errorf("validated value = %q, must be byte-identical to input %q", got, tt.input)
				}
				return
			}
			e := res.UnwrapErr()
			if e.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", e.Kind, tt.wantKind)
			}
			if e.Field != "email" {
				t.Errorf("field = %q, want %q", e.Field, "email")
			}
		})
	}
}

func TestUsername(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	tests := []struct {
		name        string
		input       string
		wantOk      bool
		wantMessage string
	}{
		{"valid", "john_doe1", true, ""},
		{"minimum length", "abc", true, ""},
		{"maximum length", strings.Repeat("a", 30), true, ""},
		{"too short", "ab", false, "at least 3"},
		{"too long", strings.Repeat("a", 31), false, "at most 30"},
		{"empty", "", false, "required"},
		{"illegal charset", "john.doe", false, "letters, digits, and underscore"},
		{"spaces", "john doe", false, "letters, digits, and underscore"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.Username(tt.input)
			if res.IsOk() != tt.wantOk {
				t.Fatalf("Username(%q) ok = %v, want %v", tt.input, res.IsOk(), tt.wantOk)
			}
			if tt.wantOk {
				if got := res.Unwrap().String(); got != tt.input {
					t.Errorf("validated value = %q, must be byte-identical to input %q", got, tt.input)
				}
				return
			}
			e := res.UnwrapErr()
			if !e.IsValidation() {
				t.Errorf("kind = %q, want a validation-family kind", e.Kind)
			}
			if e.Field != "username" {
				t.Errorf("field = %q, want %q", e.Field, "username")
			}
			if !strings.Contains(e.Message, tt.wantMessage) {
				t.Errorf("message = %q, should mention %q", e.Message, tt.wantMessage)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	tests := []struct {
		name   string
		input  string
		wantOk bool
	}{
		{"valid", "Secret123", true},
		{"valid with special", "Secret123!", true},
		{"too short", "Ab1", false},
		{"too long", strings.Repeat("Aa1", 50), false},
		{"no uppercase", "secret123", false},
		{"no lowercase", "SECRET123", false},
		{"no digit", "SecretPass", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.Password(tt.input)
			if res.IsOk() != tt.wantOk {
				t.Fatalf("Password(%q) ok = %v, want %v", tt.input, res.IsOk(), tt.wantOk)
			}
			if tt.wantOk {
				if got := res.Unwrap().String(); got != tt.input {
					t.Errorf("validated value must be byte-identical to input")
				}
			}
		})
	}

	t.Run("special required by rules", func(t *testing.T) {
		t.Parallel()
		rules := DefaultRules()
		rules.PasswordRequireSpecial = true
		strict := NewValidator(rules)

		if strict.Password("Secret123").IsOk() {
			t.Error("password without special character should fail under strict rules")
		}
		if !strict.Password("Secret123!").IsOk() {
			t.Error("password with special character should pass under strict rules")
		}
	})
}

func TestPasswordsMatch(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	pw := v.Password("Secret123").Unwrap()

	t.Run("identical passes", func(t *testing.T) {
		t.Parallel()
		res := v.PasswordsMatch(pw, "Secret123")
		if !res.IsOk() {
			t.Fatal("identical confirmation should pass")
		}
		if res.Unwrap().String() != "Secret123" {
			t.Error("match should return the same certified password")
		}
	})

	t.Run("mismatch errors on the confirmation field", func(t *testing.T) {
		t.Parallel()
		res := v.PasswordsMatch(pw, "Secret124")
		if !res.IsErr() {
			t.Fatal("mismatched confirmation should fail")
		}
		e := res.UnwrapErr()
		if e.Kind != apperrors.KindValidation {
			t.Errorf("kind = %q, want %q", e.Kind, apperrors.KindValidation)
		}
		if e.Field != "password_confirmation" {
			t.Errorf("field = %q, want %q", e.Field, "password_confirmation")
		}
	})
}

func TestContentBounds(t *testing.T) {
	t.Parallel()
	v := defaultValidator()

	tests := []struct {
		name   string
		check  func(string) (bool, *apperrors.Error)
		input  string
		wantOk bool
	}{
		{"post at max", wrapPost(v), strings.Repeat("x", 2000), true},
		{"post over max", wrapPost(v), strings.Repeat("x", 2001), false},
		{"post empty", wrapPost(v), "", false},
		{"comment at max", wrapComment(v), strings.Repeat("x", 500), true},
		{"comment over max", wrapComment(v), strings.Repeat("x", 501), false},
		{"comment empty", wrapComment(v), "", false},
		{"bio empty is valid", wrapBio(v), "", true},
		{"bio at max", wrapBio(v), strings.Repeat("x", 160), true},
		{"bio over max", wrapBio(v), strings.Repeat("x", 161), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := tt.check(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v (err: %v)", ok, tt.wantOk, err)
			}
			if !ok && !err.IsValidation() {
				t.Errorf("kind = %q, want a validation-family kind", err.Kind)
			}
		})
	}
}

func wrapPost(v Validator) func(string) (bool, *apperrors.Error) {
	return func(s string) (bool, *apperrors.Error) {
		res := v.PostContent(s)
		if res.IsOk() {
			return true, nil
		}
		return false, res.UnwrapErr()
	}
}

func wrapComment(v Validator) func(string) (bool, *apperrors.Error) {
	return func(s string) (bool, *apperrors.Error) {
		res := v.CommentContent(s)
		if res.IsOk() {
			return true, nil
		}
		return false, res.UnwrapErr()
	}
}

func wrapBio(v Validator) func(string) (bool, *apperrors.Error) {
	return func(s string) (bool, *apperrors.Error) {
		res := v.Bio(s)
		if res.IsOk() {
			return true, nil
		}
		return false, res.UnwrapErr()
	}
}

func TestMediaURL(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	tests := []struct {
		name   string
		input  string
		wantOk bool
	}{
		{"https URL", "https://cdn.example.com/a.png", true},
		{"http URL", "http://example.com/v.mp4", true},
		{"missing scheme", "cdn.example.com/a.png", false},
		{"scheme only", "https://", false},
		{"empty", "", false},
		{"garbage", "://nope", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.MediaURL(tt.input)
			if res.IsOk() != tt.wantOk {
				t.Errorf("MediaURL(%q) ok = %v, want %v", tt.input, res.IsOk(), tt.wantOk)
			}
		})
	}
}

func TestMediaFile(t *testing.T) {
	t.Parallel()
	v := defaultValidator()
	tests := []struct {
		name     string
		fileName string
		mime     string
		size     int64
		wantOk   bool
		wantKind apperrors.Kind
	}{
		{"small png", "a.png", "image/png", 1 << 20, true, ""},
		{"image at bound", "a.jpg", "image/jpeg", 10 << 20, true, ""},
		{"image over bound", "a.jpg", "image/jpeg", 10<<20 + 1, false, apperrors.KindMediaTooLarge},
		{"video under bound", "v.mp4", "video/mp4", 40 << 20, true, ""},
		{"video over bound", "v.mp4", "video/mp4", 50<<20 + 1, false, apperrors.KindMediaTooLarge},
		{"disallowed mime", "doc.pdf", "application/pdf", 1024, false, apperrors.KindInvalidMediaType},
		{"empty file", "a.png", "image/png", 0, false, apperrors.KindValidation},
		{"missing name", "", "image/png", 1024, false, apperrors.KindMissingField},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := v.MediaFile(tt.fileName, tt.mime, tt.size)
			if res.IsOk() != tt.wantOk {
				t.Fatalf("ok = %v, want %v", res.IsOk(), tt.wantOk)
			}
			if tt.wantOk {
				mf := res.Unwrap()
				if mf.Name() != tt.fileName || mf.MIMEType() != tt.mime || mf.Size() != tt.size {
					t.Error("certified file description should match the input")
				}
				return
			}
			e := res.UnwrapErr()
			if e.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", e.Kind, tt.wantKind)
			}
		})
	}

	t.Run("too-large error carries the image bound", func(t *testing.T) {
		t.Parallel()
		res := v.MediaFile("big.png", "image/png", 11<<20)
		e := res.UnwrapErr()
		if e.MaxSizeBytes != 10<<20 {
			t.Errorf("MaxSizeBytes = %d, want %d", e.MaxSizeBytes, int64(10<<20))
		}
		if e.FileName != "big.png" {
			t.Errorf("FileName = %q, want %q", e.FileName, "big.png")
		}
	})

	t.Run("invalid-type error carries the allow-list", func(t *testing.T) {
		t.Parallel()
		res := v.MediaFile("doc.pdf", "application/pdf", 1024)
		e := res.UnwrapErr()
		if len(e.AllowedTypes) == 0 {
			t.Error("AllowedTypes should list the acceptable MIME types")
		}
	})
}
