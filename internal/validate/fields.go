package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/result"
)

// Branded field types. Each wraps its raw primitive in a struct with an
// unexported value field, so the matching validator is the only producer.
// Validation certifies content, it never transforms it: String() returns
// the exact input that passed.

// Email is a string certified to have the local@domain.tld shape.
type Email struct{ value string }

// String returns the raw email, byte-identical to the validated input.
func (e Email) String() string { return e.value }

// Username is a string certified against the username length and charset
// rules.
type Username struct{ value string }

// String returns the raw username, byte-identical to the validated input.
func (u Username) String() string { return u.value }

// Password is a string certified against the password length and
// composition rules.
type Password struct{ value string }

// String returns the raw password, byte-identical to the validated input.
func (p Password) String() string { return p.value }

// PostContent is a string certified against the post length bounds.
type PostContent struct{ value string }

// String returns the raw content, byte-identical to the validated input.
func (c PostContent) String() string { return c.value }

// CommentContent is a string certified against the comment length bounds.
type CommentContent struct{ value string }

// String returns the raw content, byte-identical to the validated input.
func (c CommentContent) String() string { return c.value }

// Bio is a string certified against the bio length bound. Bios are
// optional; the empty string is a valid Bio.
type Bio struct{ value string }

// String returns the raw bio, byte-identical to the validated input.
func (b Bio) String() string { return b.value }

// MediaURL is a string certified to parse as a well-formed absolute URL.
type MediaURL struct{ value string }

// String returns the raw URL, byte-identical to the validated input.
func (m MediaURL) String() string { return m.value }

// MediaFile describes an upload certified against the per-kind size bound
// and MIME allow-list.
type MediaFile struct {
	name     string
	mimeType string
	size     int64
}

// Name returns the certified file name.
func (m MediaFile) Name() string { return m.name }

// MIMEType returns the certified MIME type.
func (m MediaFile) MIMEType() string { return m.mimeType }

// Size returns the certified size in bytes.
func (m MediaFile) Size() int64 { return m.size }

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// required rejects empty or whitespace-only input for a required field.
func required(raw, field string) *apperrors.Error {
	if strings.TrimSpace(raw) == "" {
		return apperrors.MissingField(field)
	}
	return nil
}

// Email validates the email shape and certifies the unmodified input.
func (v Validator) Email(raw string) result.Result[Email] {
	if err := required(raw, "email"); err != nil {
		return result.Err[Email](err)
	}
	if !emailPattern.MatchString(raw) {
		return result.Err[Email](apperrors.Validation(
			"email must be a valid address of the form local@domain.tld", "email"))
	}
	return result.Ok(Email{value: raw})
}

// Username validates length bounds and charset and certifies the
// unmodified input.
func (v Validator) Username(raw string) result.Result[Username] {
	if err := required(raw, "username"); err != nil {
		return result.Err[Username](err)
	}
	n := utf8.RuneCountInString(raw)
	if n < v.rules.UsernameMinLen {
		return result.Err[Username](apperrors.Validation(
			fmt.Sprintf("username must be at least %d characters", v.rules.UsernameMinLen), "username"))
	}
	if n > v.rules.UsernameMaxLen {
		return result.Err[Username](apperrors.Validation(
			fmt.Sprintf("username must be at most %d characters", v.rules.UsernameMaxLen), "username"))
	}
	if !usernamePattern.MatchString(raw) {
		return result.Err[Username](apperrors.Validation(
			"username may only contain letters, digits, and underscore", "username"))
	}
	return result.Ok(Username{value: raw})
}

// Password validates length bounds and character composition and certifies
// the unmodified input. Upper, lower, and digit are always required; a
// special character is required only when the rules demand it.
func (v Validator) Password(raw string) result.Result[Password] {
	if err := required(raw, "password"); err != nil {
		return result.Err[Password](err)
	}
	n := utf8.RuneCountInString(raw)
	if n < v.rules.PasswordMinLen {
		return result.Err[Password](apperrors.Validation(
			fmt.Sprintf("password must be at least %d characters", v.rules.PasswordMinLen), "password"))
	}
	if n > v.rules.PasswordMaxLen {
		return result.Err[Password](apperrors.Validation(
			fmt.Sprintf("password must be at most %d characters", v.rules.PasswordMaxLen), "password"))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return result.Err[Password](apperrors.Validation(
			"password must contain an uppercase letter, a lowercase letter, and a digit", "password"))
	}
	if v.rules.PasswordRequireSpecial && !hasSpecial {
		return result.Err[Password](apperrors.Validation(
			"password must contain a special character", "password"))
	}
	return result.Ok(Password{value: raw})
}

// PasswordsMatch certifies that the confirmation input is identical to an
// already-validated password. A mismatch is reported against the
// password_confirmation field.
func (v Validator) PasswordsMatch(password Password, confirmation string) result.Result[Password] {
	if password.value != confirmation {
		return result.Err[Password](apperrors.Validation(
			"passwords do not match", "password_confirmation"))
	}
	return result.Ok(password)
}

// PostContent validates the post length bounds and certifies the
// unmodified input.
func (v Validator) PostContent(raw string) result.Result[PostContent] {
	if err := required(raw, "content"); err != nil {
		return result.Err[PostContent](err)
	}
	if n := utf8.RuneCountInString(raw); n > v.rules.PostMaxLen {
		return result.Err[PostContent](apperrors.Validation(
			fmt.Sprintf("post content must be at most %d characters", v.rules.PostMaxLen), "content"))
	}
	return result.Ok(PostContent{value: raw})
}

// CommentContent validates the comment length bounds and certifies the
// unmodified input.
func (v Validator) CommentContent(raw string) result.Result[CommentContent] {
	if err := required(raw, "comment"); err != nil {
		return result.Err[CommentContent](err)
	}
	if n := utf8.RuneCountInString(raw); n > v.rules.CommentMaxLen {
		return result.Err[CommentContent](apperrors.Validation(
			fmt.Sprintf("comment must be at most %d characters", v.rules.CommentMaxLen), "comment"))
	}
	return result.Ok(CommentContent{value: raw})
}

// Bio validates the optional bio against its length bound and certifies
// the unmodified input. Empty input is valid.
func (v Validator) Bio(raw string) result.Result[Bio] {
	if n := utf8.RuneCountInString(raw); n > v.rules.BioMaxLen {
		return result.Err[Bio](apperrors.Validation(
			fmt.Sprintf("bio must be at most %d characters", v.rules.BioMaxLen), "bio"))
	}
	return result.Ok(Bio{value: raw})
}

// MediaURL validates that the input parses as a well-formed absolute URL
// and certifies the unmodified input.
func (v Validator) MediaURL(raw string) result.Result[MediaURL] {
	if err := required(raw, "media_url"); err != nil {
		return result.Err[MediaURL](err)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return result.Err[MediaURL](apperrors.Validation(
			"media URL must be a well-formed URL including scheme and host", "media_url"))
	}
	return result.Ok(MediaURL{value: raw})
}

// MediaFile validates an upload against the MIME allow-list and size bound
// for its media kind and certifies the file description. Image and video
// uploads carry different bounds; any other MIME type is rejected with the
// combined allow-list.
func (v Validator) MediaFile(name, mimeType string, size int64) result.Result[MediaFile] {
	if err := required(name, "media_file"); err != nil {
		return result.Err[MediaFile](err)
	}
	if strings.TrimSpace(mimeType) == "" {
		return result.Err[MediaFile](apperrors.Validation(
			"media file must declare a MIME type", "media_file"))
	}

	var maxBytes int64
	switch {
	case contains(v.rules.AllowedImageTypes, mimeType):
		maxBytes = v.rules.ImageMaxBytes
	case contains(v.rules.AllowedVideoTypes, mimeType):
		maxBytes = v.rules.VideoMaxBytes
	default:
		allowed := make([]string, 0, len(v.rules.AllowedImageTypes)+len(v.rules.AllowedVideoTypes))
		allowed = append(allowed, v.rules.AllowedImageTypes...)
		allowed = append(allowed, v.rules.AllowedVideoTypes...)
		return result.Err[MediaFile](apperrors.InvalidMediaType(name, allowed))
	}
	if size > maxBytes {
		return result.Err[MediaFile](apperrors.MediaTooLarge(name, maxBytes))
	}
	if size <= 0 {
		return result.Err[MediaFile](apperrors.Validation(
			"media file must not be empty", "media_file"))
	}
	return result.Ok(MediaFile{name: name, mimeType: mimeType, size: size})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
