package validate

import (
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/result"
)

// Composite validators run their field validators in a fixed order and
// fail fast on the first failure. On success they assemble a single object
// of certified fields; there is no accumulate-all mode.

// Registration is a fully validated sign-up submission.
type Registration struct {
	Email    Email
	Username Username
	Password Password
}

// Registration validates a sign-up submission field by field: email,
// username, password, then the confirmation match.
func (v Validator) Registration(email, username, password, confirmation string) result.Result[Registration] {
	emailRes := v.Email(email)
	if emailRes.IsErr() {
		return result.Err[Registration](emailRes.UnwrapErr())
	}
	usernameRes := v.Username(username)
	if usernameRes.IsErr() {
		return result.Err[Registration](usernameRes.UnwrapErr())
	}
	passwordRes := v.Password(password)
	if passwordRes.IsErr() {
		return result.Err[Registration](passwordRes.UnwrapErr())
	}
	matchRes := v.PasswordsMatch(passwordRes.Unwrap(), confirmation)
	if matchRes.IsErr() {
		return result.Err[Registration](matchRes.UnwrapErr())
	}
	return result.Ok(Registration{
		Email:    emailRes.Unwrap(),
		Username: usernameRes.Unwrap(),
		Password: matchRes.Unwrap(),
	})
}

// NewPost is a fully validated post submission. MediaURL is nil when the
// post carries no media.
type NewPost struct {
	Content  PostContent
	MediaURL *MediaURL
}

// NewPost validates a post submission: content first, then the optional
// media URL. An empty mediaURL means no media.
func (v Validator) NewPost(content, mediaURL string) result.Result[NewPost] {
	contentRes := v.PostContent(content)
	if contentRes.IsErr() {
		return result.Err[NewPost](contentRes.UnwrapErr())
	}
	post := NewPost{Content: contentRes.Unwrap()}
	if mediaURL != "" {
		urlRes := v.MediaURL(mediaURL)
		if urlRes.IsErr() {
			return result.Err[NewPost](urlRes.UnwrapErr())
		}
		u := urlRes.Unwrap()
		post.MediaURL = &u
	}
	return result.Ok(post)
}

// NewComment is a fully validated comment submission.
type NewComment struct {
	Content CommentContent
}

// NewComment validates a comment submission.
func (v Validator) NewComment(content string) result.Result[NewComment] {
	contentRes := v.CommentContent(content)
	if contentRes.IsErr() {
		return result.Err[NewComment](contentRes.UnwrapErr())
	}
	return result.Ok(NewComment{Content: contentRes.Unwrap()})
}

// ProfileUpdate is a fully validated profile edit.
type ProfileUpdate struct {
	Username Username
	Bio      Bio
}

// ProfileUpdate validates a profile edit: username, then the optional bio.
func (v Validator) ProfileUpdate(username, bio string) result.Result[ProfileUpdate] {
	usernameRes := v.Username(username)
	if usernameRes.IsErr() {
		return result.Err[ProfileUpdate](usernameRes.UnwrapErr())
	}
	bioRes := v.Bio(bio)
	if bioRes.IsErr() {
		return result.Err[ProfileUpdate](bioRes.UnwrapErr())
	}
	return result.Ok(ProfileUpdate{
		Username: usernameRes.Unwrap(),
		Bio:      bioRes.Unwrap(),
	})
}

// FieldErrorsOf collects the per-field messages of a validation-family
// error into a field→message map suitable for form feedback. Non-validation
// errors yield an empty map.
func FieldErrorsOf(err *apperrors.Error) map[string]string {
	out := make(map[string]string)
	if err == nil || !err.IsValidation() {
		return out
	}
	if err.Field != "" && len(err.FieldErrors) == 0 {
		out[err.Field] = err.Message
		return out
	}
	for field, msgs := range err.FieldErrors {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}
