package validate

// Default bounds for the reference rule set.
const (
	DefaultUsernameMinLen = 3
	DefaultUsernameMaxLen = 30
	DefaultPasswordMinLen = 8
	DefaultPasswordMaxLen = 128
	DefaultPostMaxLen     = 2000
	DefaultCommentMaxLen  = 500
	DefaultBioMaxLen      = 160
	DefaultImageMaxBytes  = 10 << 20 // 10 MB
	DefaultVideoMaxBytes  = 50 << 20 // 50 MB
)

// Rules holds every configurable bound the field validators consume. The
// package never mutates a Rules value; deployments override individual
// bounds through the config layer.
type Rules struct {
	UsernameMinLen int
	UsernameMaxLen int

	PasswordMinLen int
	PasswordMaxLen int
	// PasswordRequireSpecial additionally demands a non-alphanumeric
	// character. Upper, lower, and digit are always required.
	PasswordRequireSpecial bool

	PostMaxLen    int
	CommentMaxLen int
	BioMaxLen     int

	ImageMaxBytes int64
	VideoMaxBytes int64
	// AllowedImageTypes and AllowedVideoTypes are the MIME allow-lists
	// per media kind.
	AllowedImageTypes []string
	AllowedVideoTypes []string
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		UsernameMinLen:    DefaultUsernameMinLen,
		UsernameMaxLen:    DefaultUsernameMaxLen,
		PasswordMinLen:    DefaultPasswordMinLen,
		PasswordMaxLen:    DefaultPasswordMaxLen,
		PostMaxLen:        DefaultPostMaxLen,
		CommentMaxLen:     DefaultCommentMaxLen,
		BioMaxLen:         DefaultBioMaxLen,
		ImageMaxBytes:     DefaultImageMaxBytes,
		VideoMaxBytes:     DefaultVideoMaxBytes,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		AllowedVideoTypes: []string{"video/mp4", "video/webm", "video/quicktime"},
	}
}

// Validator applies the injected rule set to raw field values. The zero
// value is not usable; construct with NewValidator.
type Validator struct {
	rules Rules
}

// NewValidator creates a Validator applying the given rules.
func NewValidator(rules Rules) Validator {
	return Validator{rules: rules}
}

// Rules returns the rule set this validator applies.
func (v Validator) Rules() Rules { return v.rules }
