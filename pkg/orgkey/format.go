package orgkey

import (
	"errors"
	"regexp"

	"github.com/dmitrymomot/onboarding/pkg/validator"
)

// MaxLength is the maximum key length in bytes.
const MaxLength = 255

// Translation keys used by the field.
const (
	MessageLabel         = "onboarding.create_organization.organization_name"
	MessageInvalidFormat = "onboarding.create_organization.organization_name.error"
	MessageTaken         = "onboarding.create_organization.organization_name.taken"
)

var (
	// keyPattern accepts a lowercase letter or digit followed by letters, digits or hyphens.
	keyPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]?$`)
	schemePattern = regexp.MustCompile(`https*://`)
)

var defaultMessages = map[string]string{
	MessageLabel:         "Key",
	MessageInvalidFormat: "The key must contain only lowercase letters, digits and hyphens, and must not start with a hyphen.",
	MessageTaken:         "This key is already taken.",
}

// TranslateFunc maps a message key to display text.
type TranslateFunc func(key string) string

// DefaultTranslate returns the built-in English messages, or the key itself when unknown.
func DefaultTranslate(key string) string {
	if msg, ok := defaultMessages[key]; ok {
		return msg
	}
	return key
}

// ValidateFormat checks key length and pattern without trimming.
// The returned error wraps ErrInvalidFormat and the validator.ValidationErrors detail.
func ValidateFormat(key string) error {
	if err := validator.Apply(
		validator.MaxLenString("key", key, MaxLength),
		validator.MatchesPattern("key", key, keyPattern, "organization key"),
	); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	return nil
}

// DisplayPrefix builds the static prefix shown before the key input,
// e.g. "https://example.com" becomes "example.com/organizations/".
func DisplayPrefix(hostURL string) string {
	if loc := schemePattern.FindStringIndex(hostURL); loc != nil {
		hostURL = hostURL[:loc[0]] + hostURL[loc[1]:]
	}
	return hostURL + "/organizations/"
}
