package validationx

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/ARUMANDESU/validation"
)

var ErrInvalidPasswordFormat = validation.NewError(
	"validation_is_password",
	"must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one digit, and one special character",
)

var ErrInvalidAccountFormat = validation.NewError(
	"validation_is_account",
	"must start with a letter and contain only letters, digits and underscores",
)

var PasswordFormat = PasswordFormatRule{}

// Account names start with a letter; the rest is letters, digits or underscore.
var accountRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

var IsAccount = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle emptiness
	}

	if !accountRegex.MatchString(s) {
		return ErrInvalidAccountFormat
	}
	return nil
})

type PasswordFormatRule struct{}

// Validate checks a password for minimum length and presence of uppercase,
// lowercase, digit, and special character.
func (r PasswordFormatRule) Validate(value any) error {
	password, ok := value.(string)
	if !ok {
		return errors.New("value is not a string")
	}

	if len(password) < 8 {
		return ErrInvalidPasswordFormat
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool

	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		default:
			// Invalid character found
			return ErrInvalidPasswordFormat
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrInvalidPasswordFormat
	}

	return nil
}
