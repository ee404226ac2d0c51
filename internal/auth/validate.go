package auth

import (
	"regexp"
	"unicode"

	"freelancer-server/internal/shared/errors"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername requires 3-20 characters from [A-Za-z0-9_].
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return errors.Validation("username must be 3-20 characters long")
	}
	if !usernamePattern.MatchString(username) {
		return errors.Validation("username may only contain letters, digits and underscores")
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.Validation("email address format is invalid")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// one uppercase letter, one lowercase letter and one digit. Symbols are
// allowed but not required.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.Validation("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasUpper {
		return errors.Validation("password must contain an uppercase letter")
	}
	if !hasLower {
		return errors.Validation("password must contain a lowercase letter")
	}
	if !hasDigit {
		return errors.Validation("password must contain a digit")
	}
	return nil
}
