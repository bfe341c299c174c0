package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Credential format errors.
var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// emailRegex matches local@domain.tld: letters, digits and ._%+- in the
// local part, a dot-separated domain, and a TLD of at least two letters.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// passwordSymbols is the fixed set of accepted special characters.
const passwordSymbols = "@$!%*?&"

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// ValidateEmail checks that the email has a plausible local@domain.tld
// shape. It performs no network or MX validation.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: must contain @ and a valid domain", ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters,
// built only from letters, digits and the special characters @$!%*?&,
// with at least one lowercase letter, one uppercase letter, one digit
// and one special character. The returned error names every
// requirement the password is missing.
func ValidatePassword(password string) error {
	var missing []string

	if len(password) < minPasswordLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", minPasswordLength))
	}

	var hasLower, hasUpper, hasDigit, hasSymbol, hasDisallowed bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			hasDisallowed = true
		}
	}

	if !hasLower {
		missing = append(missing, "a lowercase letter")
	}
	if !hasUpper {
		missing = append(missing, "an uppercase letter")
	}
	if !hasDigit {
		missing = append(missing, "a digit")
	}
	if !hasSymbol {
		missing = append(missing, "a special character ("+passwordSymbols+")")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrWeakPassword, strings.Join(missing, ", "))
	}
	if hasDisallowed {
		return fmt.Errorf("%w: only letters, digits and %s are allowed", ErrWeakPassword, passwordSymbols)
	}
	return nil
}
