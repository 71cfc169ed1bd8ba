package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s-]+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const passwordSpecials = "@$!%*?&"

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func validateName(field, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 || !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %s must be 2-50 characters long and can only contain letters, spaces, and hyphens", ErrValidationFailed, field)
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 255 || !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: please provide a valid email address", ErrValidationFailed)
	}
	return nil
}

// validatePassword enforces the registration password policy: 8-50
// characters with at least one uppercase letter, one lowercase letter, one
// digit and one special character, drawn from the allowed set only.
func validatePassword(password string) error {
	policyErr := fmt.Errorf("%w: password must be 8-50 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character", ErrValidationFailed)
	if len(password) < 8 || len(password) > 50 {
		return policyErr
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			hasLower = true
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			return policyErr
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return policyErr
	}
	return nil
}
