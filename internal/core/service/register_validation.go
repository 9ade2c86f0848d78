package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// Registration rules enforced before any remote call: the CMS would reject
// these anyway, but failing locally keeps the error message deterministic and
// saves a round trip.

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)
)

// ValidateEmail checks the RFC-lite address shape (local part, @, dotted
// domain).
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return domain.Validationf("invalid email address")
	}
	return nil
}

// ValidateUsername requires alphanumerics or underscores, minimum 3 chars.
// An email address is also accepted: the memorial workflow registers accounts
// with the contact email as the username.
func ValidateUsername(username string) error {
	if usernameRe.MatchString(username) || emailRe.MatchString(username) {
		return nil
	}
	return domain.Validationf("username must be at least 3 characters of letters, digits or underscores")
}

// ValidatePassword requires length >= 8 with at least one letter, one digit
// and one symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.Validationf("password must be at least 8 characters")
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if !letter || !digit || !symbol {
		return domain.Validationf("password must contain a letter, a digit and a symbol")
	}
	return nil
}

// mapRegisterError rewrites known CMS registration failures into messages a
// family member can act on; unknown messages pass through verbatim.
func mapRegisterError(err error) error {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return err
	}
	switch {
	case strings.Contains(ue.Message, "already registered"):
		return &domain.UpstreamError{
			StatusCode: ue.StatusCode,
			Message:    "This email address is already registered. Please use a different email or try logging in.",
		}
	case strings.Contains(ue.Message, "Missing required fields"):
		return &domain.UpstreamError{StatusCode: ue.StatusCode, Message: "Please fill in all required fields."}
	case strings.Contains(ue.Message, "Invalid username"):
		return &domain.UpstreamError{
			StatusCode: ue.StatusCode,
			Message:    "The email address contains invalid characters. Please use a different email address.",
		}
	case strings.Contains(ue.Message, "Invalid email"):
		return &domain.UpstreamError{StatusCode: ue.StatusCode, Message: "Please enter a valid email address."}
	}
	return err
}
