package validators

import (
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty   = invalid("no email address provided")
	ErrEmailInvalid = invalid("invalid email address provided")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}

// NormalizeEmail trims e and lower cases it so lookups ignore case
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
