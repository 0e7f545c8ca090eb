package validators

import (
	"regexp"
)

var (
	ErrUsernameEmpty   = invalid("no username provided")
	ErrUsernameInvalid = invalid("username must be 3-32 characters of letters, digits, '.', '_' or '-'")
	ErrPhoneInvalid    = invalid("invalid phone number provided")
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if !usernameRe.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}

// PhoneValidator accepts an empty phone since it's optional
func PhoneValidator(p string) error {
	if p == "" {
		return nil
	}

	if !phoneRe.MatchString(p) {
		return ErrPhoneInvalid
	}

	return nil
}
