// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import "errors"

// ValidationError is returned for any input the client has to fix
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is, or wraps, a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
