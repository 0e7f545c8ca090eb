// Package store contains the database access of every resource. All reads and
// writes are scoped to the user that owns the rows.
package store

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("resource is owned by another user")
	ErrConflict          = errors.New("already exists")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

var (
	ErrUsernameTaken  error = &ConflictError{Msg: "username is already taken"}
	ErrEmailTaken     error = &ConflictError{Msg: "this email is already registered, please login or use a different email"}
	ErrCategoryExists error = &ConflictError{Msg: "category already exists"}
)

// ConflictError is a uniqueness violation. It matches ErrConflict with errors.Is.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
