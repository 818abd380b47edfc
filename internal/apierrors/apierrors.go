package apierrors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	// ErrAlreadyConsumed signals that a reset code or token was raced or reused.
	ErrAlreadyConsumed = errors.New("already consumed")
)
