package domain

import "errors"

// Sentinel errors for the domain layer. Stores and services wrap these so
// callers can classify failures with errors.Is.
var (
	// ErrUsernameTaken indicates that an account with the requested login
	// name already exists.
	ErrUsernameTaken = errors.New("username already in use")

	// ErrUsernameInvalid indicates that the requested login name is not an
	// acceptable member id (bad characters, reserved name, too long).
	ErrUsernameInvalid = errors.New("username is not valid")

	// ErrConflict is returned when a concurrent write to the account store
	// prevented the operation from completing. It is never retried.
	ErrConflict = errors.New("account store write conflict")

	// ErrNotFound is returned when the requested account does not exist.
	ErrNotFound = errors.New("requested resource not found")

	// ErrNoEmail is returned when a notification is requested for an account
	// that has no email address on record.
	ErrNoEmail = errors.New("account has no email address")
)
