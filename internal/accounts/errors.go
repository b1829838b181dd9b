package accounts

import (
	"errors"
	"fmt"

	"github.com/nfrund/joinform/internal/domain"
)

// StoreError represents a store failure with the operation that caused it.
type StoreError struct {
	// The underlying error, usually a domain sentinel or a driver error.
	err error

	// Operation being performed, e.g. "create account".
	op string

	// Username the operation was about, if any.
	username string
}

// NewStoreError creates a StoreError for op.
func NewStoreError(err error, op string) *StoreError {
	return &StoreError{err: err, op: op}
}

// WithUsername adds the affected username to the error.
func (e *StoreError) WithUsername(username string) *StoreError {
	e.username = username
	return e
}

// Error returns the error message.
func (e *StoreError) Error() string {
	msg := e.op
	if e.username != "" {
		msg = fmt.Sprintf("%s %q", msg, e.username)
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.err
}

// Is matches the domain sentinels carried by the underlying error.
func (e *StoreError) Is(target error) bool {
	switch target {
	case domain.ErrUsernameTaken, domain.ErrConflict, domain.ErrNotFound:
		return errors.Is(e.err, target)
	}
	return false
}
