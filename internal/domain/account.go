package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account is a registered site member.
type Account struct {
	ID           uuid.UUID         `json:"id"`
	Username     string            `json:"username"`
	PasswordHash string            `json:"password_hash,omitempty"`
	Email        string            `json:"email,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	NotifiedAt   *time.Time        `json:"notified_at,omitempty"`
}

// HasCredentials reports whether the account can still be used to log in.
func (a *Account) HasCredentials() bool {
	return a.PasswordHash != ""
}

// AccountStore defines the contract for account storage operations.
type AccountStore interface {
	// Create inserts a new account. It returns ErrUsernameTaken when the
	// username is already registered.
	Create(ctx context.Context, account *Account) error

	// Get returns the account with the given username or ErrNotFound.
	Get(ctx context.Context, username string) (*Account, error)

	// MarkNotified records that the registration notification was sent.
	// Implementations return ErrConflict when a concurrent write won.
	MarkNotified(ctx context.Context, username string, at time.Time) error

	// DeleteCredentials removes the authentication record of the account.
	DeleteCredentials(ctx context.Context, username string) error

	// Close releases the underlying connection, if any.
	Close() error
}
