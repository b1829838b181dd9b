package accounts

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/nfrund/joinform/internal/domain"
)

// MemoryStore keeps accounts in process memory. It is used for development
// and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*domain.Account)}
}

// Create implements domain.AccountStore.
func (s *MemoryStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return NewStoreError(domain.ErrUsernameTaken, "create account").WithUsername(account.Username)
	}
	s.accounts[account.Username] = clone(account)
	return nil
}

// Get implements domain.AccountStore.
func (s *MemoryStore) Get(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, NewStoreError(domain.ErrNotFound, "get account").WithUsername(username)
	}
	return clone(account), nil
}

// MarkNotified implements domain.AccountStore.
func (s *MemoryStore) MarkNotified(ctx context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return NewStoreError(domain.ErrNotFound, "mark notified").WithUsername(username)
	}
	at = at.UTC()
	account.NotifiedAt = &at
	return nil
}

// DeleteCredentials implements domain.AccountStore.
func (s *MemoryStore) DeleteCredentials(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[username]; !ok {
		return NewStoreError(domain.ErrNotFound, "delete credentials").WithUsername(username)
	}
	delete(s.accounts, username)
	return nil
}

// Close implements domain.AccountStore.
func (s *MemoryStore) Close() error { return nil }

func clone(a *domain.Account) *domain.Account {
	c := *a
	c.Properties = maps.Clone(a.Properties)
	if a.NotifiedAt != nil {
		at := *a.NotifiedAt
		c.NotifiedAt = &at
	}
	return &c
}
