package accounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(username string) *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Email:        username + "@example.com",
		Properties:   map[string]string{"fullname": "Jane Smith"},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// runStoreContract exercises the behaviour every AccountStore must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) domain.AccountStore) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		store := newStore(t)
		want := newAccount("jsmith")
		require.NoError(t, store.Create(ctx, want))

		got, err := store.Get(ctx, "jsmith")
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Email, got.Email)
		assert.Equal(t, want.Properties, got.Properties)
		assert.True(t, got.HasCredentials())
		assert.Nil(t, got.NotifiedAt)
	})

	t.Run("duplicate username", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, newAccount("jsmith")))

		err := store.Create(ctx, newAccount("jsmith"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)

		var storeErr *StoreError
		assert.True(t, errors.As(err, &storeErr))
	})

	t.Run("get missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("mark notified", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, newAccount("jsmith")))

		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, store.MarkNotified(ctx, "jsmith", at))

		got, err := store.Get(ctx, "jsmith")
		require.NoError(t, err)
		require.NotNil(t, got.NotifiedAt)
		assert.True(t, at.Equal(*got.NotifiedAt))

		assert.ErrorIs(t, store.MarkNotified(ctx, "nobody", at), domain.ErrNotFound)
	})

	t.Run("delete credentials frees username", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, newAccount("jsmith")))
		require.NoError(t, store.DeleteCredentials(ctx, "jsmith"))

		_, err := store.Get(ctx, "jsmith")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, store.Create(ctx, newAccount("jsmith")))

		assert.ErrorIs(t, store.DeleteCredentials(ctx, "nobody"), domain.ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) domain.AccountStore {
		return NewMemoryStore()
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, newAccount("jsmith")))

	got, err := store.Get(ctx, "jsmith")
	require.NoError(t, err)
	got.Properties["fullname"] = "changed"

	again, err := store.Get(ctx, "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", again.Properties["fullname"])
}

func TestSQLiteStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) domain.AccountStore {
		store, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "accounts.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		return store
	})
}

func TestStoreError(t *testing.T) {
	err := NewStoreError(domain.ErrUsernameTaken, "create account").WithUsername("jsmith")
	assert.Equal(t, `create account "jsmith": username already in use`, err.Error())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestClassifySurreal(t *testing.T) {
	taken := classifySurreal(errors.New("Database index `account_username` already contains 'jsmith'"))
	assert.ErrorIs(t, taken, domain.ErrUsernameTaken)

	conflict := classifySurreal(errors.New("Transaction conflict: resource busy"))
	assert.ErrorIs(t, conflict, domain.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, classifySurreal(other))
}
