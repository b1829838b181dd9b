package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

const surrealSchema = `
DEFINE TABLE IF NOT EXISTS account SCHEMALESS;
DEFINE INDEX IF NOT EXISTS account_username ON TABLE account COLUMNS username UNIQUE;`

// SurrealConfig holds the connection settings for SurrealStore.
type SurrealConfig struct {
	URL       string
	User      string
	Password  string
	Namespace string
	Database  string
}

// surrealAccount is the stored shape of an account. Timestamps are kept as
// RFC3339 strings to avoid datetime decoding differences in the driver.
type surrealAccount struct {
	ID           *models.RecordID  `json:"id,omitempty"`
	AccountID    string            `json:"account_id"`
	Username     string            `json:"username"`
	PasswordHash string            `json:"password_hash"`
	Email        string            `json:"email"`
	Properties   map[string]string `json:"properties"`
	CreatedAt    string            `json:"created_at"`
	NotifiedAt   *string           `json:"notified_at,omitempty"`
}

// SurrealStore persists accounts in SurrealDB.
type SurrealStore struct {
	db *surrealdb.DB
}

// ConnectSurreal opens a SurrealDB connection, signs in, selects the
// namespace and database, and ensures the account schema exists.
func ConnectSurreal(ctx context.Context, cfg SurrealConfig) (*SurrealStore, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: cfg.User,
		Password: cfg.Password,
	}
	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	store := NewSurrealStore(db)
	if err := store.execute(ctx, surrealSchema, nil); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to define account schema: %w", err)
	}

	slog.Info("Successfully signed in to SurrealDB", "namespace", cfg.Namespace, "database", cfg.Database)
	return store, nil
}

// NewSurrealStore wraps an already configured connection.
func NewSurrealStore(db *surrealdb.DB) *SurrealStore {
	return &SurrealStore{db: db}
}

// Create implements domain.AccountStore.
func (s *SurrealStore) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	record := surrealAccount{
		AccountID:    account.ID.String(),
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Email:        account.Email,
		Properties:   account.Properties,
		CreatedAt:    account.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	err := s.execute(ctx, "CREATE account CONTENT $data", map[string]any{"data": record})
	if err != nil {
		return NewStoreError(classifySurreal(err), "create account").WithUsername(account.Username)
	}
	return nil
}

// Get implements domain.AccountStore.
func (s *SurrealStore) Get(ctx context.Context, username string) (*domain.Account, error) {
	rows, err := s.query(ctx, "SELECT * FROM account WHERE username = $username LIMIT 1",
		map[string]any{"username": username})
	if err != nil {
		return nil, NewStoreError(classifySurreal(err), "get account").WithUsername(username)
	}
	if len(rows) == 0 {
		return nil, NewStoreError(domain.ErrNotFound, "get account").WithUsername(username)
	}
	account, err := rows[0].toDomain()
	if err != nil {
		return nil, NewStoreError(err, "decode account").WithUsername(username)
	}
	return account, nil
}

// MarkNotified implements domain.AccountStore.
func (s *SurrealStore) MarkNotified(ctx context.Context, username string, at time.Time) error {
	rows, err := s.query(ctx, "UPDATE account SET notified_at = $at WHERE username = $username RETURN AFTER",
		map[string]any{"username": username, "at": at.UTC().Format(time.RFC3339Nano)})
	if err != nil {
		return NewStoreError(classifySurreal(err), "mark notified").WithUsername(username)
	}
	if len(rows) == 0 {
		return NewStoreError(domain.ErrNotFound, "mark notified").WithUsername(username)
	}
	return nil
}

// DeleteCredentials implements domain.AccountStore.
func (s *SurrealStore) DeleteCredentials(ctx context.Context, username string) error {
	rows, err := s.query(ctx, "DELETE account WHERE username = $username RETURN BEFORE",
		map[string]any{"username": username})
	if err != nil {
		return NewStoreError(classifySurreal(err), "delete credentials").WithUsername(username)
	}
	if len(rows) == 0 {
		return NewStoreError(domain.ErrNotFound, "delete credentials").WithUsername(username)
	}
	return nil
}

// Close implements domain.AccountStore.
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

func (s *SurrealStore) query(ctx context.Context, query string, params map[string]any) ([]surrealAccount, error) {
	results, err := surrealdb.Query[[]surrealAccount](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

func (s *SurrealStore) execute(ctx context.Context, query string, params map[string]any) error {
	if _, err := surrealdb.Query[any](ctx, s.db, query, params); err != nil {
		return fmt.Errorf("query execution failed: %w", err)
	}
	return nil
}

func (r surrealAccount) toDomain() (*domain.Account, error) {
	id, err := uuid.Parse(r.AccountID)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		ID:           id,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Email:        r.Email,
		Properties:   r.Properties,
		CreatedAt:    created,
	}
	if r.NotifiedAt != nil {
		at, err := time.Parse(time.RFC3339Nano, *r.NotifiedAt)
		if err != nil {
			return nil, err
		}
		account.NotifiedAt = &at
	}
	return account, nil
}

// classifySurreal maps SurrealDB error messages onto domain sentinels. The
// driver only exposes textual errors for index and transaction failures.
func classifySurreal(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already contains"), strings.Contains(msg, "already exists"):
		return fmt.Errorf("%w: %w", domain.ErrUsernameTaken, err)
	case strings.Contains(msg, "transaction conflict"), strings.Contains(msg, "write conflict"):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}
