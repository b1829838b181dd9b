package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/nfrund/joinform/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	properties    TEXT NOT NULL DEFAULT '{}',
	created_at    TIMESTAMP NOT NULL,
	notified_at   TIMESTAMP
);`

// SQLiteStore persists accounts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates parent dir for) the SQLite DB at path and
// applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Create implements domain.AccountStore.
func (s *SQLiteStore) Create(ctx context.Context, account *domain.Account) error {
	props, err := json.Marshal(account.Properties)
	if err != nil {
		return NewStoreError(err, "encode properties").WithUsername(account.Username)
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts(id, username, password_hash, email, properties, created_at) VALUES(?,?,?,?,?,?)`,
		account.ID.String(), account.Username, account.PasswordHash, account.Email, string(props), account.CreatedAt.UTC())
	if err != nil {
		return NewStoreError(classifySQLite(err), "create account").WithUsername(account.Username)
	}
	return nil
}

// Get implements domain.AccountStore.
func (s *SQLiteStore) Get(ctx context.Context, username string) (*domain.Account, error) {
	var (
		account    domain.Account
		id         string
		props      string
		notifiedAt sql.NullTime
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, email, properties, created_at, notified_at FROM accounts WHERE username = ?`,
		username)
	err := row.Scan(&id, &account.Username, &account.PasswordHash, &account.Email, &props, &account.CreatedAt, &notifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewStoreError(domain.ErrNotFound, "get account").WithUsername(username)
	}
	if err != nil {
		return nil, NewStoreError(classifySQLite(err), "get account").WithUsername(username)
	}

	if account.ID, err = uuid.Parse(id); err != nil {
		return nil, NewStoreError(err, "parse account id").WithUsername(username)
	}
	if err := json.Unmarshal([]byte(props), &account.Properties); err != nil {
		return nil, NewStoreError(err, "decode properties").WithUsername(username)
	}
	if notifiedAt.Valid {
		at := notifiedAt.Time
		account.NotifiedAt = &at
	}
	return &account, nil
}

// MarkNotified implements domain.AccountStore.
func (s *SQLiteStore) MarkNotified(ctx context.Context, username string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE accounts SET notified_at = ? WHERE username = ?`, at.UTC(), username)
	if err != nil {
		return NewStoreError(classifySQLite(err), "mark notified").WithUsername(username)
	}
	return requireOneRow(res, "mark notified", username)
}

// DeleteCredentials implements domain.AccountStore.
func (s *SQLiteStore) DeleteCredentials(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return NewStoreError(classifySQLite(err), "delete credentials").WithUsername(username)
	}
	return requireOneRow(res, "delete credentials", username)
}

// Close implements domain.AccountStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func requireOneRow(res sql.Result, op, username string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return NewStoreError(err, op).WithUsername(username)
	}
	if n == 0 {
		return NewStoreError(domain.ErrNotFound, op).WithUsername(username)
	}
	return nil
}

// classifySQLite maps driver errors onto domain sentinels while keeping the
// driver error in the chain.
func classifySQLite(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch {
	case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		return fmt.Errorf("%w: %w", domain.ErrUsernameTaken, err)
	case sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked:
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}
