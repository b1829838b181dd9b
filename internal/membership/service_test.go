package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nfrund/joinform/internal/accounts"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/nfrund/joinform/internal/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var _ registration.Registrar = (*Service)(nil)

type recordingSender struct {
	sent    []domain.EmailMessage
	receipt domain.Receipt
	err     error
}

func (r *recordingSender) Send(ctx context.Context, msg domain.EmailMessage) (domain.Receipt, error) {
	r.sent = append(r.sent, msg)
	return r.receipt, r.err
}

type recordingPublisher struct {
	messages []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type conflictStore struct {
	*accounts.MemoryStore
}

func (c conflictStore) MarkNotified(ctx context.Context, username string, at time.Time) error {
	return accounts.NewStoreError(domain.ErrConflict, "mark notified").WithUsername(username)
}

func newTestService(t *testing.T, store domain.AccountStore, sender domain.EmailSender) (*Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc, err := NewService(store, sender, pub, Options{
		SiteName:   "Example Site",
		LoginURL:   "https://example.com/login",
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, pub
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"jsmith", "j.smith", "jane_doe-2", "jane@example.com"}
	for _, name := range valid {
		assert.NoError(t, ValidateUsername(name), name)
	}

	invalid := []string{"", "1jane", "jane smith", "jane<script>", "Admin", "root"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateUsername(name), domain.ErrUsernameInvalid, name)
	}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewMemoryStore()
	svc, pub := newTestService(t, store, &recordingSender{})

	err := svc.CreateAccount(ctx, "jsmith", "secret", map[string]string{
		"fullname": "Jane <b>Smith</b> & Co",
		"email":    " Jane@Example.com ",
		"location": "   ",
	})
	require.NoError(t, err)

	account, err := store.Get(ctx, "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", account.Email)
	assert.Equal(t, "Jane Smith & Co", account.Properties["fullname"])
	assert.NotContains(t, account.Properties, "location")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret")))

	require.Len(t, pub.messages, 1)
	event, err := pubsub.Decode(pubsub.Registered, pub.messages[0])
	require.NoError(t, err)
	assert.Equal(t, "jsmith", event.Username)
	assert.Equal(t, "jane@example.com", event.Email)
}

func TestCreateAccount_StripsEncodedMarkup(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewMemoryStore()
	svc, _ := newTestService(t, store, &recordingSender{})

	err := svc.CreateAccount(ctx, "jsmith", "secret", map[string]string{
		"fullname":    "&lt;script&gt;alert(1)&lt;/script&gt;Jane",
		"location":    "&amp;lt;b&amp;gt;Berlin",
		"description": "O'Brien says 1 < 2",
	})
	require.NoError(t, err)

	account, err := store.Get(ctx, "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "Jane", account.Properties["fullname"])
	assert.Equal(t, "Berlin", account.Properties["location"])
	assert.Equal(t, "O'Brien says 1 < 2", account.Properties["description"])
	for k, v := range account.Properties {
		assert.NotContains(t, v, "<script", k)
		assert.NotContains(t, v, "<b>", k)
	}
}

func TestCreateAccount_Rejections(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewMemoryStore()
	svc, _ := newTestService(t, store, &recordingSender{})

	assert.ErrorIs(t, svc.CreateAccount(ctx, "root", "secret", nil), domain.ErrUsernameInvalid)

	require.NoError(t, svc.CreateAccount(ctx, "jsmith", "secret", nil))
	assert.ErrorIs(t, svc.CreateAccount(ctx, "jsmith", "other", nil), domain.ErrUsernameTaken)
}

func TestSendRegistrationNotification(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewMemoryStore()
	sender := &recordingSender{receipt: domain.Receipt{Delivered: true, MessageID: "m1"}}
	svc, _ := newTestService(t, store, sender)

	require.NoError(t, svc.CreateAccount(ctx, "jsmith", "s3cret", map[string]string{
		"fullname": "Jane Smith",
		"email":    "jane@example.com",
	}))

	receipt, err := svc.SendRegistrationNotification(ctx, "jsmith", "s3cret")
	require.NoError(t, err)
	assert.True(t, receipt.Delivered)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "User account information for Example Site", msg.Subject)
	assert.Contains(t, msg.TextBody, "Welcome Jane Smith")
	assert.Contains(t, msg.TextBody, "Your password is: s3cret")
	assert.Contains(t, msg.HTMLBody, `href="https://example.com/login"`)

	account, err := store.Get(ctx, "jsmith")
	require.NoError(t, err)
	require.NotNil(t, account.NotifiedAt)
}

func TestSendRegistrationNotification_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("no email", func(t *testing.T) {
		svc, _ := newTestService(t, accounts.NewMemoryStore(), &recordingSender{})
		require.NoError(t, svc.CreateAccount(ctx, "jsmith", "secret", nil))

		_, err := svc.SendRegistrationNotification(ctx, "jsmith", "secret")
		assert.ErrorIs(t, err, domain.ErrNoEmail)
	})

	t.Run("conflict", func(t *testing.T) {
		store := conflictStore{accounts.NewMemoryStore()}
		sender := &recordingSender{}
		svc, _ := newTestService(t, store, sender)
		require.NoError(t, svc.CreateAccount(ctx, "jsmith", "secret", map[string]string{"email": "j@example.com"}))

		_, err := svc.SendRegistrationNotification(ctx, "jsmith", "secret")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, sender.sent)
	})

	t.Run("transport error", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("relay down")}
		svc, _ := newTestService(t, accounts.NewMemoryStore(), sender)
		require.NoError(t, svc.CreateAccount(ctx, "jsmith", "secret", map[string]string{"email": "j@example.com"}))

		_, err := svc.SendRegistrationNotification(ctx, "jsmith", "secret")
		assert.ErrorContains(t, err, "relay down")
	})
}

func TestDeleteAccountCredentials(t *testing.T) {
	ctx := context.Background()
	store := accounts.NewMemoryStore()
	svc, pub := newTestService(t, store, &recordingSender{})
	require.NoError(t, svc.CreateAccount(ctx, "jsmith", "secret", nil))

	require.NoError(t, svc.DeleteAccountCredentials(ctx, "jsmith"))

	_, err := store.Get(ctx, "jsmith")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, pub.messages, 2)
	event, err := pubsub.Decode(pubsub.RolledBack, pub.messages[1])
	require.NoError(t, err)
	assert.Equal(t, "jsmith", event.Username)

	assert.ErrorIs(t, svc.DeleteAccountCredentials(ctx, "jsmith"), domain.ErrNotFound)
}

func TestGenerateDefaultPassword(t *testing.T) {
	svc, _ := newTestService(t, accounts.NewMemoryStore(), &recordingSender{})

	seen := map[string]bool{}
	for range 20 {
		pw, err := svc.GenerateDefaultPassword()
		require.NoError(t, err)
		assert.Len(t, pw, defaultPasswordLength)
		assert.NotContains(t, pw, "0")
		assert.NotContains(t, pw, "l")
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 1)
}
