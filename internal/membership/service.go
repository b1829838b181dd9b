// Package membership implements the account operations behind the join
// form: creating members, mailing their credentials and rolling back
// accounts whose password never reached them.
package membership

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/pubsub"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._@-]{0,99}$`)

// reservedUsernames cannot be registered through the join form.
var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"administrator": {},
	"root":          {},
	"system":        {},
	"anonymous":     {},
	"authenticated": {},
}

// Options configures a Service.
type Options struct {
	// SiteName appears in the notification subject.
	SiteName string
	// LoginURL is linked from the notification.
	LoginURL string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Service creates members and sends their registration notification.
type Service struct {
	store     domain.AccountStore
	sender    domain.EmailSender
	publisher pubsub.Publisher
	policy    *bluemonday.Policy
	templates *notificationTemplates
	opts      Options
	now       func() time.Time
}

// NewService creates a Service. publisher may be nil.
func NewService(store domain.AccountStore, sender domain.EmailSender, publisher pubsub.Publisher, opts Options) (*Service, error) {
	templates, err := loadNotificationTemplates()
	if err != nil {
		return nil, err
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:     store,
		sender:    sender,
		publisher: publisher,
		policy:    bluemonday.StrictPolicy(),
		templates: templates,
		opts:      opts,
		now:       time.Now,
	}, nil
}

// ValidateUsername reports whether username may be registered.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: %q", domain.ErrUsernameInvalid, username)
	}
	if _, ok := reservedUsernames[strings.ToLower(username)]; ok {
		return fmt.Errorf("%w: %q is reserved", domain.ErrUsernameInvalid, username)
	}
	return nil
}

// CreateAccount registers a new member.
func (s *Service) CreateAccount(ctx context.Context, username, password string, props map[string]string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	properties := s.sanitize(props)
	account := &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        properties["email"],
		Properties:   properties,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	slog.InfoContext(ctx, "account created", "username", username)
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, pubsub.Registered, username, pubsub.AccountRegistered{
			Username: username,
			Email:    account.Email,
			At:       account.CreatedAt,
		})
	})
	return nil
}

// SendRegistrationNotification records the notification on the account
// and mails the member their login details.
func (s *Service) SendRegistrationNotification(ctx context.Context, username, password string) (domain.Receipt, error) {
	account, err := s.store.Get(ctx, username)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("load account: %w", err)
	}
	if account.Email == "" {
		return domain.Receipt{}, fmt.Errorf("notify %q: %w", username, domain.ErrNoEmail)
	}

	if err := s.store.MarkNotified(ctx, username, s.now()); err != nil {
		return domain.Receipt{}, fmt.Errorf("mark notified: %w", err)
	}

	textBody, htmlBody, err := s.templates.render(notificationData{
		Fullname: account.Properties["fullname"],
		Username: username,
		Password: password,
		LoginURL: s.opts.LoginURL,
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	receipt, err := s.sender.Send(ctx, domain.EmailMessage{
		To:       account.Email,
		Subject:  fmt.Sprintf("User account information for %s", s.opts.SiteName),
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("send notification: %w", err)
	}
	slog.InfoContext(ctx, "registration notification sent",
		"username", username, "delivered", receipt.Delivered, "message_id", receipt.MessageID)
	return receipt, nil
}

// DeleteAccountCredentials removes the member's credentials.
func (s *Service) DeleteAccountCredentials(ctx context.Context, username string) error {
	if err := s.store.DeleteCredentials(ctx, username); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	slog.WarnContext(ctx, "account credentials removed", "username", username)
	s.publish(ctx, func() error {
		return pubsub.Publish(ctx, s.publisher, pubsub.RolledBack, username, pubsub.AccountRolledBack{
			Username: username,
			Reason:   "password could not be delivered",
			At:       s.now().UTC(),
		})
	})
	return nil
}

// sanitize strips markup from free text properties and drops empty values.
func (s *Service) sanitize(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		v = strings.TrimSpace(s.plainText(v))
		if v == "" {
			continue
		}
		if k == "email" {
			v = strings.ToLower(v)
		}
		out[k] = v
	}
	return out
}

// maxSanitizePasses bounds how many levels of entity encoding plainText
// peels off before it gives up and keeps the escaped form.
const maxSanitizePasses = 5

// plainText strips markup from v and returns it unescaped. Entity-encoded
// markup is decoded and stripped again until the text is stable, so
// "&lt;script&gt;" cannot come back out as a tag.
func (s *Service) plainText(v string) string {
	for range maxSanitizePasses {
		clean := html.UnescapeString(s.policy.Sanitize(v))
		if clean == v {
			return v
		}
		v = clean
	}
	return s.policy.Sanitize(v)
}

// publish sends an event without failing the caller; the account operation
// already succeeded.
func (s *Service) publish(ctx context.Context, send func() error) {
	if s.publisher == nil {
		return
	}
	if err := send(); err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "failed to publish account event", "error", err)
	}
}
