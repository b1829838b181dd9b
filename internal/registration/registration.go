// Package registration runs a join form submission against the
// registration collaborators and decides which status message and
// redirect the member gets.
package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/joinform/internal/domain"
	"github.com/nfrund/joinform/internal/i18n"
	"github.com/nfrund/joinform/internal/middleware"
	"golang.org/x/text/message"
)

// Registrar is the set of account operations a submission depends on.
type Registrar interface {
	// CreateAccount registers username with password and the submitted
	// properties. It fails with domain.ErrUsernameTaken or
	// domain.ErrUsernameInvalid for unusable login names.
	CreateAccount(ctx context.Context, username, password string, props map[string]string) error

	// SendRegistrationNotification mails the login details to the member.
	// A store conflict surfaces as domain.ErrConflict.
	SendRegistrationNotification(ctx context.Context, username, password string) (domain.Receipt, error)

	// DeleteAccountCredentials removes the member's authentication record.
	DeleteAccountCredentials(ctx context.Context, username string) error

	// GenerateDefaultPassword returns a password for members who did not
	// choose one.
	GenerateDefaultPassword() (string, error)
}

// Submission is the validated input of one join form post.
type Submission struct {
	Username string
	Password string
	MailMe   bool
	// Properties holds every other submitted field (fullname, email, ...).
	Properties map[string]string
}

// Email returns the submitted email address, if any.
func (s Submission) Email() string {
	return s.Properties["email"]
}

// State is the terminal state of a submission.
type State int

const (
	// InvalidInput: the username is taken or not allowed.
	InvalidInput State = iota + 1
	// ConflictFailure: a concurrent store write interrupted the notification.
	ConflictFailure
	// MailFailure: the notification could not be sent.
	MailFailure
	// FatalRollback: the password could not be delivered under mandatory
	// email validation, so the account credentials were removed.
	FatalRollback
	// MailNotDelivered: the account exists but the optional password mail
	// was not delivered.
	MailNotDelivered
	// Notified: the account exists and the login details were mailed.
	Notified
	// SoftWarning: the account exists and no mail was requested.
	SoftWarning
)

var stateNames = map[State]string{
	InvalidInput:     "invalid_input",
	ConflictFailure:  "conflict_failure",
	MailFailure:      "mail_failure",
	FatalRollback:    "fatal_rollback",
	MailNotDelivered: "mail_not_delivered",
	Notified:         "notified",
	SoftWarning:      "soft_warning",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Halts reports whether the form is shown again instead of redirecting.
func (s State) Halts() bool {
	return s == InvalidInput || s == ConflictFailure || s == MailFailure
}

// AccountKept reports whether an active account exists after this state.
func (s State) AccountKept() bool {
	switch s {
	case ConflictFailure, MailFailure, MailNotDelivered, Notified, SoftWarning:
		return true
	}
	return false
}

// MessageType classifies a status message for display.
type MessageType string

const (
	TypeInfo    MessageType = "info"
	TypeWarning MessageType = "warning"
	TypeError   MessageType = "error"
)

// Outcome is the result of a submission.
type Outcome struct {
	State       State
	MessageType MessageType
	Message     string
	// Redirect is empty when the form must be rendered again.
	Redirect string
	// PasswordGenerated is set when the member did not supply a password.
	PasswordGenerated bool
}

// Service handles join form submissions.
type Service struct {
	registrar     Registrar
	registeredURL string
}

// NewService creates a Service that redirects to registeredURL on every
// non-halting outcome.
func NewService(registrar Registrar, registeredURL string) *Service {
	return &Service{registrar: registrar, registeredURL: registeredURL}
}

// Submit runs one submission. validateEmail is the site's mandatory email
// validation setting; p formats the status message.
//
// Errors are returned only for failures no status message covers, such as
// the account store being unreachable or a failed rollback.
func (s *Service) Submit(ctx context.Context, sub Submission, validateEmail bool, p *message.Printer) (*Outcome, error) {
	logger := middleware.FromContext(ctx).With("username", sub.Username)

	password := sub.Password
	generated := password == ""
	if generated {
		var err error
		password, err = s.registrar.GenerateDefaultPassword()
		if err != nil {
			return nil, fmt.Errorf("generate default password: %w", err)
		}
	}

	err := s.registrar.CreateAccount(ctx, sub.Username, password, sub.Properties)
	if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrUsernameInvalid) {
		logger.Info("Join rejected username", "error", err)
		return s.halt(InvalidInput, p.Sprintf(i18n.MsgUsernameUnavailable), generated), nil
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	address := sub.Email()

	if !validateEmail && !sub.MailMe {
		return s.redirect(SoftWarning, TypeWarning, p.Sprintf(i18n.MsgPasswordNotMailed, address), generated), nil
	}

	receipt, err := s.registrar.SendRegistrationNotification(ctx, sub.Username, password)
	switch {
	case errors.Is(err, domain.ErrConflict):
		logger.Warn("Registration notification hit a store conflict", "error", err)
		return s.halt(ConflictFailure, p.Sprintf(i18n.MsgConflict), generated), nil
	case err != nil:
		logger.Error("Failed to send registration notification", "error", err)
		return s.halt(MailFailure, p.Sprintf(i18n.MsgMailFailed), generated), nil
	}

	if receipt.Delivered {
		return s.redirect(Notified, TypeInfo, p.Sprintf(i18n.MsgPasswordMailed, address), generated), nil
	}

	if validateEmail && generated {
		// The mailed password was the only credential.
		if err := s.registrar.DeleteAccountCredentials(ctx, sub.Username); err != nil {
			return nil, fmt.Errorf("roll back undelivered account: %w", err)
		}
		logger.Warn("Rolled back account after undelivered password mail")
		return s.redirect(FatalRollback, TypeError, p.Sprintf(i18n.MsgFatalPasswordMail, address), generated), nil
	}

	return s.redirect(MailNotDelivered, TypeWarning, p.Sprintf(i18n.MsgNonfatalPassword, address), generated), nil
}

func (s *Service) halt(state State, msg string, generated bool) *Outcome {
	return &Outcome{
		State:             state,
		MessageType:       TypeError,
		Message:           msg,
		PasswordGenerated: generated,
	}
}

func (s *Service) redirect(state State, typ MessageType, msg string, generated bool) *Outcome {
	return &Outcome{
		State:             state,
		MessageType:       typ,
		Message:           msg,
		Redirect:          s.registeredURL,
		PasswordGenerated: generated,
	}
}
