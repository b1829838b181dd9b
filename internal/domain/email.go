package domain

import "context"

// EmailMessage is a single outgoing email.
type EmailMessage struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Receipt describes what the sender knows about a message it accepted.
// Delivered is true only when the message was handed to a real transport.
type Receipt struct {
	Delivered bool
	MessageID string
}

// EmailSender defines the interface for sending emails. This allows for
// different implementations (e.g., for logging, SMTP, Resend).
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) (Receipt, error)
}
