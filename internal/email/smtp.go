package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/joinform/internal/domain"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the settings for an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// NoTLS disables STARTTLS, for local relays such as MailHog.
	NoTLS bool
}

type mailDialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender delivers emails through an SMTP relay.
type SMTPSender struct {
	from   string
	client mailDialer
}

// NewSMTPSender creates an SMTPSender for the given relay.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(30 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.NoTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	} else {
		opts = append(opts,
			mail.WithTLSConfig(&tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &SMTPSender{from: cfg.From, client: client}, nil
}

// Send builds a multipart message and hands it to the relay.
func (s *SMTPSender) Send(ctx context.Context, msg domain.EmailMessage) (domain.Receipt, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to set from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to set to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetMessageID()

	if msg.TextBody != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
		}
	} else {
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to send email: %w", err)
	}

	id := m.GetMessageID()
	slog.InfoContext(ctx, "Successfully sent email via SMTP", "to", msg.To, "subject", msg.Subject, "message_id", id)
	return domain.Receipt{Delivered: true, MessageID: id}, nil
}
