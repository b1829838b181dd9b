package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nfrund/joinform/internal/domain"
)

// LogSender prints emails to the log instead of sending them. Nothing leaves
// the process, so the receipt is never marked as delivered.
type LogSender struct {
	senderAddress string
}

// NewLogSender creates a LogSender.
func NewLogSender(senderAddress string) *LogSender {
	return &LogSender{senderAddress: senderAddress}
}

// Send logs the envelope of the email. The body carries the member's
// password and is never logged.
func (s *LogSender) Send(ctx context.Context, msg domain.EmailMessage) (domain.Receipt, error) {
	id := uuid.NewString()
	slog.InfoContext(ctx, "email logged, not delivered",
		"message_id", id,
		"from", s.senderAddress,
		"to", msg.To,
		"subject", msg.Subject,
		"body_bytes", len(msg.TextBody),
	)
	return domain.Receipt{Delivered: false, MessageID: id}, nil
}
