package testutils

import (
	"context"
	"sync"

	"github.com/nfrund/joinform/internal/domain"
)

// StaticSite serves fixed site settings.
type StaticSite struct {
	Config domain.SiteConfig
}

func (s StaticSite) Current() domain.SiteConfig { return s.Config }

// StubSender records every message and answers with a fixed receipt.
type StubSender struct {
	Delivered bool
	Err       error

	mu   sync.Mutex
	sent []domain.EmailMessage
}

func (s *StubSender) Send(ctx context.Context, msg domain.EmailMessage) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.Err != nil {
		return domain.Receipt{}, s.Err
	}
	return domain.Receipt{Delivered: s.Delivered, MessageID: "stub"}, nil
}

// Sent returns the messages received so far.
func (s *StubSender) Sent() []domain.EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EmailMessage(nil), s.sent...)
}
