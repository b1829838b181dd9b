package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nfrund/joinform/internal/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender sends emails using the Resend API.
type ResendSender struct {
	apiKey        string
	senderAddress string
	endpoint      string
	client        *http.Client
}

// NewResendSender creates a ResendSender posting to the public Resend API.
func NewResendSender(apiKey, senderAddress string) *ResendSender {
	return &ResendSender{
		apiKey:        apiKey,
		senderAddress: senderAddress,
		endpoint:      resendEndpoint,
		client:        http.DefaultClient,
	}
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send dispatches an email using the Resend API.
func (s *ResendSender) Send(ctx context.Context, msg domain.EmailMessage) (domain.Receipt, error) {
	payload := resendPayload{
		From:    s.senderAddress,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.TextBody,
		HTML:    msg.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to create resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("failed to send request to resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.Receipt{}, fmt.Errorf("resend API returned an error: status %d", resp.StatusCode)
	}

	var out resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// The message was accepted even if the body is unreadable.
		slog.WarnContext(ctx, "could not decode resend response", "error", err)
	}

	slog.InfoContext(ctx, "Successfully sent email via Resend", "to", msg.To, "subject", msg.Subject, "message_id", out.ID)
	return domain.Receipt{Delivered: true, MessageID: out.ID}, nil
}
