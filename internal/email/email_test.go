package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/joinform/internal/config"
	"github.com/nfrund/joinform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

var welcome = domain.EmailMessage{
	To:       "jane@example.com",
	Subject:  "Welcome",
	TextBody: "login name: jane",
	HTMLBody: "<p>login name: jane</p>",
}

func TestLogSender_NeverDelivers(t *testing.T) {
	receipt, err := NewLogSender("noreply@example.com").Send(context.Background(), welcome)
	require.NoError(t, err)
	assert.False(t, receipt.Delivered)
	assert.NotEmpty(t, receipt.MessageID)
}

func TestLogSender_OmitsBody(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	msg := welcome
	msg.TextBody = "Your password is: S3cretChosen!"
	msg.HTMLBody = "<p>Your password is: S3cretChosen!</p>"
	receipt, err := NewLogSender("noreply@example.com").Send(context.Background(), msg)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "S3cretChosen!")
	assert.Contains(t, out, `"to":"jane@example.com"`)
	assert.Contains(t, out, receipt.MessageID)
}

func TestResendSender(t *testing.T) {
	var got resendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer srv.Close()

	s := NewResendSender("key", "Site <noreply@example.com>")
	s.endpoint = srv.URL

	receipt, err := s.Send(context.Background(), welcome)
	require.NoError(t, err)
	assert.True(t, receipt.Delivered)
	assert.Equal(t, "re_123", receipt.MessageID)
	assert.Equal(t, "jane@example.com", got.To)
	assert.Equal(t, "login name: jane", got.Text)
}

func TestResendSender_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewResendSender("key", "noreply@example.com")
	s.endpoint = srv.URL

	_, err := s.Send(context.Background(), welcome)
	assert.ErrorContains(t, err, "status 422")
}

type fakeDialer struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeDialer) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	f.sent = append(f.sent, messages...)
	return f.err
}

func TestSMTPSender_Send(t *testing.T) {
	dialer := &fakeDialer{}
	s := &SMTPSender{from: "noreply@example.com", client: dialer}

	receipt, err := s.Send(context.Background(), welcome)
	require.NoError(t, err)
	assert.True(t, receipt.Delivered)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"Welcome"}, dialer.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSMTPSender_DialFailure(t *testing.T) {
	s := &SMTPSender{from: "noreply@example.com", client: &fakeDialer{err: errors.New("connection refused")}}

	_, err := s.Send(context.Background(), welcome)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPSender_BadRecipient(t *testing.T) {
	s := &SMTPSender{from: "noreply@example.com", client: &fakeDialer{}}

	msg := welcome
	msg.To = "not an address"
	_, err := s.Send(context.Background(), msg)
	assert.Error(t, err)
}

func TestNewEmailService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		want    any
		wantErr string
	}{
		{name: "log", cfg: &config.Config{EmailProvider: "log"}, want: &LogSender{}},
		{name: "resend", cfg: &config.Config{EmailProvider: "resend", EmailAPIKey: "k"}, want: &ResendSender{}},
		{name: "resend without key", cfg: &config.Config{EmailProvider: "resend"}, wantErr: "EMAIL_API_KEY"},
		{name: "smtp", cfg: &config.Config{EmailProvider: "smtp", SMTPHost: "localhost", SMTPPort: 1025}, want: &SMTPSender{}},
		{name: "smtp without host", cfg: &config.Config{EmailProvider: "smtp"}, wantErr: "smtp host"},
		{name: "unknown", cfg: &config.Config{EmailProvider: "pigeon"}, wantErr: "unknown email provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewEmailService(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}
