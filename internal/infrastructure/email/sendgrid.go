// Package email delivers outbound mail through the SendGrid v3 REST API.
// The provider is an opaque collaborator: this package only shapes the send
// payload and reports failure.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

const (
	sendEndpoint   = "https://api.sendgrid.com/v3/mail/send"
	defaultTimeout = 10 * time.Second
)

// Config captures the SendGrid credentials and addressing defaults.
type Config struct {
	APIKey string
	// Sender is the verified from address.
	Sender string
	// FallbackTo receives mail when a message has no recipient.
	FallbackTo string
	Timeout    time.Duration
}

type SendGridMailer struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewSendGridMailer(cfg Config, log zerolog.Logger) *SendGridMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SendGridMailer{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPayload struct {
	Personalizations []struct {
		To []sgAddress `json:"to"`
	} `json:"personalizations"`
	From    sgAddress   `json:"from"`
	Subject string      `json:"subject"`
	Content []sgContent `json:"content"`
}

func (m *SendGridMailer) Send(ctx context.Context, msg domain.Email) error {
	to := msg.To
	if to == "" {
		to = m.cfg.FallbackTo
	}

	payload := sgPayload{
		From:    sgAddress{Email: m.cfg.Sender},
		Subject: msg.Subject,
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sgAddress `json:"to"`
	}{To: []sgAddress{{Email: to}}})
	// SendGrid requires text/plain before text/html.
	if msg.Text != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		payload.Content = append(payload.Content, sgContent{Type: "text/html", Value: msg.HTML})
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sendgrid: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		m.log.Error().
			Int("status", resp.StatusCode).
			Str("to", to).
			Str("body", string(body)).
			Msg("sendgrid rejected message")
		return fmt.Errorf("sendgrid: send failed with status %d", resp.StatusCode)
	}
	return nil
}
