// Package wordpress implements the remote identity/content gateway against
// the Tributestream WordPress plugins (jwt-auth and tributestream/v1). The
// CMS is the system of record; this package only forwards requests with the
// caller's bearer token and relays upstream error messages verbatim when
// they are parseable.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tributestream/livestream-api/internal/metrics"
	"github.com/tributestream/livestream-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching the CMS.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues authenticated JSON calls to the CMS REST API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do issues one CMS call. A non-2xx response becomes a *domain.UpstreamError
// carrying the remote "message" field when the body is parseable JSON, else
// fallback. out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out any, fallback string) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, "upstream_error").Inc()
		return c.upstreamError(operation, resp.StatusCode, raw, fallback)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(operation, "ok").Inc()
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) upstreamError(operation string, status int, raw []byte, fallback string) error {
	msg := fallback
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		msg = envelope.Message
	} else {
		c.log.Debug().
			Str("operation", operation).
			Int("status", status).
			Str("body", truncate(string(raw), 200)).
			Msg("unparseable upstream error body")
	}
	return &domain.UpstreamError{StatusCode: status, Message: msg}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
