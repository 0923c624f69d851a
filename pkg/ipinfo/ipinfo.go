// Package ipinfo fetches the machine's public IP address from ipify.
package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultEndpoint = "https://api.ipify.org?format=json"

// LookupError is the failure shape surfaced to the conversation core.
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

// Client queries the IP lookup service. Transient transport failures are
// retried with exponential backoff inside the client; the caller sees a
// single success or a single terminal failure.
type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries uint64
}

// Option tweaks client construction.
type Option func(*Client)

// WithEndpoint overrides the lookup URL, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithMaxRetries overrides how many times a transient failure is retried.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient returns a lookup client against ipify.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPublicIP returns the public IP address as reported by the service.
func (c *Client) FetchPublicIP(ctx context.Context) (string, error) {
	var ip string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return err
		}
		var payload struct {
			IP string `json:"ip"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		if strings.TrimSpace(payload.IP) == "" {
			return backoff.Permanent(fmt.Errorf("respon tidak valid dari layanan IP"))
		}
		ip = payload.IP
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return "", &LookupError{Message: "Layanan IP tidak merespon dengan benar", Err: err}
	}
	return ip, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}
