// Package tiktok resolves TikTok video metadata through a downloader API,
// returning direct no-watermark, HD, and audio URLs.
package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultEndpoint = "https://api.botcahx.eu.org/api/dowloader/tiktok"

// ResolveError is the failure shape surfaced to the conversation core.
type ResolveError struct {
	Message string
	Err     error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Result is the structured payload of a successful resolution. Any field
// may be empty; callers decide whether the payload is usable.
type Result struct {
	Title           string
	CoverURL        string
	VideoURL        string
	VideoHDURL      string
	AudioURL        string
	AuthorName      string
	AuthorAvatarURL string
}

// apiResponse mirrors the downloader API's wire format.
type apiResponse struct {
	Status  int    `json:"status"`
	Creator string `json:"creator"`
	Message string `json:"message"`
	Result  *struct {
		Title string `json:"title"`
		Cover string `json:"cover"`
		Data  []struct {
			Type string `json:"type"`
			URL  string `json:"url"`
		} `json:"data"`
		MusicInfo struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"music_info"`
		Author struct {
			Nickname string `json:"nickname"`
			Avatar   string `json:"avatar"`
		} `json:"author"`
	} `json:"result"`
}

// Client resolves TikTok URLs. Transient transport failures retry with
// exponential backoff inside the client; the caller sees one outcome.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	maxRetries uint64
	scrape     bool
}

// Option tweaks client construction.
type Option func(*Client)

// WithEndpoint overrides the downloader API URL, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithAPIKey sets the downloader API key, when the endpoint needs one.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
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

// WithoutScrapeFallback disables the og-tag page scrape that fills in a
// missing title or cover. Tests use it to avoid network access.
func WithoutScrapeFallback() Option {
	return func(c *Client) { c.scrape = false }
}

// NewClient returns a resolver client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 2,
		scrape:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve fetches the video metadata for one TikTok URL.
func (c *Client) Resolve(ctx context.Context, videoURL string) (*Result, error) {
	if strings.TrimSpace(videoURL) == "" {
		return nil, &ResolveError{Message: "URL video kosong"}
	}

	var api apiResponse
	operation := func() error {
		reqURL := fmt.Sprintf("%s?url=%s", c.endpoint, url.QueryEscape(videoURL))
		if c.apiKey != "" {
			reqURL += "&apikey=" + url.QueryEscape(c.apiKey)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &api); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, &ResolveError{Message: "layanan unduh tidak merespon", Err: err}
	}

	if api.Result == nil {
		msg := api.Message
		if msg == "" {
			msg = "respon tidak valid dari layanan unduh"
		}
		return nil, &ResolveError{Message: msg}
	}

	res := &Result{
		Title:           api.Result.Title,
		CoverURL:        api.Result.Cover,
		AuthorName:      api.Result.Author.Nickname,
		AuthorAvatarURL: api.Result.Author.Avatar,
	}
	for _, d := range api.Result.Data {
		switch d.Type {
		case "nowatermark":
			res.VideoURL = d.URL
		case "nowatermark_hd":
			res.VideoHDURL = d.URL
		case "music":
			res.AudioURL = d.URL
		}
	}
	if res.AudioURL == "" {
		res.AudioURL = api.Result.MusicInfo.URL
	}

	// Best effort: fill missing display metadata from the page itself.
	if c.scrape && (res.Title == "" || res.CoverURL == "") {
		c.fillFromPage(ctx, videoURL, res)
	}

	return res, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 300 * time.Millisecond
	b.MaxInterval = 3 * time.Second
	return b
}
