package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// Gemini streams responses from the Gemini API over SSE
// (streamGenerateContent with alt=sse).
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption tweaks client construction.
type GeminiOption func(*Gemini)

// WithGeminiModel overrides the model name.
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithGeminiBaseURL overrides the API base URL, used by tests.
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(g *Gemini) {
		if baseURL != "" {
			g.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithGeminiHTTPClient overrides the HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(g *Gemini) {
		if c != nil {
			g.httpClient = c
		}
	}
}

// NewGemini returns a Gemini backend. The key is validated lazily: a
// missing key surfaces as a synchronous Stream failure, not a constructor
// error, so the conversation can still open and report it.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:  apiKey,
		model:   defaultGeminiModel,
		baseURL: defaultGeminiBaseURL,
		// No overall timeout: response streaming is open-ended.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiStreamChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Stream starts one streamed generation. Fails synchronously when the API
// key is missing or the request is refused.
func (g *Gemini) Stream(ctx context.Context, prompt string) (ChunkStream, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, &Error{Message: "Gemini API key is required"}
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: SystemInstruction}}},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Message: "failed to marshal request", Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &Error{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "failed to reach Gemini API", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return &geminiStream{
		body:   resp.Body,
		reader: bufio.NewReader(resp.Body),
	}, nil
}

// geminiStream pulls "data:" lines off the SSE body one Next call at a
// time. The body is closed on the first terminal result.
type geminiStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
}

func (s *geminiStream) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			s.close()
			if err == io.EOF {
				return "", io.EOF
			}
			return "", &Error{Message: "stream interrupted", Err: err}
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			s.close()
			return "", io.EOF
		}

		var chunk geminiStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed chunks rather than killing the stream.
			continue
		}
		var text strings.Builder
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				text.WriteString(part.Text)
			}
		}
		if text.Len() == 0 {
			continue
		}
		return text.String(), nil
	}
}

func (s *geminiStream) close() {
	if !s.done {
		s.done = true
		s.body.Close()
	}
}

// parseAPIError extracts a clean message from an API error response body.
func parseAPIError(statusCode int, body []byte) error {
	var errBody struct {
		Error struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errBody) == nil {
		msg := errBody.Error.Message
		if msg == "" {
			msg = errBody.Message
		}
		if msg != "" {
			if len(msg) > 300 {
				msg = msg[:300] + "..."
			}
			if errBody.Error.Status != "" {
				return &Error{Message: fmt.Sprintf("API error %d [%s]: %s", statusCode, errBody.Error.Status, msg)}
			}
			return &Error{Message: fmt.Sprintf("API error %d: %s", statusCode, msg)}
		}
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > 300 {
		raw = raw[:300] + "..."
	}
	return &Error{Message: fmt.Sprintf("API error %d: %s", statusCode, raw)}
}
