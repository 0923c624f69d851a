package provider

import (
	"context"
	"io"
	"strings"

	"github.com/teilomillet/gollm"
)

// Gollm adapts a gollm.LLM instance to the Responder interface for
// providers without a native streaming client here (openai, anthropic,
// groq, ollama, ...). gollm generates the full reply in one call, so the
// result is delivered as a single-chunk stream.
type Gollm struct {
	llm gollm.LLM
}

// NewGollm builds a gollm-backed responder for the named provider.
func NewGollm(providerName, apiKey, model, baseURL string) (*Gollm, error) {
	opts := []gollm.ConfigOption{
		gollm.SetProvider(strings.ToLower(strings.TrimSpace(providerName))),
		gollm.SetModel(model),
		gollm.SetAPIKey(apiKey),
		gollm.SetLogLevel(gollm.LogLevelOff),
		gollm.SetMaxRetries(0),
	}
	instance, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, &Error{Message: "gollm init failed", Err: err}
	}
	if baseURL != "" {
		instance.SetEndpoint(baseURL)
	}
	return &Gollm{llm: instance}, nil
}

// Stream generates the full reply and wraps it as a one-chunk stream.
func (g *Gollm) Stream(ctx context.Context, prompt string) (ChunkStream, error) {
	p := gollm.NewPrompt(prompt, gollm.WithDirectives(SystemInstruction))
	text, err := g.llm.Generate(ctx, p)
	if err != nil {
		return nil, &Error{Message: "generation failed", Err: err}
	}
	return NewScriptedStream(text), nil
}

// ScriptedStream yields a fixed chunk sequence. Production code uses it to
// wrap non-streaming backends; tests use it as the stream double.
type ScriptedStream struct {
	chunks []string
	pos    int
	// Err, when set, is returned after the scripted chunks instead of io.EOF.
	Err error
	// OnNext, when set, runs before each Next result is returned.
	OnNext func(pos int)
}

// NewScriptedStream returns a stream yielding the given chunks in order.
func NewScriptedStream(chunks ...string) *ScriptedStream {
	return &ScriptedStream{chunks: chunks}
}

func (s *ScriptedStream) Next() (string, error) {
	if s.OnNext != nil {
		s.OnNext(s.pos)
	}
	if s.pos >= len(s.chunks) {
		if s.Err != nil {
			return "", s.Err
		}
		return "", io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}
