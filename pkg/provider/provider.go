// Package provider abstracts AI response backends behind a small streaming
// capability interface. Concrete backends are selected by configuration:
// the native Gemini SSE client, or a gollm-backed client for
// OpenAI-compatible and other providers.
package provider

import (
	"context"
	"fmt"
)

// SystemInstruction is sent with every prompt.
const SystemInstruction = "You are a helpful and friendly AI assistant named Robot AI. " +
	"Format your responses using markdown. Use code blocks for code snippets, " +
	"lists for bullet points, and bold/italics for emphasis."

// ChunkStream is a lazy, finite, non-restartable sequence of text
// fragments. Next returns io.EOF after the last fragment; any other error
// is terminal and the stream must not be read again.
type ChunkStream interface {
	Next() (string, error)
}

// Responder produces one streamed reply per prompt. Stream may fail
// synchronously (missing credential, refused connection) before any chunk
// is produced.
type Responder interface {
	Stream(ctx context.Context, prompt string) (ChunkStream, error)
}

// Error wraps any failure raised by a backend, synchronous or mid-stream.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }
