package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// streamReply accumulates one streamed AI response into one Bot message.
//
// A placeholder sentinel is appended first so the transcript shows the
// in-progress reply before any token arrives. The first received chunk
// clears the sentinel; every chunk is then appended to the message's
// current text, in arrival order, addressed by id. A synchronous provider
// failure or a mid-stream error folds into a fixed error template,
// discarding any partial text. A stream that ends with zero chunks leaves
// the message empty.
func (d *Dispatcher) streamReply(ctx context.Context, prompt string) {
	target := d.transcript.Append(SenderBot, streamSentinel)

	stream, err := d.ai.Stream(ctx, prompt)
	if err != nil {
		d.log.Warn("provider refused stream: %v", err)
		_ = d.transcript.SetText(target.ID, fmt.Sprintf(aiErrorTemplate, err.Error()))
		return
	}

	received := false
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d.log.Warn("stream failed mid-sequence: %v", err)
			_ = d.transcript.SetText(target.ID, fmt.Sprintf(aiErrorTemplate, err.Error()))
			return
		}
		if chunk == "" {
			continue
		}
		if !received {
			received = true
			_ = d.transcript.SetText(target.ID, "")
		}
		_ = d.transcript.AppendText(target.ID, chunk)
	}

	if !received {
		// Zero-chunk stream: an empty reply is the accepted terminal state.
		_ = d.transcript.SetText(target.ID, "")
	}
}
