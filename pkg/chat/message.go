// Package chat implements the conversation core: the message transcript,
// the slash-command registry, and the dispatcher that turns raw user input
// into transcript mutations, collaborator calls, and streamed AI replies.
package chat

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageID is assigned once at creation, is never reused, and increases
// monotonically so the transcript stays append-ordered without sorting.
type MessageID int64

// MediaPayload carries the structured result of a media download command.
// Fields are optional; HasPlayableSource reports whether the payload is
// worth showing at all.
type MediaPayload struct {
	Title           string
	CoverURL        string
	VideoURL        string
	VideoHDURL      string
	AudioURL        string
	AuthorName      string
	AuthorAvatarURL string
}

// HasPlayableSource reports whether at least one downloadable source
// (no-watermark video, HD video, or audio) is present.
func (p *MediaPayload) HasPlayableSource() bool {
	if p == nil {
		return false
	}
	return p.VideoURL != "" || p.VideoHDURL != "" || p.AudioURL != ""
}

// Message is one entry in the transcript. User messages are immutable once
// appended; a Bot message may be mutated through the Transcript by the one
// writer that owns it (the streaming reply or a placeholder swap) until that
// writer is done with it.
type Message struct {
	ID        MessageID
	Sender    Sender
	Text      string
	Media     *MediaPayload
	Timestamp time.Time
}

// IsError reports whether the message text is one of the fixed failure
// templates. Surfaces use this for styling only.
func (m Message) IsError() bool {
	return m.Sender == SenderBot && hasErrorPrefix(m.Text)
}
