package chat

import (
	"fmt"
	"sync"
	"time"
)

// Transcript is the ordered log of messages and the single source of truth
// for what surfaces render. Every mutation goes through one of its methods
// and is applied read-modify-write against the latest state, so interleaved
// completions (a delayed ping timer firing after a later stream chunk) can
// never lose updates. Writers address messages strictly by id.
type Transcript struct {
	mu       sync.Mutex
	nextID   MessageID
	version  uint64
	messages []Message
	changed  chan struct{}
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		nextID:  1,
		changed: make(chan struct{}, 1),
	}
}

// Append adds a new message and returns it with its assigned id.
func (t *Transcript) Append(sender Sender, text string) Message {
	return t.AppendMedia(sender, text, nil)
}

// AppendMedia adds a new message carrying an optional media payload.
func (t *Transcript) AppendMedia(sender Sender, text string, media *MediaPayload) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg := Message{
		ID:        t.nextID,
		Sender:    sender,
		Text:      text,
		Media:     media,
		Timestamp: time.Now(),
	}
	t.nextID++
	t.messages = append(t.messages, msg)
	t.bumpLocked()
	return msg
}

// SetText replaces the text of the message with the given id.
func (t *Transcript) SetText(id MessageID, text string) error {
	return t.update(id, func(m *Message) {
		m.Text = text
	})
}

// AppendText appends a fragment to the current text of the message with the
// given id. The read and the write happen under the same lock, so the
// fragment always lands on the latest accumulated text.
func (t *Transcript) AppendText(id MessageID, fragment string) error {
	return t.update(id, func(m *Message) {
		m.Text += fragment
	})
}

// Replace swaps the text and media payload of an existing message in place,
// keeping its position and id. Used for placeholder swaps.
func (t *Transcript) Replace(id MessageID, text string, media *MediaPayload) error {
	return t.update(id, func(m *Message) {
		m.Text = text
		m.Media = media
	})
}

func (t *Transcript) update(id MessageID, mutate func(*Message)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == id {
			mutate(&t.messages[i])
			t.bumpLocked()
			return nil
		}
	}
	return fmt.Errorf("transcript: no message with id %d", id)
}

// Messages returns a copy of the transcript in creation order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recently appended message.
func (t *Transcript) Last() (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Version increases on every mutation. Surfaces compare versions to decide
// whether a re-render is needed.
func (t *Transcript) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

// Changed returns a coalesced signal channel: at least one receive is
// possible after any mutation, but bursts collapse into a single signal.
func (t *Transcript) Changed() <-chan struct{} {
	return t.changed
}

func (t *Transcript) bumpLocked() {
	t.version++
	select {
	case t.changed <- struct{}{}:
	default:
	}
}
