package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript()

	first := tr.Append(SenderUser, "halo")
	second := tr.Append(SenderBot, "hai")

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "halo", msgs[0].Text)
	assert.Equal(t, "hai", msgs[1].Text)
	assert.Less(t, first.ID, second.ID, "ids must be creation-ordered")
}

func TestTranscriptIDsUniqueUnderConcurrency(t *testing.T) {
	tr := NewTranscript()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Append(SenderUser, fmt.Sprintf("msg %d", i))
		}(i)
	}
	wg.Wait()

	seen := make(map[MessageID]bool)
	prev := MessageID(0)
	for _, m := range tr.Messages() {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d", m.ID)
		}
		seen[m.ID] = true
		if m.ID <= prev {
			t.Fatalf("ids not increasing: %d after %d", m.ID, prev)
		}
		prev = m.ID
	}
}

func TestTranscriptAppendTextReadModifyWrite(t *testing.T) {
	tr := NewTranscript()
	msg := tr.Append(SenderBot, "")

	require.NoError(t, tr.AppendText(msg.ID, "Hel"))
	require.NoError(t, tr.AppendText(msg.ID, "lo"))

	got, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "Hello", got.Text)
}

func TestTranscriptUpdateUnknownID(t *testing.T) {
	tr := NewTranscript()
	assert.Error(t, tr.SetText(99, "x"))
	assert.Error(t, tr.AppendText(99, "x"))
	assert.Error(t, tr.Replace(99, "x", nil))
}

// Interleaved writers targeting different ids must never affect each
// other's message.
func TestTranscriptInterleavedWritersById(t *testing.T) {
	tr := NewTranscript()
	ping := tr.Append(SenderBot, "")
	stream := tr.Append(SenderBot, "")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = tr.SetText(ping.ID, "Pong!")
	}()
	go func() {
		defer wg.Done()
		for _, chunk := range []string{"Ha", "lo", "!"} {
			_ = tr.AppendText(stream.ID, chunk)
		}
	}()
	wg.Wait()

	msgs := tr.Messages()
	assert.Equal(t, "Pong!", msgs[0].Text)
	assert.Equal(t, "Halo!", msgs[1].Text)
}

func TestTranscriptVersionAndChangeSignal(t *testing.T) {
	tr := NewTranscript()
	v0 := tr.Version()

	tr.Append(SenderUser, "a")
	tr.Append(SenderUser, "b")

	assert.Equal(t, v0+2, tr.Version())

	// Burst of mutations coalesces into at least one pending signal.
	select {
	case <-tr.Changed():
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-tr.Changed():
		t.Fatal("signals should coalesce, got a second one")
	default:
	}
}

func TestTranscriptReplaceKeepsPosition(t *testing.T) {
	tr := NewTranscript()
	tr.Append(SenderUser, "/tiktok x")
	placeholder := tr.Append(SenderBot, "processing")
	tr.Append(SenderUser, "later")

	payload := &MediaPayload{VideoURL: "https://v/video.mp4"}
	require.NoError(t, tr.Replace(placeholder.ID, "judul", payload))

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, placeholder.ID, msgs[1].ID)
	assert.Equal(t, "judul", msgs[1].Text)
	assert.Same(t, payload, msgs[1].Media)
}
