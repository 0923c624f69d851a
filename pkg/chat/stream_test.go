package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purujawa06-bot/BOT-WEB/pkg/provider"
)

func TestStreamReplyAccumulatesChunksInOrder(t *testing.T) {
	var states []string
	d, tr := newTestDispatcher(nil, nil, nil)

	stream := provider.NewScriptedStream("Hel", "lo")
	stream.OnNext = func(int) {
		// Snapshot the in-flight message before each chunk is applied.
		if last, ok := tr.Last(); ok {
			states = append(states, last.Text)
		}
	}
	d.ai = &fakeAI{fn: func(string) (provider.ChunkStream, error) { return stream, nil }}

	require.NoError(t, d.Submit(context.Background(), "sapa aku"))

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "Hello", last.Text)
	assert.Equal(t, []string{streamSentinel, "Hel", "Hello"}, states,
		"visible states: sentinel, then each accumulation step")
}

func TestStreamReplySynchronousFailureClearsSentinel(t *testing.T) {
	d, tr := newTestDispatcher(nil, nil, nil)
	d.ai = &fakeAI{fn: func(string) (provider.ChunkStream, error) {
		return nil, &provider.Error{Message: "Gemini API key is required"}
	}}

	require.NoError(t, d.Submit(context.Background(), "halo"))

	last, ok := tr.Last()
	require.True(t, ok)
	assert.NotEqual(t, streamSentinel, last.Text, "sentinel must never be the final state")
	assert.Equal(t, fmt.Sprintf(aiErrorTemplate, "Gemini API key is required"), last.Text)
	assert.False(t, d.Busy())
}

func TestStreamReplyMidStreamErrorDiscardsPartialText(t *testing.T) {
	d, tr := newTestDispatcher(nil, nil, nil)
	stream := provider.NewScriptedStream("sebagian ")
	stream.Err = &provider.Error{Message: "stream interrupted"}
	d.ai = &fakeAI{fn: func(string) (provider.ChunkStream, error) { return stream, nil }}

	require.NoError(t, d.Submit(context.Background(), "halo"))

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf(aiErrorTemplate, "stream interrupted"), last.Text)
	assert.NotContains(t, last.Text, "sebagian")
}

func TestStreamReplyZeroChunksLeavesEmptyText(t *testing.T) {
	d, tr := newTestDispatcher(scriptedAI(), nil, nil)

	require.NoError(t, d.Submit(context.Background(), "halo"))

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, SenderBot, last.Sender)
	assert.Equal(t, "", last.Text, "zero-chunk stream ends with empty text, not the sentinel")
}

func TestStreamReplySkipsEmptyChunks(t *testing.T) {
	d, tr := newTestDispatcher(scriptedAI("", "Halo", ""), nil, nil)

	require.NoError(t, d.Submit(context.Background(), "hai"))

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "Halo", last.Text)
}
