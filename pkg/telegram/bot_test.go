package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
)

func TestNewBot_EmptyToken(t *testing.T) {
	bot, err := NewBot("", nil)
	if err != nil {
		t.Fatalf("expected nil error for empty token, got: %v", err)
	}
	if bot != nil {
		t.Fatal("expected nil bot for empty token")
	}
}

func TestSplitText(t *testing.T) {
	long := strings.Repeat("a", 9000)
	parts := splitText(long, 4000)
	if len(parts) < 2 {
		t.Fatalf("expected at least 2 parts, got %d", len(parts))
	}
	for i, p := range parts {
		if len(p) > 4000 {
			t.Errorf("part %d has length %d, exceeds 4000", i, len(p))
		}
	}
	if strings.Join(parts, "") != long {
		t.Error("parts do not reassemble to the original text")
	}
}

func TestSplitText_Short(t *testing.T) {
	parts := splitText("short message", 4000)
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0] != "short message" {
		t.Errorf("got %q, want %q", parts[0], "short message")
	}
}

func TestSplitText_PrefersNewline(t *testing.T) {
	text := strings.Repeat("x", 3000) + "\n" + strings.Repeat("y", 2000)

	parts := splitText(text, 4000)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if len(parts[0]) != 3000 {
		t.Errorf("first part length = %d, want 3000 (split at newline)", len(parts[0]))
	}
	if parts[1] != strings.Repeat("y", 2000) {
		t.Error("second part should start after the newline")
	}
}

func TestIsParseError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf("some other error"), false},
		{fmt.Errorf("Bad Request: can't parse entities"), true},
	}
	for _, tt := range tests {
		if got := isParseError(tt.err); got != tt.want {
			t.Errorf("isParseError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestFormatReply_TextOnly(t *testing.T) {
	msg := chat.Message{Sender: chat.SenderBot, Text: "Pong!"}
	if got := formatReply(msg); got != "Pong!" {
		t.Errorf("formatReply = %q, want %q", got, "Pong!")
	}
}

func TestFormatReply_Media(t *testing.T) {
	msg := chat.Message{
		Sender: chat.SenderBot,
		Text:   "Video lucu kucing",
		Media: &chat.MediaPayload{
			Title:      "Video lucu kucing",
			AuthorName: "kucinglucu",
			VideoURL:   "https://cdn.example.com/video.mp4",
			AudioURL:   "https://cdn.example.com/audio.mp3",
		},
	}

	got := formatReply(msg)
	for _, want := range []string{"Video lucu kucing", "oleh kucinglucu", "Video: https://cdn.example.com/video.mp4", "Audio: https://cdn.example.com/audio.mp3"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatReply missing %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Video (HD)") {
		t.Errorf("expected no HD line, got:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("reply should not end with a newline")
	}
}
