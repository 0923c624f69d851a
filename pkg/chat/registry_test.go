package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(DefaultCommands())

	tests := []struct {
		name  string
		token string
		want  string
		found bool
	}{
		{name: "exact match", token: "/ping", want: TokenPing, found: true},
		{name: "case-insensitive", token: "/PING", want: TokenPing, found: true},
		{name: "mixed case", token: "/TikTok", want: TokenTikTok, found: true},
		{name: "unknown token", token: "/unknown", found: false},
		{name: "no prefix match", token: "/pi", found: false},
		{name: "free text", token: "halo", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := r.Lookup(tt.token)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, cmd.Token)
			}
		})
	}
}

func TestRegistryRequiresParam(t *testing.T) {
	r := NewRegistry(DefaultCommands())

	ai, ok := r.Lookup(TokenAI)
	require.True(t, ok)
	assert.True(t, ai.RequiresParam)

	ping, ok := r.Lookup(TokenPing)
	require.True(t, ok)
	assert.False(t, ping.RequiresParam)
}

func TestRegistryFilterByText(t *testing.T) {
	r := NewRegistry(DefaultCommands())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{TokenPing, TokenIP, TokenAI, TokenTikTok}},
		{name: "matches name", query: "tiktok", want: []string{TokenTikTok}},
		{name: "matches description", query: "koneksi", want: []string{TokenPing}},
		{name: "case-insensitive", query: "TIKTOK", want: []string{TokenTikTok}},
		{name: "substring", query: "pertany", want: []string{TokenAI}},
		{name: "no match", query: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range r.FilterByText(tt.query) {
				got = append(got, c.Token)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryCategories(t *testing.T) {
	r := NewRegistry(DefaultCommands())

	cats := r.Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, CategoryGeneral, cats[0].Name)
	assert.Equal(t, CategoryAI, cats[3].Name)
	for _, cat := range cats {
		assert.NotEmpty(t, cat.Commands)
	}
}
