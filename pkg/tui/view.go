package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
)

func (m Model) View() string {
	if !m.ready {
		return "Memuat..."
	}

	switch m.mode {
	case modeMenu:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderMenu())
	case modeParam:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderParamPrompt())
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatusBar(),
		m.input.View(),
		HelpStyle.Render("enter kirim • ctrl+p menu perintah • ctrl+c keluar"),
	}, "\n")
}

func (m Model) renderHeader() string {
	name := m.cfg.AgentName
	if name == "" {
		name = "Robot AI"
	}
	return HeaderStyle.Render(strings.ToUpper(name))
}

func (m Model) renderStatusBar() string {
	if m.dispatcher.Busy() {
		return StatusBarStyle.Render(m.spin.View() + " AI sedang berpikir...")
	}
	if m.status != "" {
		return StatusBarStyle.Render(m.status)
	}
	return StatusBarStyle.Render(fmt.Sprintf("provider: %s", m.cfg.Provider))
}

// refreshViewport re-renders the transcript into the viewport and keeps
// the view pinned to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTranscript(m.transcript.Messages(), m.viewport.Width, m.cfg.UI.ShowTimestamps))
	m.viewport.GotoBottom()
}

// renderTranscript formats the message log for a given width.
func renderTranscript(messages []chat.Message, width int, timestamps bool) string {
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderMessage(msg, width, timestamps))
		b.WriteString("\n")
	}
	return b.String()
}

func renderMessage(msg chat.Message, width int, timestamps bool) string {
	var label string
	if msg.Sender == chat.SenderUser {
		label = UserLabelStyle.Render("Anda")
	} else {
		label = BotLabelStyle.Render("Robot AI")
	}
	if timestamps {
		label += " " + TimestampStyle.Render(msg.Timestamp.Format("15:04:05"))
	}

	body := wordwrap.String(msg.Text, width-2)
	switch {
	case msg.IsError():
		body = ErrorMsgStyle.Render(body)
	case msg.Sender == chat.SenderBot:
		body = BotTextStyle.Render(body)
	}

	out := label + "\n" + body
	if msg.Media != nil {
		out += "\n" + renderMediaCard(msg.Media, width)
	}
	return out
}

// renderMediaCard shows the resolved download links for a media message.
func renderMediaCard(p *chat.MediaPayload, width int) string {
	var lines []string
	if p.Title != "" {
		lines = append(lines, MenuTitleStyle.Render(wordwrap.String(p.Title, width-6)))
	}
	if p.AuthorName != "" {
		lines = append(lines, TimestampStyle.Render("oleh "+p.AuthorName))
	}
	if p.VideoURL != "" {
		lines = append(lines, "Video      : "+p.VideoURL)
	}
	if p.VideoHDURL != "" {
		lines = append(lines, "Video (HD) : "+p.VideoHDURL)
	}
	if p.AudioURL != "" {
		lines = append(lines, "Audio      : "+p.AudioURL)
	}
	return MediaCardStyle.Width(min(width-2, 100)).Render(strings.Join(lines, "\n"))
}
