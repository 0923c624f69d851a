package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors - "Comic" palette carried over from the original web skin,
// toned for terminals.
var (
	PrimaryColor   = lipgloss.Color("#6366F1") // Indigo 500
	SecondaryColor = lipgloss.Color("#0EA5E9") // Sky 500
	AccentColor    = lipgloss.Color("#F59E0B") // Amber 500
	ErrorColor     = lipgloss.Color("#EF4444") // Red 500
	MutedColor     = lipgloss.Color("#64748B") // Slate 500

	BgDark = lipgloss.Color("#1E293B") // Slate 800

	TextPrimary   = lipgloss.Color("#F8FAFC") // Slate 50
	TextSecondary = lipgloss.Color("#94A3B8") // Slate 400
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(BgDark).
			Padding(0, 1)

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	BotLabelStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	BotTextStyle = lipgloss.NewStyle().
			Foreground(TextPrimary)

	ErrorMsgStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	MediaCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)

	MenuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(TextSecondary)

	MenuSelectedStyle = lipgloss.NewStyle().
				Foreground(TextPrimary).
				Background(BgDark).
				Bold(true)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)
)
