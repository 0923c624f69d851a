// Package tui provides the terminal chat surface. It renders the
// transcript, forwards input lines to the dispatcher, and hosts the
// command menu and parameter prompt overlays. All conversation state lives
// in the chat package; this package only draws it.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
	"github.com/purujawa06-bot/BOT-WEB/pkg/config"
	"github.com/purujawa06-bot/BOT-WEB/pkg/logger"
)

type sessionMode int

const (
	modeChat sessionMode = iota
	modeMenu
	modeParam
)

// Model is the bubbletea model for the chat surface.
type Model struct {
	cfg        *config.Config
	log        *logger.Logger
	dispatcher *chat.Dispatcher
	transcript *chat.Transcript
	registry   *chat.Registry

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	mode  sessionMode
	menu  menuState
	param paramState

	width  int
	height int
	ready  bool
	status string
}

type menuState struct {
	filter textinput.Model
	items  []chat.Command
	cursor int
}

type paramState struct {
	command chat.Command
	input   textinput.Model
}

// New builds the chat surface.
func New(cfg *config.Config, log *logger.Logger, d *chat.Dispatcher, t *chat.Transcript, r *chat.Registry) Model {
	input := textinput.New()
	input.Placeholder = "Ketik pesan atau perintah..."
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return Model{
		cfg:        cfg,
		log:        log,
		dispatcher: d,
		transcript: t,
		registry:   r,
		input:      input,
		spin:       sp,
	}
}

// Messages delivered back into the update loop.
type (
	transcriptChangedMsg struct{}
	submitResultMsg      struct{ err error }
)

// waitForChange blocks on the transcript's coalesced change channel.
func (m Model) waitForChange() tea.Cmd {
	ch := m.transcript.Changed()
	return func() tea.Msg {
		<-ch
		return transcriptChangedMsg{}
	}
}

func (m Model) submitCmd(text string) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		return submitResultMsg{err: d.Submit(context.Background(), text)}
	}
}

func (m Model) supplyCmd(text string) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		return submitResultMsg{err: d.SupplyParameter(context.Background(), text)}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerH := lipgloss.Height(m.renderHeader())
		statusH := lipgloss.Height(m.renderStatusBar())
		inputH := 1
		helpH := 1

		viewportHeight := m.height - headerH - statusH - inputH - helpH
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()

	case transcriptChangedMsg:
		m.refreshViewport()
		cmds = append(cmds, m.waitForChange())

	case submitResultMsg:
		switch msg.err {
		case nil:
			m.status = ""
			if cmd, ok := m.dispatcher.Pending(); ok {
				m.openParamPrompt(cmd)
			}
		case chat.ErrBusy:
			m.status = "Masih memproses perintah sebelumnya..."
		case chat.ErrEmptyParameter:
			m.status = "Parameter tidak boleh kosong."
			if cmd, ok := m.dispatcher.Pending(); ok {
				m.openParamPrompt(cmd)
			}
		case chat.ErrEmptyInput, chat.ErrNoPending:
			// Nothing happened; nothing to show.
		default:
			m.status = msg.err.Error()
		}
		m.refreshViewport()

	case spinner.TickMsg:
		if m.dispatcher.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch m.mode {
		case modeMenu:
			return m.updateMenu(msg)
		case modeParam:
			return m.updateParam(msg)
		default:
			switch msg.Type {
			case tea.KeyCtrlC:
				return m, tea.Quit
			case tea.KeyCtrlP:
				m.openMenu()
				return m, nil
			case tea.KeyEnter:
				return m.sendCurrentInput()
			}
		}
	}

	// Keep typing responsive while a command executes; submission itself is
	// gated by the dispatcher.
	if m.mode == modeChat {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendCurrentInput submits the typed line.
func (m Model) sendCurrentInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if text == "" {
		return m, nil
	}
	if m.dispatcher.Busy() {
		m.status = "Masih memproses perintah sebelumnya..."
		return m, nil
	}
	m.input.Reset()
	m.status = ""
	return m, tea.Batch(m.submitCmd(text), m.spin.Tick)
}
