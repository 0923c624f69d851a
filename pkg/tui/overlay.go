package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/purujawa06-bot/BOT-WEB/pkg/chat"
)

// openMenu switches to the command menu overlay.
func (m *Model) openMenu() {
	filter := textinput.New()
	filter.Placeholder = "Cari perintah..."
	filter.Focus()

	m.mode = modeMenu
	m.menu = menuState{
		filter: filter,
		items:  m.registry.FilterByText(""),
	}
}

// openParamPrompt switches to the parameter prompt overlay for cmd.
func (m *Model) openParamPrompt(cmd chat.Command) {
	input := textinput.New()
	input.Placeholder = strings.TrimSpace(strings.TrimPrefix(cmd.Name, cmd.Token))
	if input.Placeholder == "" {
		input.Placeholder = "parameter"
	}
	input.Focus()

	m.mode = modeParam
	m.param = paramState{command: cmd, input: input}
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlP:
		m.mode = modeChat
		return m, nil

	case tea.KeyUp:
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.menu.cursor < len(m.menu.items)-1 {
			m.menu.cursor++
		}
		return m, nil

	case tea.KeyEnter:
		if m.menu.cursor >= len(m.menu.items) {
			return m, nil
		}
		cmd := m.menu.items[m.menu.cursor]
		m.mode = modeChat
		if cmd.RequiresParam {
			m.dispatcher.RequestParameter(cmd)
			m.openParamPrompt(cmd)
			return m, nil
		}
		return m, tea.Batch(m.submitCmd(cmd.Token), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.menu.filter, cmd = m.menu.filter.Update(msg)
	m.menu.items = m.registry.FilterByText(m.menu.filter.Value())
	if m.menu.cursor >= len(m.menu.items) {
		m.menu.cursor = 0
	}
	return m, cmd
}

func (m Model) updateParam(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.dispatcher.CancelParameter()
		m.mode = modeChat
		m.status = ""
		return m, nil

	case tea.KeyEnter:
		text := m.param.input.Value()
		if strings.TrimSpace(text) == "" {
			m.status = "Parameter tidak boleh kosong."
			return m, nil
		}
		m.mode = modeChat
		m.status = ""
		return m, tea.Batch(m.supplyCmd(text), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.param.input, cmd = m.param.input.Update(msg)
	return m, cmd
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(MenuTitleStyle.Render("Daftar Perintah"))
	b.WriteString("\n")
	b.WriteString(m.menu.filter.View())
	b.WriteString("\n\n")

	if len(m.menu.items) == 0 {
		b.WriteString(MenuItemStyle.Render("Tidak ada perintah yang cocok."))
	}
	for i, cmd := range m.menu.items {
		line := fmt.Sprintf("%-18s %s", cmd.Name, cmd.Description)
		if i == m.menu.cursor {
			b.WriteString(MenuSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter pilih • esc tutup"))
	return OverlayStyle.Render(b.String())
}

func (m Model) renderParamPrompt() string {
	var b strings.Builder
	b.WriteString(MenuTitleStyle.Render(m.param.command.Name))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render(m.param.command.Description))
	b.WriteString("\n\n")
	b.WriteString(m.param.input.View())
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("enter kirim • esc batal"))
	return OverlayStyle.Render(b.String())
}
