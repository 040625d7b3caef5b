package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/pantry/internal/cli"
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.config.Theme.Title.Render(cli.PantryIcon + " Pantry")

	var body string
	switch {
	case !m.ready && m.status == "":
		body = lipgloss.NewStyle().Foreground(m.config.Theme.Muted).Render("Loading inventory...")
	case m.state == StateForm:
		body = m.form.View()
	default:
		body = m.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.renderStatus(), m.renderHelp())
}

func (m Model) renderStatus() string {
	theme := m.config.Theme
	switch m.statusKind {
	case statusError:
		return theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	case statusSuccess:
		return theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
	default:
		return theme.StatusInfo.Render(m.status)
	}
}

func (m Model) renderHelp() string {
	bindings := m.keymap.ListHelp()
	if m.state == StateForm {
		bindings = m.keymap.FormHelp()
	}
	if m.state == StateConfirmDelete {
		return ""
	}
	return m.help.ShortHelpView(bindings)
}
