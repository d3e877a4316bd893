package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
		a.state.focusEdit((a.state.editFocus + 1) % editFields)
	case key.Matches(msg, keys.Up):
		a.state.focusEdit((a.state.editFocus + editFields - 1) % editFields)
	case key.Matches(msg, keys.Enter):
		return a.runEdit()
	}
	return nil
}

func (a *App) renderEdit() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Edit " + truncate(a.state.detail.Name, 48))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	labels := []string{"Description", "Images"}
	var rows []string
	for i, input := range a.state.editForm {
		label := styleSubtitle.Render(labels[i])
		rows = append(rows, label, input.View())
	}

	formBox := styleBox.Copy().
		Width(min(62, a.width-4)).
		BorderForeground(colorPrimary).
		Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, formBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Tab] Next field  [Enter] Apply  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
