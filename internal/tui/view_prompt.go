package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderPrompt() string {
	var b strings.Builder

	var title string
	switch a.state.promptPurpose {
	case promptSave:
		title = "Save Document"
	case promptTemplate:
		title = "Write Survey Template"
	}
	titleRendered := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, titleRendered))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(min(66, a.width-4)).
		BorderForeground(colorPrimary).
		Render(a.state.pathInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Enter] Confirm  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
