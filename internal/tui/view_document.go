package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderDocument() string {
	if a.state.session == nil {
		return a.renderWelcome()
	}

	var b strings.Builder
	session := a.state.session

	// Document info header
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(filepath.Base(session.Path()))

	metaLine := styleSubtitle.Render(fmt.Sprintf("%d polygons  |  %s", len(session.Polygons()), session.Path()))

	infoContent := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		truncate(metaLine, min(68, a.width-8)),
	)
	infoBox := styleBox.Copy().
		Width(min(70, a.width-4)).
		BorderForeground(colorSuccess).
		Render(infoContent)

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, infoBox))
	b.WriteString("\n\n")

	// Actions menu
	actions := []string{
		"[p]  Browse polygons",
		"[u]  Update from spreadsheet",
		"[t]  Write a survey template",
		"[s]  Save document",
	}
	menuBox := styleBox.Copy().
		Width(min(40, a.width-4)).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, menuBox))
	b.WriteString("\n\n")

	// Transient status from the last action
	if a.state.status != "" {
		status := lipgloss.NewStyle().
			Foreground(colorSuccess).
			Render(truncate(a.state.status, 64))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[?] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
