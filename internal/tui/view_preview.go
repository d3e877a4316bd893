package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderPreview() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Preview")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	entries := a.state.preview
	matched := 0
	for _, e := range entries {
		if e.Found {
			matched++
		}
	}
	metaLine := styleSubtitle.Render(fmt.Sprintf("%d keys  |  %d matched  |  %d unmatched",
		len(entries), matched, len(entries)-matched))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, metaLine))
	b.WriteString("\n\n")

	height := max(a.height-12, 4)
	if len(entries) > height {
		entries = entries[:height]
	}

	var rows []string
	for _, e := range entries {
		style := lipgloss.NewStyle().Foreground(colorSuccess)
		target := e.MatchedName
		if !e.Found {
			style = lipgloss.NewStyle().Foreground(colorWarning)
			target = "(no polygon)"
		}
		rows = append(rows, style.Render(fmt.Sprintf(" %-16s -> %s", truncate(e.Key, 16), truncate(target, 40))))
	}
	if len(rows) == 0 {
		rows = append(rows, styleSubtitle.Render("No usable rows in the workbook"))
	}
	if len(a.state.preview) > height {
		rows = append(rows, styleSubtitle.Render(fmt.Sprintf(" ... and %d more", len(a.state.preview)-height)))
	}

	listBox := styleBox.Copy().
		Width(min(68, a.width-4)).
		Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Enter] Run update  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
