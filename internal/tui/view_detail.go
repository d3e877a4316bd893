package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderDetail() string {
	var b strings.Builder
	info := a.state.detail

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(info.Name)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	var metaParts []string
	metaParts = append(metaParts, fmt.Sprintf("%d images", len(info.Images)))
	if info.MediaLink != "" {
		metaParts = append(metaParts, "media link")
	}
	metaLine := styleSubtitle.Render(strings.Join(metaParts, "  |  "))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, metaLine))
	b.WriteString("\n\n")

	body := a.state.detailBody.View()
	if strings.TrimSpace(info.Description) == "" {
		body = styleSubtitle.Render("(no description)")
	}
	descBox := styleBox.Copy().
		Width(min(76, a.width-4)).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, descBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[↑/↓] Scroll  [e] Edit  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
