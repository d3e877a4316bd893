package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderResult() string {
	var b strings.Builder
	summary := a.state.summary
	if summary == nil {
		return a.renderDocument()
	}

	var title string
	var borderColor lipgloss.Color
	if summary.Success {
		title = "Update Complete"
		borderColor = colorSuccess
	} else {
		title = "Update Failed"
		borderColor = colorError
	}
	titleRendered := lipgloss.NewStyle().
		Foreground(borderColor).
		Bold(true).
		Render(title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, titleRendered))
	b.WriteString("\n\n")

	var lines []string
	if summary.Success {
		lines = append(lines, fmt.Sprintf("Polygons updated      %d", len(summary.Updated)))
		lines = append(lines, fmt.Sprintf("Images added          %d", summary.ImagesAdded))
		lines = append(lines, fmt.Sprintf("Descriptions added    %d", summary.DescriptionsAdded))
		lines = append(lines, fmt.Sprintf("Label points created  %d", summary.Converted))
		if summary.SkippedGeometry > 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(colorWarning).
				Render(fmt.Sprintf("Unparseable shapes    %d", summary.SkippedGeometry)))
		}
		if summary.Ambiguous > 0 {
			lines = append(lines, lipgloss.NewStyle().Foreground(colorWarning).
				Render(fmt.Sprintf("Ambiguous damage cells %d", summary.Ambiguous)))
		}
		if len(summary.NotFound) > 0 {
			lines = append(lines, "")
			lines = append(lines, lipgloss.NewStyle().Foreground(colorWarning).
				Render(fmt.Sprintf("No polygon found for %d keys:", len(summary.NotFound))))
			shown := summary.NotFound
			if len(shown) > 8 {
				shown = shown[:8]
			}
			for _, key := range shown {
				lines = append(lines, styleSubtitle.Render("  "+truncate(key, 50)))
			}
			if len(summary.NotFound) > 8 {
				lines = append(lines, styleSubtitle.Render(fmt.Sprintf("  ... and %d more", len(summary.NotFound)-8)))
			}
		}
	} else {
		lines = append(lines, summary.Message)
	}

	resultBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(borderColor).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	hint := styleSubtitle.Render("Changes live in memory until saved")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[s] Save  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
