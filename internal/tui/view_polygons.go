package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// listWindow keeps the cursor visible inside a fixed-height slice of rows.
func listWindow(total, cursor, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func (a *App) renderPolygons() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Polygons")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	polygons := a.state.polygons
	if len(polygons) == 0 {
		empty := styleSubtitle.Render("No polygons in this document")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, empty))
		b.WriteString("\n\n")
	} else {
		height := max(a.height-10, 4)
		start, end := listWindow(len(polygons), a.state.cursor, height)

		var rows []string
		for i := start; i < end; i++ {
			row := fmt.Sprintf(" %3d. %s ", i+1, truncate(polygons[i].Name, 50))
			if i == a.state.cursor {
				row = styleSelected.Render(row)
			}
			rows = append(rows, row)
		}

		listBox := styleBox.Copy().
			Width(min(62, a.width-4)).
			Render(strings.Join(rows, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
		b.WriteString("\n\n")

		position := styleSubtitle.Render(fmt.Sprintf("%d of %d", a.state.cursor+1, len(polygons)))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, position))
		b.WriteString("\n\n")
	}

	statusBar := styleStatusBar.Render("[↑/↓] Move  [Enter] Details  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
