package tui

import "github.com/charmbracelet/lipgloss"

const logo = `
 ██╗  ██╗███╗   ███╗██╗     ███████╗██████╗ ██╗████████╗
 ██║ ██╔╝████╗ ████║██║     ██╔════╝██╔══██╗██║╚══██╔══╝
 █████╔╝ ██╔████╔██║██║     █████╗  ██║  ██║██║   ██║
 ██╔═██╗ ██║╚██╔╝██║██║     ██╔══╝  ██║  ██║██║   ██║
 ██║  ██╗██║ ╚═╝ ██║███████╗███████╗██████╔╝██║   ██║
 ╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝╚══════╝╚═════╝ ╚═╝   ╚═╝
`

func (a *App) renderWelcome() string {
	// Logo
	logoRendered := styleLogo.Render(logo)

	// Subtitle
	subtitle := styleSubtitle.Render("KML Polygon Enrichment")

	// Path input
	inputBox := styleBox.Copy().
		Width(min(66, a.width-4)).
		BorderForeground(colorPrimary).
		Render(a.state.kmlInput.View())

	parts := []string{logoRendered, subtitle, "", inputBox}

	// Load error, if the last attempt failed
	if a.state.loadError != nil {
		errLine := lipgloss.NewStyle().
			Foreground(colorError).
			Render(truncate(a.state.loadError.Error(), 64))
		parts = append(parts, "", errLine)
	}

	// Status bar
	statusBar := styleStatusBar.Render("[Enter] Open  [Esc] Quit")

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	mainArea := lipgloss.Place(
		a.width,
		a.height-2,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	statusLine := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, mainArea, statusLine)
}
