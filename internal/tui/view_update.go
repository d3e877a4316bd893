package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var formLabels = [formFields]string{
	"Workbook",
	"Sheet",
	"Name column",
	"Number column",
	"Image columns",
	"Description columns",
	"Border color",
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
		a.state.focusForm((a.state.formFocus + 1) % formRows)
	case key.Matches(msg, keys.Up):
		a.state.focusForm((a.state.formFocus + formRows - 1) % formRows)
	case key.Matches(msg, keys.Enter):
		switch a.state.formFocus {
		case rowMerge:
			a.state.merge = !a.state.merge
		case rowPreview:
			return a.runPreview()
		default:
			a.view = viewProcessing
			return a.runUpdate()
		}
	}
	return nil
}

func (a *App) renderUpdate() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update from Spreadsheet")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var rows []string
	for i, input := range a.state.form {
		label := formLabels[i]
		if i == a.state.formFocus {
			label = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render(label)
		} else {
			label = styleSubtitle.Render(label)
		}
		rows = append(rows, label, input.View())
	}

	merge := "[ ] Merge with existing content"
	if a.state.merge {
		merge = "[x] Merge with existing content"
	}
	if a.state.formFocus == rowMerge {
		merge = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render(merge)
	} else {
		merge = styleSubtitle.Render(merge)
	}
	rows = append(rows, "", merge)

	run := "  Run update  "
	preview := "  Preview  "
	if a.state.formFocus == rowRun {
		run = styleSelected.Render(run)
	} else {
		run = styleSubtitle.Render(run)
	}
	if a.state.formFocus == rowPreview {
		preview = styleSelected.Render(preview)
	} else {
		preview = styleSubtitle.Render(preview)
	}
	rows = append(rows, "", run+"  "+preview)

	formBox := styleBox.Copy().
		Width(min(62, a.width-4)).
		BorderForeground(colorPrimary).
		Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, formBox))
	b.WriteString("\n\n")

	statusBar := styleStatusBar.Render("[Tab] Next field  [Enter] Select  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
