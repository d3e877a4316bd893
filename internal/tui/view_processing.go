package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/XII-A/Edit-KML-Files/internal/pipeline"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Updating")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Document info
	if a.state.session != nil {
		docInfo := styleSubtitle.Render(truncate(a.state.session.Path(), 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, docInfo))
		b.WriteString("\n\n")
	}

	// Progress stages
	stages := []pipeline.Stage{
		pipeline.StageReading,
		pipeline.StageAggregating,
		pipeline.StageApplying,
		pipeline.StageStyling,
	}
	currentStage := 0
	if a.state.progress != nil {
		currentStage = a.state.progress.StageIndex
	}

	var stageLines []string
	for i, stage := range stages {
		var icon string
		var style lipgloss.Style

		if i < currentStage {
			// Completed
			icon = "[x]"
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		} else if i == currentStage {
			// Current
			icon = "[>]"
			style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
		} else {
			// Pending
			icon = "[ ]"
			style = lipgloss.NewStyle().Foreground(colorMuted)
		}

		// Per-polygon progress bar while applying
		var progressBar string
		if i == currentStage && a.state.progress != nil {
			p := a.state.progress
			if p.TotalItems > 0 {
				pct := float64(p.ItemIndex) / float64(p.TotalItems)
				filled := int(pct * 30)
				empty := 30 - filled
				progressBar = "  " +
					lipgloss.NewStyle().Foreground(colorSecondary).Render(strings.Repeat("=", filled)) +
					lipgloss.NewStyle().Foreground(colorMuted).Render(strings.Repeat("-", empty)) +
					fmt.Sprintf("  %d/%d", p.ItemIndex, p.TotalItems)
			}
		}

		line := style.Render(fmt.Sprintf("  %s  %-12s", icon, stage.String())) + progressBar
		stageLines = append(stageLines, line)
	}

	stagesBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		Render(strings.Join(stageLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, stagesBox))
	b.WriteString("\n\n")

	// Message
	if a.state.progress != nil && a.state.progress.Message != "" {
		msg := styleSubtitle.Render(truncate(a.state.progress.Message, 60))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
	}

	return a.centerVertically(b.String())
}
