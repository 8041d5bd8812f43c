package tasks_ui

import (
	"github.com/charmbracelet/lipgloss"
)

type uiStyles struct {
	title   lipgloss.Style
	pending lipgloss.Style
	success lipgloss.Style
	skipped lipgloss.Style
	failure lipgloss.Style
	reason  lipgloss.Style
	err     lipgloss.Style
}

func initStyles() uiStyles {
	colors := catppuccinMocha()
	return uiStyles{
		title:   lipgloss.NewStyle().Foreground(colors.text),
		pending: lipgloss.NewStyle().Foreground(colors.accent),
		success: lipgloss.NewStyle().Foreground(colors.green),
		skipped: lipgloss.NewStyle().Foreground(colors.yellow),
		failure: lipgloss.NewStyle().Bold(true).Foreground(colors.red),
		reason: lipgloss.NewStyle().
			Foreground(colors.muted).
			PaddingLeft(4),
		err: lipgloss.NewStyle().
			Foreground(colors.red).
			PaddingLeft(4),
	}
}

type uiColors struct {
	text   lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	green  lipgloss.Color
	yellow lipgloss.Color
	red    lipgloss.Color
}

func catppuccinMocha() uiColors {
	return uiColors{
		text:   lipgloss.Color("#cdd6f4"),
		muted:  lipgloss.Color("#a6adc8"),
		accent: lipgloss.Color("#cba6f7"),
		green:  lipgloss.Color("#a6e3a1"),
		yellow: lipgloss.Color("#f9e2af"),
		red:    lipgloss.Color("#f38ba8"),
	}
}
