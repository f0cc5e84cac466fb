package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pixelanim/internal/theme"
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
	playing lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	panel   lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		label:   lipgloss.NewStyle().Foreground(t.Muted),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		dim:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		accent:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		playing: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		warn:    lipgloss.NewStyle().Foreground(t.Warning),
		err:     lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Grid).
			Padding(0, 1),
	}
}
