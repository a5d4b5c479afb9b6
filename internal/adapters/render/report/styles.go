package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	channel  lipgloss.Style
	version  lipgloss.Style
	detail   lipgloss.Style
	novel    lipgloss.Style
	failure  lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	metaKey  lipgloss.Style
	metaText lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		channel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		version:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		novel:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		metaKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		metaText: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
