package ui

import "github.com/charmbracelet/lipgloss"

// styles holds the lipgloss styles of the presenter.
type styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Help      lipgloss.Style
	Disabled  lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Countdown lipgloss.Style
	Notice    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Strikethrough(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		Countdown: lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2).
			MarginTop(1),
	}
}
