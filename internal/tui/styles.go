package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	focused lipgloss.Style
	valid   lipgloss.Style
	invalid lipgloss.Style
	pending lipgloss.Style
	notice  lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
	box     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Width(10),
		valid:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
