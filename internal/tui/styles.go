package tui

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for the browse view.
//
//nolint:gochecknoglobals // styles are package-wide render constants
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")) // cyan

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // dim

	FilterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // yellow

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)

	PriceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // green

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("14"))

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")) // red
)
