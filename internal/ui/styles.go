package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TodoText    = lipgloss.NewStyle().Bold(true)
	TodoDone    = lipgloss.NewStyle().Foreground(Secondary).Strikethrough(true)
	TodoPending = lipgloss.NewStyle().Foreground(Red)
	TodoDue     = lipgloss.NewStyle().Foreground(Blue)

	TodoDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")

	StatusLine = lipgloss.NewStyle().Foreground(Secondary)
	ErrorLine  = lipgloss.NewStyle().Foreground(Red)
)
