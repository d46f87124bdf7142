package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	prompt  lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds the palette to w so colours are dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#0a84ff")),
		prompt:  r.NewStyle().Foreground(lipgloss.Color("205")),
		success: r.NewStyle().Foreground(lipgloss.Color("#30d158")),
		err:     r.NewStyle().Foreground(lipgloss.Color("#ff453a")),
		muted:   r.NewStyle().Faint(true),
	}
}
