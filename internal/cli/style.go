package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// newEchoStyle styles the echoed command line. Colors are only used when w is a terminal.
func newEchoStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("241"))
}
