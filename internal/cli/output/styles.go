// Package output provides terminal styling for CLI messages.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for operator messages. Colors are
// only emitted when the destination is a color-capable terminal.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates styles whose color profile is detected from w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w, termenv.WithColorCache(true))
	return &Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Println renders msg line by line with style and writes it to w.
// Lines are styled separately so multi-line text is never padded.
func Println(w io.Writer, style lipgloss.Style, msg string) {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	_, _ = fmt.Fprintln(w, strings.Join(lines, "\n"))
}
